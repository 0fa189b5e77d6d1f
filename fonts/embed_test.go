package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		data, err := Load("builtin:" + name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	data, err := Load(Default)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = Load("builtin:comic-sans")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"lmmono10-regular", "lmroman10-bold", "lmroman10-italic", "lmroman10-regular"}, Names())
	assert.True(t, IsMono("builtin:lmmono10-regular"))
	assert.False(t, IsMono(Default))
}
