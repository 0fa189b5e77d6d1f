package linebreak

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.True(t, math.IsInf(c.Threshold, 1))
	assert.Zero(t, c.Looseness)
	assert.Equal(t, 10.0, c.LinePenalty)
	assert.Equal(t, 100.0, c.FlaggedDemerits)
	assert.Equal(t, 100.0, c.FitnessDemerits)
	require.NoError(t, c.Validate())
}

func TestConfigWithReturnsCopies(t *testing.T) {
	base := DefaultConfig()
	c := base.WithThreshold(100).
		WithLooseness(-1).
		WithLinePenalty(1).
		WithFlaggedDemerits(3000).
		WithFitnessDemerits(10000)

	assert.Equal(t, DefaultConfig(), base)
	assert.Equal(t, Config{
		Threshold:       100,
		Looseness:       -1,
		LinePenalty:     1,
		FlaggedDemerits: 3000,
		FitnessDemerits: 10000,
	}, c)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero threshold", DefaultConfig().WithThreshold(0), false},
		{"negative looseness", DefaultConfig().WithLooseness(-3), false},
		{"negative threshold", DefaultConfig().WithThreshold(-1), true},
		{"NaN threshold", DefaultConfig().WithThreshold(math.NaN()), true},
		{"negative line penalty", DefaultConfig().WithLinePenalty(-1), true},
		{"infinite flagged demerits", DefaultConfig().WithFlaggedDemerits(math.Inf(1)), true},
		{"NaN fitness demerits", DefaultConfig().WithFitnessDemerits(math.NaN()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBadness(t *testing.T) {
	assert.Zero(t, badness(0))
	assert.InDelta(t, 12.5, badness(0.5), 1e-9)
	assert.InDelta(t, 100, badness(-1), 1e-9)
	assert.Equal(t, MaxBadness, badness(5))
	assert.Equal(t, MaxBadness, badness(math.Inf(1)))
	assert.Equal(t, OverfullBadness, badness(-1.5))
	assert.Equal(t, OverfullBadness, badness(math.Inf(-1)))
}

func TestAdjustmentRatio(t *testing.T) {
	assert.Zero(t, adjustmentRatio(sums{width: 10}, 10))
	assert.InDelta(t, 0.5, adjustmentRatio(sums{width: 8, stretch: 4}, 10), 1e-9)
	assert.InDelta(t, -0.25, adjustmentRatio(sums{width: 11, shrink: 4}, 10), 1e-9)
	assert.True(t, math.IsInf(adjustmentRatio(sums{width: 8}, 10), 1))
	assert.True(t, math.IsInf(adjustmentRatio(sums{width: 12, stretch: 3}, 10), -1))
	assert.Zero(t, adjustmentRatio(sums{width: 8, stretch: 4, fil: 1}, 10))
}
