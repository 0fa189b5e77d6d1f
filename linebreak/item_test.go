package linebreak

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLegalBreak(t *testing.T) {
	items := []Item{
		Glue(1, 1, 0),           // 0: leading glue
		Box(2),                  // 1
		Glue(1, 1, 0),           // 2: after a box
		Glue(1, 1, 0),           // 3: after glue
		Box(2),                  // 4
		Penalty(1, 50, true),    // 5
		Glue(1, 1, 0),           // 6: after a penalty
		Box(2),                  // 7
		ForbiddenBreak(),        // 8
		Box(2),                  // 9
		Penalty(0, -100, false), // 10
		ForcedBreak(),           // 11
	}
	want := map[int]bool{2: true, 5: true, 10: true, 11: true}
	for i := range items {
		assert.Equal(t, want[i], IsLegalBreak(items, i), "item %d (%v)", i, items[i])
	}
	assert.False(t, IsLegalBreak(items, -1))
	assert.False(t, IsLegalBreak(items, len(items)))
}

func TestItemString(t *testing.T) {
	assert.Equal(t, "box(3)", Box(3).String())
	assert.Equal(t, "glue(1,0.5,0.25)", Glue(1, 0.5, 0.25).String())
	assert.Equal(t, "penalty(0,-Inf)", ForcedBreak().String())
	assert.Equal(t, "penalty(1,50,flagged)", Penalty(1, 50, true).String())
	assert.Equal(t, "kind(9)", Item{Kind: 9}.String())
}

func TestForcedBreak(t *testing.T) {
	assert.True(t, ForcedBreak().IsForcedBreak())
	assert.False(t, ForbiddenBreak().IsForcedBreak())
	assert.False(t, Box(0).IsForcedBreak())
	assert.False(t, Penalty(0, -10000, false).IsForcedBreak())
}

func TestFitnessFor(t *testing.T) {
	tests := []struct {
		r    float64
		want Fitness
	}{
		{-1, FitnessTight},
		{-0.51, FitnessTight},
		{-0.5, FitnessDecent},
		{0, FitnessDecent},
		{0.5, FitnessDecent},
		{0.75, FitnessLoose},
		{1, FitnessLoose},
		{1.01, FitnessVeryLoose},
		{Infinity, FitnessVeryLoose},
		{-Infinity, FitnessTight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FitnessFor(tt.r), "r=%g", tt.r)
	}
}

func TestFitnessText(t *testing.T) {
	b, err := json.Marshal([]Fitness{FitnessTight, FitnessVeryLoose})
	require.NoError(t, err)
	assert.JSONEq(t, `["tight","very-loose"]`, string(b))

	var got []Fitness
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []Fitness{FitnessTight, FitnessVeryLoose}, got)

	var f Fitness
	assert.Error(t, f.UnmarshalText([]byte("snug")))
}

func TestGlueWidth(t *testing.T) {
	g := Glue(4, 2, 1)
	assert.InDelta(t, 5, Breakpoint{AdjustmentRatio: 0.5}.GlueWidth(g), 1e-9)
	assert.InDelta(t, 3.5, Breakpoint{AdjustmentRatio: -0.5}.GlueWidth(g), 1e-9)
	assert.InDelta(t, 4, Breakpoint{AdjustmentRatio: 0}.GlueWidth(g), 1e-9)
	assert.InDelta(t, 4, Breakpoint{AdjustmentRatio: Infinity}.GlueWidth(Glue(4, 0, 0)), 1e-9)

	b := Breakpoint{AdjustmentRatio: -Infinity}
	assert.True(t, b.Overfull())
	assert.False(t, b.Underfull())
	assert.InDelta(t, 4, b.GlueWidth(Glue(4, 2, 0)), 1e-9)
}
