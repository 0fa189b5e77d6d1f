package linebreak

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnuthPlassGolden(t *testing.T) {
	breaks, err := Break(runeItems(farOut, false), 80, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []int{77, 152, 230, 303, 375}, breakIndices(breaks))
	assert.Equal(t, []string{
		"  Far out in the uncharted backwaters of the unfashionable end of the western",
		"spiral arm of the Galaxy lies a small unregarded yellow sun. Orbiting this",
		"at a distance of roughly ninety-two million miles is an utterly insignificant",
		"little blue-green planet whose ape-descended life forms are so amazingly",
		"primitive that they still think digital watches are a pretty neat idea.",
	}, sliceLines(farOut, breaks))

	ratios := []float64{3.0 / 13, 0.5, 3.0 / 11, 8.0 / 9, 9.0 / 11}
	fitness := []Fitness{FitnessDecent, FitnessDecent, FitnessDecent, FitnessLoose, FitnessLoose}
	demerits := []float64{126.089, 632.339, 777.025, 7214.391, 11409.654}
	for i, b := range breaks {
		assert.Equal(t, i+1, b.Line)
		assert.InDelta(t, ratios[i], b.AdjustmentRatio, 1e-9, "line %d", i+1)
		assert.Equal(t, fitness[i], b.Fitness, "line %d", i+1)
		assert.InDelta(t, demerits[i], b.Demerits, 1e-3, "line %d", i+1)
	}
}

func TestKnuthPlassFinishingGlue(t *testing.T) {
	items := runeItems(farOut, true)
	breaks, err := NewKnuthPlass(DefaultConfig()).LayoutParagraph(items, 80)
	require.NoError(t, err)

	assert.Equal(t, []int{77, 157, 237, 318, 376}, breakIndices(breaks))
	lines := sliceLines(farOut, breaks)
	assert.Equal(t, "spiral arm of the Galaxy lies a small unregarded yellow sun. Orbiting this at a", lines[1])
	assert.Equal(t, "they still think digital watches are a pretty neat idea.", lines[4])
	assert.Less(t, breaks[4].AdjustmentRatio, 1.0)
}

func TestKnuthPlassThreshold(t *testing.T) {
	items := runeItems(farOut, false)
	golden := []int{77, 152, 230, 303, 375}

	tests := []struct {
		threshold float64
		want      []int
	}{
		{10000, golden},
		{1000, golden},
		{100, golden},
		{50, []int{77, 157, 237, 313, 375}},
		{10, []int{77, 157, 237, 318, 375}},
	}
	for _, tt := range tests {
		breaks, err := Break(items, 80, DefaultConfig().WithThreshold(tt.threshold))
		require.NoError(t, err, "threshold %g", tt.threshold)
		assert.Equal(t, tt.want, breakIndices(breaks), "threshold %g", tt.threshold)
	}

	_, err := Break(items, 80, DefaultConfig().WithThreshold(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasibleBreak))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestKnuthPlassThresholdAllowsVeryLooseForcedLine(t *testing.T) {
	breaks, err := Break(runeItems(farOut, false), 80, DefaultConfig().WithThreshold(10))
	require.NoError(t, err)
	last := breaks[len(breaks)-1]
	assert.InDelta(t, 8.0/3, last.AdjustmentRatio, 1e-9)
	assert.Equal(t, FitnessVeryLoose, last.Fitness)
}

func TestKnuthPlassLooseness(t *testing.T) {
	items := runeItems(farOut, false)

	tests := []struct {
		looseness int
		width     float64
		want      []int
	}{
		{0, 80, []int{77, 152, 230, 303, 375}},
		{1, 80, []int{58, 115, 177, 248, 313, 375}},
		{2, 80, []int{1, 65, 126, 188, 255, 318, 375}},
		{-1, 80, []int{77, 152, 230, 303, 375}},
		{-1, 60, []int{58, 107, 157, 208, 261, 318, 375}},
	}
	for _, tt := range tests {
		breaks, err := Break(items, tt.width, DefaultConfig().WithLooseness(tt.looseness))
		require.NoError(t, err, "looseness %d", tt.looseness)
		assert.Equal(t, tt.want, breakIndices(breaks), "looseness %d width %g", tt.looseness, tt.width)
	}
}

func TestKnuthPlassLineCounts(t *testing.T) {
	items := runeItems(farOut, false)
	for width, lines := range map[float64]int{40: 10, 60: 7, 100: 4, 400: 1} {
		breaks, err := Break(items, width, DefaultConfig())
		require.NoError(t, err, "width %g", width)
		assert.Len(t, breaks, lines, "width %g", width)
	}
}

func TestKnuthPlassWiderNeverAddsLines(t *testing.T) {
	items := runeItems(farOut, false)
	prev := math.MaxInt
	for width := 10.0; width <= 420; width += 5 {
		breaks, err := Break(items, width, DefaultConfig())
		require.NoError(t, err, "width %g", width)
		assert.LessOrEqual(t, len(breaks), prev, "width %g", width)
		prev = len(breaks)
	}
}

func TestKnuthPlassFitsOnOneLine(t *testing.T) {
	items := []Item{Box(5), Glue(1, 0, 0), Box(5), ForcedBreak()}
	breaks, err := Break(items, 20, DefaultConfig().WithThreshold(100))
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.Equal(t, 3, breaks[0].BreakAt)
	assert.True(t, breaks[0].Underfull())
}

func TestKnuthPlassSingleBox(t *testing.T) {
	narrow, err := Break([]Item{Box(10), ForcedBreak()}, 80, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	assert.Equal(t, 1, narrow[0].BreakAt)
	assert.True(t, math.IsInf(narrow[0].AdjustmentRatio, 1))

	wide, err := Break([]Item{Box(100), ForcedBreak()}, 80, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, wide, 1)
	assert.True(t, math.IsInf(wide[0].AdjustmentRatio, -1))
	assert.True(t, wide[0].Overfull())
	assert.Equal(t, FitnessTight, wide[0].Fitness)
}

func TestKnuthPlassRigidGlue(t *testing.T) {
	items := []Item{Box(10), Glue(1, 0, 0), Box(10), Glue(1, 0, 0), Box(10), ForcedBreak()}

	_, err := Break(items, 15, DefaultConfig().WithThreshold(100))
	assert.ErrorIs(t, err, ErrInfeasibleBreak)

	breaks, err := Break(items, 15, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, breakIndices(breaks))
	for _, b := range breaks {
		assert.True(t, math.IsInf(b.AdjustmentRatio, 1), "line %d", b.Line)
		assert.Equal(t, FitnessVeryLoose, b.Fitness)
		assert.False(t, b.Overfull())
	}
}

func TestKnuthPlassForcedBreakStaysFeasible(t *testing.T) {
	items := []Item{Box(10), Glue(1, 0, 0), Box(10), ForcedBreak()}
	breaks, err := Break(items, 15, DefaultConfig().WithThreshold(MaxBadness))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, breakIndices(breaks))
	for _, b := range breaks {
		assert.False(t, b.Overfull(), "line %d", b.Line)
	}

	// No line fits: only an unlimited threshold accepts the overfull line.
	wide := []Item{Box(10), Glue(1, 0, 0), Box(20), ForcedBreak()}
	_, err = Break(wide, 15, DefaultConfig().WithThreshold(MaxBadness))
	assert.ErrorIs(t, err, ErrInfeasibleBreak)

	breaks, err = Break(wide, 15, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, breakIndices(breaks))
	assert.False(t, breaks[0].Overfull())
	assert.True(t, breaks[1].Overfull())
}

func TestKnuthPlassInfiniteStretch(t *testing.T) {
	items := []Item{
		Box(8), Glue(0, Infinity, 0), ForcedBreak(),
		Box(4), Glue(1, 1, 0), Box(4), Glue(1, 1, 0), Box(4), Glue(0, 1000, 0), ForcedBreak(),
	}

	breaks, err := Break(items, 10, DefaultConfig().WithThreshold(100))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 6, 9}, breakIndices(breaks))
	assert.InDelta(t, 0, breaks[0].AdjustmentRatio, 1e-9)
	assert.InDelta(t, 1, breaks[1].AdjustmentRatio, 1e-9)
	assert.InDelta(t, 0.006, breaks[2].AdjustmentRatio, 1e-9)
	for _, b := range breaks {
		assert.False(t, math.IsNaN(b.Demerits), "line %d", b.Line)
	}
	assert.Equal(t, 0.0, breaks[0].GlueWidth(items[1]))

	_, err = NewFirstFit().LayoutParagraph(items, 10)
	require.NoError(t, err)
}

func TestKnuthPlassFlaggedDemerits(t *testing.T) {
	items := []Item{
		Box(5), Penalty(0, 0, true),
		Box(5), Penalty(0, 0, true),
		Box(5), Penalty(0, -Infinity, true),
	}

	breaks, err := Break(items, 5, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, breakIndices(breaks))
	assert.InDelta(t, 500, breaks[2].Demerits, 1e-9)

	breaks, err = Break(items, 5, DefaultConfig().WithFlaggedDemerits(0))
	require.NoError(t, err)
	assert.InDelta(t, 300, breaks[2].Demerits, 1e-9)
}

func TestKnuthPlassPenaltyCost(t *testing.T) {
	// Two words per line either way; the cost of the penalty after the
	// second word is added to or taken from the first line.
	items := func(cost float64) []Item {
		return []Item{
			Box(2), Glue(1, 1, 1), Box(2), Penalty(0, cost, false), Glue(1, 1, 1),
			Box(2), Glue(1, 1, 1), Box(2), ForcedBreak(),
		}
	}

	breaks, err := Break(items(-50), 5, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, breakIndices(breaks))
	assert.InDelta(t, -2400, breaks[0].Demerits, 1e-9)

	breaks, err = Break(items(200), 5, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, breakIndices(breaks))
	assert.InDelta(t, 40100, breaks[0].Demerits, 1e-9)
}

func TestKnuthPlassForbiddenPenalty(t *testing.T) {
	items := []Item{Box(5), ForbiddenBreak(), Box(5), ForcedBreak()}
	breaks, err := Break(items, 5, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.Equal(t, 3, breaks[0].BreakAt)
	assert.True(t, breaks[0].Overfull())
}

func TestKnuthPlassInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		width float64
	}{
		{"empty", nil, 80},
		{"no terminal break", []Item{Box(1), Glue(1, 1, 0), Box(1)}, 80},
		{"terminal penalty not forced", []Item{Box(1), Penalty(0, 0, false)}, 80},
		{"zero width", []Item{Box(1), ForcedBreak()}, 0},
		{"negative width", []Item{Box(1), ForcedBreak()}, -5},
		{"infinite width", []Item{Box(1), ForcedBreak()}, math.Inf(1)},
		{"NaN width", []Item{Box(1), ForcedBreak()}, math.NaN()},
		{"negative box", []Item{Box(-1), ForcedBreak()}, 80},
		{"NaN box", []Item{Box(math.NaN()), ForcedBreak()}, 80},
		{"negative stretch", []Item{Box(1), Glue(1, -1, 0), Box(1), ForcedBreak()}, 80},
		{"NaN shrink", []Item{Box(1), Glue(1, 1, math.NaN()), Box(1), ForcedBreak()}, 80},
		{"infinite shrink", []Item{Box(1), Glue(1, 1, math.Inf(1)), Box(1), ForcedBreak()}, 80},
		{"NaN cost", []Item{Box(1), Penalty(0, math.NaN(), false), ForcedBreak()}, 80},
		{"unknown kind", []Item{{Kind: Kind(7)}, ForcedBreak()}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Break(tt.items, tt.width, DefaultConfig())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = NewFirstFit().LayoutParagraph(tt.items, tt.width)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestKnuthPlassInvalidConfig(t *testing.T) {
	items := []Item{Box(1), ForcedBreak()}
	_, err := Break(items, 10, DefaultConfig().WithThreshold(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Break(items, 10, DefaultConfig().WithLinePenalty(math.NaN()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// randomParagraph produces words of unit boxes separated by glue, with
// occasional hyphenation penalties and explicit breaks.
func randomParagraph(rng *rand.Rand) []Item {
	var items []Item
	words := 1 + rng.IntN(60)
	for w := range words {
		if w > 0 {
			if rng.IntN(25) == 0 {
				items = append(items, ForcedBreak())
			} else {
				items = append(items, Glue(1, float64(rng.IntN(3)), float64(rng.IntN(2))))
			}
		}
		for range 1 + rng.IntN(12) {
			items = append(items, Box(1))
		}
		if rng.IntN(6) == 0 {
			items = append(items, Penalty(1, 50, true))
			for range 1 + rng.IntN(4) {
				items = append(items, Box(1))
			}
		}
	}
	return append(items, ForcedBreak())
}

func TestKnuthPlassProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 300 {
		items := randomParagraph(rng)
		width := float64(5 + rng.IntN(60))

		breaks, err := Break(items, width, DefaultConfig())
		require.NoError(t, err, "unlimited threshold never fails")
		require.NotEmpty(t, breaks)

		prev := -1
		for i, b := range breaks {
			assert.Greater(t, b.BreakAt, prev)
			assert.True(t, IsLegalBreak(items, b.BreakAt), "break %d at item %d", i, b.BreakAt)
			assert.Equal(t, i+1, b.Line)
			prev = b.BreakAt
		}
		assert.Equal(t, len(items)-1, breaks[len(breaks)-1].BreakAt)

		// Every forced break in the paragraph ends a line.
		at := map[int]bool{}
		for _, b := range breaks {
			at[b.BreakAt] = true
		}
		for i, it := range items {
			if it.IsForcedBreak() {
				assert.True(t, at[i], "forced break at item %d", i)
			}
		}

		again, err := Break(items, width, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, breaks, again)
	}
}

func TestKnuthPlassConcurrentCalls(t *testing.T) {
	kp := NewKnuthPlass(DefaultConfig())
	items := runeItems(farOut, false)

	var wg sync.WaitGroup
	results := make([][]int, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			breaks, err := kp.LayoutParagraph(items, 80)
			results[i], errs[i] = breakIndices(breaks), err
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, []int{77, 152, 230, 303, 375}, results[i])
	}
}

func TestKnuthPlassLeavesItemsUntouched(t *testing.T) {
	items := runeItems(farOut, true)
	before := append([]Item(nil), items...)
	_, err := Break(items, 80, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, before, items)
}

func BenchmarkKnuthPlass(b *testing.B) {
	items := runeItems(farOut, false)
	kp := NewKnuthPlass(DefaultConfig())
	for b.Loop() {
		if _, err := kp.LayoutParagraph(items, 80); err != nil {
			b.Fatal(err)
		}
	}
}
