package linebreak

import (
	"fmt"
	"math"
)

// FirstFit fills each line with as much material as fits and breaks at the
// last legal break before the line overflows. It never looks ahead, so the
// result can be much worse than KnuthPlass, but it runs in a single pass.
type FirstFit struct {
	// Threshold is the largest badness accepted for a line that does not end
	// at a forced break.
	Threshold float64
	// AllowOverflow accepts an overfull line when a single unbreakable run is
	// wider than the line; otherwise that is an ErrInfeasibleBreak.
	AllowOverflow bool
}

// NewFirstFit returns a greedy layout with no badness limit that refuses to
// overflow.
func NewFirstFit() *FirstFit {
	return &FirstFit{Threshold: Infinity}
}

type pendingBreak struct {
	at    int
	ratio float64
	after sums
}

// LayoutParagraph implements Layout.
func (f *FirstFit) LayoutParagraph(items []Item, maxWidth float64) ([]Breakpoint, error) {
	if math.IsNaN(f.Threshold) || f.Threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must be a non-negative number, got %g", ErrInvalidInput, f.Threshold)
	}
	if err := validate(items, maxWidth); err != nil {
		return nil, err
	}

	var (
		total, start sums
		pending      *pendingBreak
		out          []Breakpoint
	)
	commit := func(at int, ratio float64, after sums) {
		out = append(out, Breakpoint{
			BreakAt:         at,
			Line:            len(out) + 1,
			AdjustmentRatio: ratio,
			Fitness:         FitnessFor(ratio),
		})
		start = after
		pending = nil
	}
	ratioAt := func(b int) float64 {
		line := total.sub(start)
		line.width += items[b].breakWidth()
		return adjustmentRatio(line, maxWidth)
	}

	for b, it := range items {
		if IsLegalBreak(items, b) {
			forced := it.IsForcedBreak()
			ratio := ratioAt(b)
			if ratio < -1 && pending != nil {
				if badness(pending.ratio) > f.Threshold {
					return nil, fmt.Errorf("%w: line ending at item %d is too loose", ErrInfeasibleBreak, pending.at)
				}
				commit(pending.at, pending.ratio, pending.after)
				ratio = ratioAt(b)
			}
			switch {
			case ratio < -1 && !f.AllowOverflow:
				return nil, fmt.Errorf("%w: material before item %d does not fit", ErrInfeasibleBreak, b)
			case ratio < -1 || forced:
				commit(b, ratio, skipAfter(items, b, total))
			default:
				pending = &pendingBreak{at: b, ratio: ratio, after: skipAfter(items, b, total)}
			}
		}
		total.add(it)
	}
	return out, nil
}
