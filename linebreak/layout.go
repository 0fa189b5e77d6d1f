package linebreak

import (
	"fmt"
	"math"
)

// Layout is the call contract shared by every breaking strategy.
//
// LayoutParagraph partitions items into lines no wider than maxWidth after
// glue adjustment and returns one Breakpoint per line in ascending order. The
// last breakpoint is always the terminal forced break. Invalid arguments
// produce an error wrapping ErrInvalidInput; a paragraph that cannot be broken
// under the strategy's limits produces one wrapping ErrInfeasibleBreak.
type Layout interface {
	LayoutParagraph(items []Item, maxWidth float64) ([]Breakpoint, error)
}

// LayoutFunc adapts a plain function to the Layout interface.
type LayoutFunc func(items []Item, maxWidth float64) ([]Breakpoint, error)

func (f LayoutFunc) LayoutParagraph(items []Item, maxWidth float64) ([]Breakpoint, error) {
	return f(items, maxWidth)
}

var (
	_ Layout = (*KnuthPlass)(nil)
	_ Layout = (*FirstFit)(nil)
	_ Layout = LayoutFunc(nil)
)

// validate checks the preconditions every strategy relies on.
func validate(items []Item, maxWidth float64) error {
	if math.IsNaN(maxWidth) || math.IsInf(maxWidth, 0) || maxWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive and finite, got %g", ErrInvalidInput, maxWidth)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: empty item sequence", ErrInvalidInput)
	}
	if last := items[len(items)-1]; !last.IsForcedBreak() {
		return fmt.Errorf("%w: item %d must be a forced break, got %v", ErrInvalidInput, len(items)-1, last)
	}
	for i, it := range items {
		if it.Kind > KindPenalty {
			return fmt.Errorf("%w: item %d has unknown kind %d", ErrInvalidInput, i, it.Kind)
		}
		if math.IsNaN(it.Width) || math.IsInf(it.Width, 0) || it.Width < 0 {
			return fmt.Errorf("%w: item %d has width %g", ErrInvalidInput, i, it.Width)
		}
		switch it.Kind {
		case KindGlue:
			if math.IsNaN(it.Stretch) || it.Stretch < 0 || math.IsNaN(it.Shrink) || it.Shrink < 0 || math.IsInf(it.Shrink, 1) {
				return fmt.Errorf("%w: item %d has stretch %g and shrink %g", ErrInvalidInput, i, it.Stretch, it.Shrink)
			}
		case KindPenalty:
			if math.IsNaN(it.Cost) {
				return fmt.Errorf("%w: item %d has no cost", ErrInvalidInput, i)
			}
		}
	}
	return nil
}

// sums accumulates width, stretch and shrink. Penalties add nothing: their
// width only counts on the line that ends at them. Infinite stretch is
// counted in fil instead of stretch so that subtracting two sums stays finite.
type sums struct {
	width, stretch, shrink float64
	fil                    int
}

func (s *sums) add(it Item) {
	switch it.Kind {
	case KindBox:
		s.width += it.Width
	case KindGlue:
		s.width += it.Width
		if math.IsInf(it.Stretch, 1) {
			s.fil++
		} else {
			s.stretch += it.Stretch
		}
		s.shrink += it.Shrink
	}
}

func (s sums) sub(o sums) sums {
	return sums{s.width - o.width, s.stretch - o.stretch, s.shrink - o.shrink, s.fil - o.fil}
}

// skipAfter extends s (the sums of everything before b) over the glue that a
// break at b discards: all glue from b up to the next box, or up to the next
// forced break after b.
func skipAfter(items []Item, b int, s sums) sums {
	for i := b; i < len(items); i++ {
		it := items[i]
		if it.Kind == KindBox {
			break
		}
		if it.Kind == KindPenalty && it.IsForcedBreak() && i > b {
			break
		}
		s.add(it)
	}
	return s
}

// adjustmentRatio returns how much of the line's stretch or shrink is needed
// to fill maxWidth exactly. A line with infinite stretch has ratio 0.
func adjustmentRatio(line sums, maxWidth float64) float64 {
	switch {
	case line.width < maxWidth:
		if line.fil > 0 {
			// Infinite glue takes up the slack; finite glue keeps its width.
			return 0
		}
		if line.stretch > 0 {
			return (maxWidth - line.width) / line.stretch
		}
		return Infinity
	case line.width > maxWidth:
		if line.shrink > 0 {
			return (maxWidth - line.width) / line.shrink
		}
		return -Infinity
	default:
		return 0
	}
}

// badness grows with the cube of the ratio and is capped at MaxBadness.
// Overfull lines get OverfullBadness.
func badness(r float64) float64 {
	if r < -1 {
		return OverfullBadness
	}
	a := math.Abs(r)
	b := 100 * a * a * a
	if b > MaxBadness {
		return MaxBadness
	}
	return b
}
