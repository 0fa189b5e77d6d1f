package linebreak

import (
	"fmt"
	"math"
)

// Fitness buckets a line's adjustment ratio. Adjacent lines whose classes are
// more than one apart are visually jarring and cost extra demerits.
type Fitness uint8

const (
	FitnessTight     Fitness = iota // r < -1/2
	FitnessDecent                   // -1/2 <= r <= 1/2
	FitnessLoose                    // 1/2 < r <= 1
	FitnessVeryLoose                // r > 1
)

const fitnessClasses = 4

// FitnessFor returns the class of a line with adjustment ratio r.
func FitnessFor(r float64) Fitness {
	switch {
	case r < -0.5:
		return FitnessTight
	case r <= 0.5:
		return FitnessDecent
	case r <= 1:
		return FitnessLoose
	default:
		return FitnessVeryLoose
	}
}

func (f Fitness) distance(o Fitness) int {
	d := int(f) - int(o)
	if d < 0 {
		return -d
	}
	return d
}

func (f Fitness) String() string {
	switch f {
	case FitnessTight:
		return "tight"
	case FitnessDecent:
		return "decent"
	case FitnessLoose:
		return "loose"
	case FitnessVeryLoose:
		return "very-loose"
	default:
		return fmt.Sprintf("fitness(%d)", uint8(f))
	}
}

// MarshalText encodes the class by name.
func (f Fitness) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (f *Fitness) UnmarshalText(b []byte) error {
	for c := FitnessTight; c <= FitnessVeryLoose; c++ {
		if c.String() == string(b) {
			*f = c
			return nil
		}
	}
	return fmt.Errorf("unknown fitness class %q", b)
}

// Breakpoint describes where one output line ends and how its glue must be
// adjusted to fill the line width.
type Breakpoint struct {
	// BreakAt is the index of the item the line ends at.
	BreakAt int
	// Line is the 1-based line number.
	Line int
	// AdjustmentRatio is the fraction of the line's stretch (positive) or
	// shrink (negative) needed to reach the line width exactly. It is +Inf
	// for an underfull line with no stretch and -Inf for an overfull line
	// with no shrink.
	AdjustmentRatio float64
	Fitness         Fitness
	// Demerits accumulated from the start of the paragraph through this line.
	Demerits float64
}

// GlueWidth returns the rendered width of a glue item on this line.
func (b Breakpoint) GlueWidth(g Item) float64 {
	r := b.AdjustmentRatio
	switch {
	case r > 0 && g.Stretch > 0:
		return g.Width + g.Stretch*r
	case r < 0 && g.Shrink > 0:
		return g.Width + g.Shrink*r
	default:
		return g.Width
	}
}

// Overfull reports whether the line is wider than the target even with all
// of its shrink used.
func (b Breakpoint) Overfull() bool {
	return b.AdjustmentRatio < -1
}

// Underfull reports whether the line is shorter than the target and has no
// stretch to fill it.
func (b Breakpoint) Underfull() bool {
	return math.IsInf(b.AdjustmentRatio, 1)
}
