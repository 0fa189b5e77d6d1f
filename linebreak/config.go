package linebreak

import (
	"fmt"
	"math"
)

// Badness limits. Underfull lines are capped at MaxBadness so that a line
// with no stretch still has a finite cost; overfull lines rank just above it.
const (
	MaxBadness      = 10000.0
	OverfullBadness = MaxBadness + 1
)

// Config holds the tuning parameters of a layout call. It is a plain value:
// the With* methods return modified copies and never change the receiver.
type Config struct {
	// Threshold is the largest badness accepted for a line that does not end
	// at a forced break. +Inf accepts every line, including overfull ones
	// when nothing else is possible.
	Threshold float64
	// Looseness asks for a paragraph that is this many lines longer
	// (positive) or shorter (negative) than the optimum, if such a breaking
	// is feasible.
	Looseness int
	// LinePenalty is added to every line's badness before squaring.
	LinePenalty float64
	// FlaggedDemerits is charged when two consecutive lines both end at
	// flagged penalties.
	FlaggedDemerits float64
	// FitnessDemerits is charged when adjacent lines are more than one
	// fitness class apart.
	FitnessDemerits float64
}

// DefaultConfig returns the parameters used when none are given: unlimited
// threshold, zero looseness, line penalty 10 and 100 demerits for flagged and
// fitness changes.
func DefaultConfig() Config {
	return Config{
		Threshold:       Infinity,
		Looseness:       0,
		LinePenalty:     10,
		FlaggedDemerits: 100,
		FitnessDemerits: 100,
	}
}

func (c Config) WithThreshold(threshold float64) Config {
	c.Threshold = threshold
	return c
}

func (c Config) WithLooseness(looseness int) Config {
	c.Looseness = looseness
	return c
}

func (c Config) WithLinePenalty(p float64) Config {
	c.LinePenalty = p
	return c
}

func (c Config) WithFlaggedDemerits(d float64) Config {
	c.FlaggedDemerits = d
	return c
}

func (c Config) WithFitnessDemerits(d float64) Config {
	c.FitnessDemerits = d
	return c
}

// Validate checks that every parameter is usable. Errors wrap ErrInvalidInput.
func (c Config) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be a non-negative number, got %g", ErrInvalidInput, c.Threshold)
	}
	weights := []struct {
		name string
		v    float64
	}{
		{"line penalty", c.LinePenalty},
		{"flagged demerits", c.FlaggedDemerits},
		{"fitness demerits", c.FitnessDemerits},
	}
	for _, w := range weights {
		if math.IsNaN(w.v) || math.IsInf(w.v, 0) || w.v < 0 {
			return fmt.Errorf("%w: %s must be finite and non-negative, got %g", ErrInvalidInput, w.name, w.v)
		}
	}
	return nil
}

// unlimited reports whether every line is acceptable.
func (c Config) unlimited() bool {
	return math.IsInf(c.Threshold, 1)
}
