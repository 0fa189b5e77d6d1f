package linebreak

import "errors"

var (
	// ErrInvalidInput reports an item sequence, width or configuration the
	// layouts cannot work with.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInfeasibleBreak reports that no breaking satisfies the threshold.
	// Layouts never relax the threshold on their own; retrying with a larger
	// one is up to the caller.
	ErrInfeasibleBreak = errors.New("infeasible break")
)
