// Package linebreak computes line-break positions for a paragraph that has
// already been decomposed into boxes, glue and penalties.
//
// The paragraph is a slice of Item values ending in a forced break. A Layout
// turns it into an ordered slice of Breakpoint values, one per output line.
// KnuthPlass searches for the breaking with the fewest total demerits over the
// whole paragraph; FirstFit fills each line greedily and is useful as a fast
// fallback with the same call contract.
//
// Everything in this package is a pure function of its inputs. Layouts keep no
// state between calls and may be shared between goroutines.
package linebreak
