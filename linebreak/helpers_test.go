package linebreak

import (
	"unicode"
)

const farOut = "  Far out in the uncharted backwaters of the unfashionable end of the western spiral arm of the Galaxy lies a small unregarded yellow sun. Orbiting this at a distance of roughly ninety-two million miles is an utterly insignificant little blue-green planet whose ape-descended life forms are so amazingly primitive that they still think digital watches are a pretty neat idea."

// runeItems turns every rune into a unit box and every whitespace rune after
// the first item into glue(1,1,0). The paragraph ends with a flagged forced
// break, optionally preceded by a finishing glue.
func runeItems(text string, finish bool) []Item {
	var items []Item
	for _, r := range text {
		if unicode.IsSpace(r) && len(items) != 0 {
			items = append(items, Glue(1, 1, 0))
		} else {
			items = append(items, Box(1))
		}
	}
	if finish {
		items = append(items, Glue(0, 100000, 0))
	}
	return append(items, Penalty(0, -Infinity, true))
}

// sliceLines cuts an ASCII text at the given item indices. The break item
// itself is dropped.
func sliceLines(text string, breaks []Breakpoint) []string {
	var lines []string
	start := 0
	for _, b := range breaks {
		end := min(b.BreakAt, len(text))
		lines = append(lines, text[start:end])
		start = min(b.BreakAt+1, len(text))
	}
	return lines
}

func breakIndices(breaks []Breakpoint) []int {
	out := make([]int, len(breaks))
	for i, b := range breaks {
		out[i] = b.BreakAt
	}
	return out
}
