package paragraph

import (
	"fmt"
	"strings"

	"github.com/ByLCY/justify/linebreak"
)

// Segment is a run of visible text placed on a line.
type Segment struct {
	Text  string
	X     float64
	Width float64
	// Space is set when glue separates the segment from the previous one.
	Space bool
}

// Line is one output line of a broken paragraph.
type Line struct {
	Number int
	// Start and End delimit the items set on the line; End is the break item.
	Start, End int
	Content    string
	Segments   []Segment
	// NaturalWidth is the width before glue adjustment, Width after.
	NaturalWidth    float64
	Width           float64
	AdjustmentRatio float64
	Fitness         linebreak.Fitness
	Demerits        float64
	// Hyphenated is set when the line ends at a flagged penalty.
	Hyphenated bool
}

// Layout breaks the paragraph with l and slices the result into lines.
func (p *Paragraph) Layout(l linebreak.Layout, width float64) ([]Line, error) {
	breaks, err := l.LayoutParagraph(p.Items, width)
	if err != nil {
		return nil, err
	}
	return p.Lines(breaks)
}

// Lines slices the paragraph at breaks. Glue and penalties that directly
// follow a break are discarded, the way a typesetter drops the space at the
// start of a continuation line.
func (p *Paragraph) Lines(breaks []linebreak.Breakpoint) ([]Line, error) {
	lines := make([]Line, 0, len(breaks))
	start := 0
	for i, b := range breaks {
		if b.BreakAt < start || b.BreakAt >= len(p.Items) || !linebreak.IsLegalBreak(p.Items, b.BreakAt) {
			return nil, fmt.Errorf("%w: breakpoint %d at item %d is out of order or not a legal break", linebreak.ErrInvalidInput, i, b.BreakAt)
		}
		if i > 0 {
			for start < b.BreakAt && p.Items[start].Kind != linebreak.KindBox {
				start++
			}
		}
		lines = append(lines, p.line(i+1, start, b))
		start = b.BreakAt + 1
	}
	return lines, nil
}

func (p *Paragraph) line(number, start int, b linebreak.Breakpoint) Line {
	l := Line{
		Number:          number,
		Start:           start,
		End:             b.BreakAt,
		AdjustmentRatio: b.AdjustmentRatio,
		Fitness:         b.Fitness,
		Demerits:        b.Demerits,
	}
	var (
		content strings.Builder
		x       float64
		space   bool
		gap     strings.Builder
	)
	for i := start; i < b.BreakAt; i++ {
		it := p.Items[i]
		switch it.Kind {
		case linebreak.KindBox:
			if s := p.text(i); s != "" {
				if space && content.Len() > 0 {
					content.WriteString(gap.String())
				}
				content.WriteString(s)
				l.Segments = append(l.Segments, Segment{Text: s, X: x, Width: it.Width, Space: space && len(l.Segments) > 0})
			}
			space = false
			gap.Reset()
			x += it.Width
			l.NaturalWidth += it.Width
		case linebreak.KindGlue:
			// Per-rune glue keeps its own whitespace; a word gap collapses to one space.
			switch {
			case p.Granularity == PerRune && p.text(i) != "":
				gap.WriteString(p.text(i))
			case gap.Len() == 0:
				gap.WriteByte(' ')
			}
			space = true
			x += b.GlueWidth(it)
			l.NaturalWidth += it.Width
		}
	}
	if end := p.Items[b.BreakAt]; end.Kind == linebreak.KindPenalty && end.Flagged && !end.IsForcedBreak() {
		l.Hyphenated = true
		if end.Width > 0 {
			content.WriteString(hyphen)
			l.Segments = append(l.Segments, Segment{Text: hyphen, X: x, Width: end.Width})
			x += end.Width
			l.NaturalWidth += end.Width
		}
	}
	l.Content = content.String()
	l.Width = x
	return l
}

func (p *Paragraph) text(i int) string {
	if i >= len(p.Spans) {
		return ""
	}
	s := p.Spans[i]
	return p.Text[s.Start:s.End]
}
