// Package textrenderer prints laid out paragraphs as monospace text, one
// framed block per paragraph.
package textrenderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/justify/layout"
	"github.com/ByLCY/justify/renderer"
)

// DefaultCellRatio is the advance of a Latin Modern Mono glyph in ems.
const DefaultCellRatio = 0.525

const pageSeparator = "\f\n"

var frameStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder())

// Renderer measures text in terminal cells and renders framed paragraphs.
// A cell is CellRatio times the font size wide.
type Renderer struct {
	CellRatio float64
}

var _ renderer.Backend = (*Renderer)(nil)

// New returns a renderer using DefaultCellRatio.
func New() *Renderer {
	return &Renderer{CellRatio: DefaultCellRatio}
}

func (r *Renderer) cell(size float64) float64 {
	ratio := r.CellRatio
	if ratio <= 0 {
		ratio = DefaultCellRatio
	}
	return size * ratio
}

// Face implements layout.Typesetter. Every glyph is one cell wide, East Asian
// wide glyphs two.
func (r *Renderer) Face(_ layout.FontResource, size float64) (layout.Face, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("字号必须为正数，实际 %g", size)
	}
	return face{cell: r.cell(size), lineHeight: size * 1.2}, nil
}

type face struct {
	cell       float64
	lineHeight float64
}

func (f face) TextWidth(s string) float64 {
	return float64(runewidth.StringWidth(s)) * f.cell
}

func (f face) LineHeight() float64 { return f.lineHeight }

// Render implements renderer.Renderer.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var out strings.Builder
	for i, page := range result.Pages {
		if i > 0 {
			out.WriteString(pageSeparator)
		}
		for j, pb := range page.Paragraphs {
			if j > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(r.Paragraph(pb))
			out.WriteByte('\n')
		}
	}
	return []byte(out.String()), nil
}

// Paragraph frames one paragraph box.
func (r *Renderer) Paragraph(pb layout.ParagraphBox) string {
	cell := r.cell(pb.FontSize)
	rows := make([]string, len(pb.Lines))
	for i, line := range pb.Lines {
		rows[i] = Row(line.Segments, cell)
	}
	return Frame(rows, int(math.Round(pb.Width/cell)))
}

// Row places segments at their X positions rounded to whole cells. A segment
// never overlaps the previous one and keeps at least one blank cell after it
// when glue separated them.
func Row(segs []layout.Segment, cell float64) string {
	var b strings.Builder
	col := 0
	for i, seg := range segs {
		at := int(math.Round(seg.X / cell))
		least := col
		if seg.Space && i > 0 {
			least++
		}
		at = max(at, least)
		b.WriteString(strings.Repeat(" ", at-col))
		b.WriteString(seg.Text)
		col = at + runewidth.StringWidth(seg.Text)
	}
	return b.String()
}

// Frame pads lines to width cells and draws a thick box around them. Lines
// wider than width widen the frame.
func Frame(lines []string, width int) string {
	padded := make([]string, len(lines))
	for i, l := range lines {
		padded[i] = runewidth.FillRight(l, width)
	}
	if len(padded) == 0 {
		padded = []string{strings.Repeat(" ", max(width, 0))}
	}
	return frameStyle.Render(strings.Join(padded, "\n"))
}
