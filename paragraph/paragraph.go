// Package paragraph turns text into the box/glue/penalty items consumed by
// the linebreak package and turns the resulting breakpoints back into lines
// of positioned text.
package paragraph

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/justify/linebreak"
)

const (
	softHyphen = '\u00ad'
	hyphen     = "-"

	// finishingStretch is the stretch of the glue that fills the last line,
	// in space widths. It is large enough to absorb any realistic gap.
	finishingStretch = 1e5
)

// Measurer reports the typeset width of a string.
type Measurer interface {
	TextWidth(s string) float64
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(s string) float64

func (f MeasurerFunc) TextWidth(s string) float64 { return f(s) }

// Monospace measures one unit per rune.
var Monospace Measurer = MeasurerFunc(func(s string) float64 {
	return float64(utf8.RuneCountInString(s))
})

// Granularity selects how text is cut into boxes.
type Granularity uint8

const (
	// PerWord makes one box per word fragment and one glue per whitespace run.
	PerWord Granularity = iota
	// PerRune makes one item per rune, so item indices equal rune indices.
	PerRune
)

func (g Granularity) String() string {
	switch g {
	case PerWord:
		return "word"
	case PerRune:
		return "rune"
	default:
		return fmt.Sprintf("granularity(%d)", uint8(g))
	}
}

// ParseGranularity accepts "word" and "rune".
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word":
		return PerWord, nil
	case "rune", "char":
		return PerRune, nil
	default:
		return 0, fmt.Errorf("unknown granularity %q", s)
	}
}

// Options controls tokenization.
type Options struct {
	Granularity Granularity
	// SpaceStretch and SpaceShrink are fractions of the measured space width.
	SpaceStretch float64
	SpaceShrink  float64
	// FinishingGlue fills the last line with a very stretchable glue so that
	// it is set at natural width instead of being stretched.
	FinishingGlue bool
	// Indent is the width of an empty box placed before the first word.
	Indent float64
	// HyphenPenalty is the cost of breaking at a soft or hard hyphen.
	HyphenPenalty float64
}

// DefaultOptions returns per-word tokenization with TeX-like interword glue.
func DefaultOptions() Options {
	return Options{
		Granularity:   PerWord,
		SpaceStretch:  0.5,
		SpaceShrink:   1.0 / 3,
		FinishingGlue: true,
		HyphenPenalty: 50,
	}
}

// ReferenceOptions returns per-rune tokenization where a space stretches by
// its own width, never shrinks, and the last line gets no finishing glue.
func ReferenceOptions() Options {
	return Options{
		Granularity:   PerRune,
		SpaceStretch:  1,
		HyphenPenalty: 50,
	}
}

func (o Options) validate() error {
	for name, v := range map[string]float64{
		"space stretch":  o.SpaceStretch,
		"space shrink":   o.SpaceShrink,
		"indent":         o.Indent,
		"hyphen penalty": o.HyphenPenalty,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be finite and non-negative, got %g", linebreak.ErrInvalidInput, name, v)
		}
	}
	if o.Granularity > PerRune {
		return fmt.Errorf("%w: %v", linebreak.ErrInvalidInput, o.Granularity)
	}
	return nil
}

// Span is the byte range of Paragraph.Text an item was made from. Synthetic
// items (indent, finishing glue, the terminal break) have an empty span.
type Span struct {
	Start, End int
}

// Paragraph is text together with its item sequence.
type Paragraph struct {
	Text        string
	Granularity Granularity
	Items       []linebreak.Item
	Spans       []Span
}

// Build tokenizes text. The returned items always end with a forced break.
func Build(text string, m Measurer, opts Options) (*Paragraph, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no measurer", linebreak.ErrInvalidInput)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	b := &builder{p: &Paragraph{Text: text, Granularity: opts.Granularity}, m: m, opts: opts, space: m.TextWidth(" ")}
	if opts.Indent > 0 {
		b.emit(linebreak.Box(opts.Indent), Span{})
	}
	if opts.Granularity == PerRune {
		b.runes()
	} else {
		b.words()
	}
	if opts.FinishingGlue {
		end := Span{len(text), len(text)}
		b.emit(linebreak.ForbiddenBreak(), end)
		b.emit(linebreak.Glue(0, finishingStretch*math.Max(b.space, 1), 0), end)
	}
	b.emit(linebreak.ForcedBreak(), Span{len(text), len(text)})
	return b.p, nil
}

type builder struct {
	p     *Paragraph
	m     Measurer
	opts  Options
	space float64
}

func (b *builder) emit(it linebreak.Item, s Span) {
	b.p.Items = append(b.p.Items, it)
	b.p.Spans = append(b.p.Spans, s)
}

func (b *builder) glue(s Span) {
	b.emit(linebreak.Glue(b.space, b.space*b.opts.SpaceStretch, b.space*b.opts.SpaceShrink), s)
}

func (b *builder) hyphenPenalty(width float64, s Span) {
	b.emit(linebreak.Penalty(width, b.opts.HyphenPenalty, true), s)
}

// runes emits one item per rune. A whitespace rune is glue unless nothing
// precedes it, in which case it stays visible as a box.
func (b *builder) runes() {
	for i, r := range b.p.Text {
		s := Span{i, i + utf8.RuneLen(r)}
		switch {
		case r == softHyphen:
			b.hyphenPenalty(b.m.TextWidth(hyphen), s)
		case isSpace(r) && len(b.p.Items) != 0:
			b.glue(s)
		default:
			b.emit(linebreak.Box(b.m.TextWidth(string(r))), s)
		}
	}
}

// words collapses whitespace runs into single glues and drops leading and
// trailing whitespace.
func (b *builder) words() {
	text := b.p.Text
	started := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		j := i + size
		if isSpace(r) {
			for j < len(text) {
				r, size := utf8.DecodeRuneInString(text[j:])
				if !isSpace(r) {
					break
				}
				j += size
			}
			if started && j < len(text) {
				b.glue(Span{i, j})
			}
			i = j
			continue
		}
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if isSpace(r) {
				break
			}
			j += size
		}
		b.word(i, j)
		started = true
		i = j
	}
}

// word emits the fragments of text[start:end]. A soft hyphen is replaced by a
// flagged penalty that typesets a hyphen; a hard hyphen between letters
// stays in its fragment and is followed by a flagged zero-width penalty.
func (b *builder) word(start, end int) {
	text := b.p.Text
	frag := start
	flush := func(to int) {
		if to > frag {
			b.emit(linebreak.Box(b.m.TextWidth(text[frag:to])), Span{frag, to})
		}
	}
	for k := start; k < end; {
		r, size := utf8.DecodeRuneInString(text[k:])
		switch {
		case r == softHyphen:
			flush(k)
			if k > start && k+size < end {
				b.hyphenPenalty(b.m.TextWidth(hyphen), Span{k, k + size})
			}
			frag = k + size
		case r == '-' && k > frag && k+size < end:
			flush(k + size)
			b.hyphenPenalty(0, Span{k + size, k + size})
			frag = k + size
		}
		k += size
	}
	flush(end)
}

// isSpace reports breakable whitespace. No-break spaces are part of words.
func isSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(r)
}
