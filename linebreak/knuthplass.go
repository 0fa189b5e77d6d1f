package linebreak

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// KnuthPlass breaks paragraphs optimally: among all feasible breakings it
// returns the one with the fewest total demerits, following Knuth and
// Plass, "Breaking Paragraphs into Lines" (1981).
type KnuthPlass struct {
	cfg Config
}

// NewKnuthPlass returns an optimal-fit layout using cfg for every call.
func NewKnuthPlass(cfg Config) *KnuthPlass {
	return &KnuthPlass{cfg: cfg}
}

// Config returns the parameters the layout was created with.
func (k *KnuthPlass) Config() Config {
	return k.cfg
}

// LayoutParagraph implements Layout.
func (k *KnuthPlass) LayoutParagraph(items []Item, maxWidth float64) ([]Breakpoint, error) {
	if err := k.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validate(items, maxWidth); err != nil {
		return nil, err
	}
	return newRun(items, maxWidth, k.cfg).layout()
}

// Break is shorthand for NewKnuthPlass(cfg).LayoutParagraph(items, maxWidth).
func Break(items []Item, maxWidth float64, cfg Config) ([]Breakpoint, error) {
	return NewKnuthPlass(cfg).LayoutParagraph(items, maxWidth)
}

const noNode = -1

// node is a feasible break. Nodes live in the run's arena and refer to their
// predecessor by index, which is always smaller than their own.
type node struct {
	position int // item index; -1 for the paragraph start
	line     int
	fitness  Fitness
	flagged  bool
	after    sums // running sums past the break, discarded glue included
	demerits float64
	ratio    float64
	prev     int
}

type candidate struct {
	ok       bool
	from     int
	demerits float64
	ratio    float64
}

// group collects the best candidate per fitness class for one line number.
// Without looseness every candidate shares line 0.
type group struct {
	line    int
	classes [fitnessClasses]candidate
	min     float64
}

// run is the working state of a single LayoutParagraph call.
type run struct {
	items  []Item
	width  float64
	cfg    Config
	total  sums
	nodes  []node
	active []int
	groups []group
}

func newRun(items []Item, width float64, cfg Config) *run {
	legal := 0
	for i := range items {
		if IsLegalBreak(items, i) {
			legal++
		}
	}
	r := &run{
		items:  items,
		width:  width,
		cfg:    cfg,
		nodes:  make([]node, 0, 1+fitnessClasses*legal),
		active: make([]int, 0, 2*fitnessClasses),
	}
	r.nodes = append(r.nodes, node{position: -1, fitness: FitnessDecent, prev: noNode})
	r.active = append(r.active, 0)
	return r
}

func (r *run) layout() ([]Breakpoint, error) {
	for b, it := range r.items {
		if IsLegalBreak(r.items, b) {
			if err := r.tryBreak(b); err != nil {
				return nil, err
			}
		}
		r.total.add(it)
	}
	return r.trace(r.choose()), nil
}

// tryBreak evaluates every active node against a break at b, retires nodes
// that can no longer start a feasible line and records the best new nodes.
func (r *run) tryBreak(b int) error {
	it := r.items[b]
	forced := it.IsForcedBreak()
	r.groups = r.groups[:0]

	kept := r.active[:0]
	for i, a := range r.active {
		line := r.total.sub(r.nodes[a].after)
		line.width += it.breakWidth()
		ratio := adjustmentRatio(line, r.width)

		if ratio >= -1 && !forced {
			kept = append(kept, a)
		}
		// A forced break waives the threshold but never feasibility.
		ok := ratio >= -1 && (forced || badness(ratio) <= r.cfg.Threshold)
		if !ok && r.cfg.unlimited() && len(kept) == 0 && len(r.groups) == 0 && i == len(r.active)-1 {
			// The last node would leave nothing to continue from. With no
			// threshold the overfull line is accepted instead.
			ok = true
		}
		if ok {
			r.consider(a, b, ratio)
		}
	}
	r.active = kept

	if len(r.groups) > 0 {
		after := skipAfter(r.items, b, r.total)
		slices.SortFunc(r.groups, func(x, y group) int { return cmp.Compare(x.line, y.line) })
		for _, g := range r.groups {
			limit := g.min + r.cfg.FitnessDemerits
			for f := range fitnessClasses {
				c := g.classes[f]
				if !c.ok || c.demerits > limit {
					continue
				}
				r.nodes = append(r.nodes, node{
					position: b,
					line:     r.nodes[c.from].line + 1,
					fitness:  Fitness(f),
					flagged:  it.isFlagged(),
					after:    after,
					demerits: c.demerits,
					ratio:    c.ratio,
					prev:     c.from,
				})
				r.active = append(r.active, len(r.nodes)-1)
			}
		}
	}

	if len(r.active) == 0 {
		return fmt.Errorf("%w: no acceptable line ends at item %d", ErrInfeasibleBreak, b)
	}
	return nil
}

// consider computes the demerits of the line from node a to break b and keeps
// it if it is the cheapest seen so far for its fitness class.
func (r *run) consider(a, b int, ratio float64) {
	from := r.nodes[a]
	it := r.items[b]

	d := r.cfg.LinePenalty + badness(ratio)
	d *= d
	switch cost := it.breakCost(); {
	case cost >= 0:
		d += cost * cost
	case !math.IsInf(cost, -1):
		d -= cost * cost
	}
	if it.isFlagged() && from.flagged {
		d += r.cfg.FlaggedDemerits
	}
	fit := FitnessFor(ratio)
	if fit.distance(from.fitness) > 1 {
		d += r.cfg.FitnessDemerits
	}
	total := from.demerits + d

	g := r.group(from.line)
	if c := &g.classes[fit]; !c.ok || total < c.demerits {
		*c = candidate{ok: true, from: a, demerits: total, ratio: ratio}
	}
	g.min = math.Min(g.min, total)
}

func (r *run) group(line int) *group {
	if r.cfg.Looseness == 0 {
		line = 0
	}
	for i := range r.groups {
		if r.groups[i].line == line {
			return &r.groups[i]
		}
	}
	r.groups = append(r.groups, group{line: line, min: math.Inf(1)})
	return &r.groups[len(r.groups)-1]
}

// choose picks the final node. Once the terminal forced break has been
// processed the active list only holds nodes that end the paragraph.
func (r *run) choose() int {
	best := r.active[0]
	for _, a := range r.active[1:] {
		n, b := r.nodes[a], r.nodes[best]
		if n.demerits < b.demerits || (n.demerits == b.demerits && n.line < b.line) {
			best = a
		}
	}

	q := r.cfg.Looseness
	if q == 0 {
		return best
	}
	optimum := r.nodes[best].line
	shift := 0
	for _, a := range r.active {
		n := r.nodes[a]
		delta := n.line - optimum
		switch {
		case (q <= delta && delta < shift) || (shift < delta && delta <= q):
			shift = delta
			best = a
		case delta == shift && n.demerits < r.nodes[best].demerits:
			best = a
		}
	}
	return best
}

// trace walks predecessor indices back to the paragraph start.
func (r *run) trace(last int) []Breakpoint {
	out := make([]Breakpoint, r.nodes[last].line)
	for i := last; r.nodes[i].prev != noNode; i = r.nodes[i].prev {
		n := r.nodes[i]
		out[n.line-1] = Breakpoint{
			BreakAt:         n.position,
			Line:            n.line,
			AdjustmentRatio: n.ratio,
			Fitness:         n.fitness,
			Demerits:        n.demerits,
		}
	}
	return out
}
