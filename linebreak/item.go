package linebreak

import (
	"fmt"
	"math"
)

// Infinity is used for penalty costs and thresholds. A penalty of -Infinity
// forces a break, +Infinity forbids one.
var Infinity = math.Inf(1)

// Kind identifies the variant stored in an Item.
type Kind uint8

const (
	KindBox Kind = iota
	KindGlue
	KindPenalty
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindGlue:
		return "glue"
	case KindPenalty:
		return "penalty"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Item is one typesetting primitive of a paragraph. Its position is its index
// in the item slice. Fields that do not apply to the kind are ignored: a box
// only has a width, a glue has width/stretch/shrink, a penalty has
// width/cost/flagged.
type Item struct {
	Kind    Kind
	Width   float64
	Stretch float64
	Shrink  float64
	Cost    float64
	Flagged bool
}

// Box returns unbreakable content of the given width.
func Box(width float64) Item {
	return Item{Kind: KindBox, Width: width}
}

// Glue returns breakable space with a natural width and the amounts it may
// stretch or shrink by.
func Glue(width, stretch, shrink float64) Item {
	return Item{Kind: KindGlue, Width: width, Stretch: stretch, Shrink: shrink}
}

// Penalty returns an explicit candidate break. The width is only typeset when
// the line breaks here (a hyphen, for example).
func Penalty(width, cost float64, flagged bool) Item {
	return Item{Kind: KindPenalty, Width: width, Cost: cost, Flagged: flagged}
}

// ForcedBreak returns the zero-width penalty that must end every paragraph.
func ForcedBreak() Item {
	return Penalty(0, -Infinity, false)
}

// ForbiddenBreak returns a zero-width penalty at which no break may occur.
func ForbiddenBreak() Item {
	return Penalty(0, Infinity, false)
}

// IsForcedBreak reports whether the item is a penalty with cost -Infinity.
func (it Item) IsForcedBreak() bool {
	return it.Kind == KindPenalty && math.IsInf(it.Cost, -1)
}

// isFlagged reports whether a break at the item counts as flagged.
func (it Item) isFlagged() bool {
	return it.Kind == KindPenalty && it.Flagged
}

// breakWidth is the width the item adds to a line that ends on it.
func (it Item) breakWidth() float64 {
	if it.Kind == KindPenalty {
		return it.Width
	}
	return 0
}

// breakCost is the penalty cost of breaking at the item.
func (it Item) breakCost() float64 {
	if it.Kind == KindPenalty {
		return it.Cost
	}
	return 0
}

func (it Item) String() string {
	switch it.Kind {
	case KindBox:
		return fmt.Sprintf("box(%g)", it.Width)
	case KindGlue:
		return fmt.Sprintf("glue(%g,%g,%g)", it.Width, it.Stretch, it.Shrink)
	case KindPenalty:
		if it.Flagged {
			return fmt.Sprintf("penalty(%g,%g,flagged)", it.Width, it.Cost)
		}
		return fmt.Sprintf("penalty(%g,%g)", it.Width, it.Cost)
	default:
		return it.Kind.String()
	}
}

// IsLegalBreak reports whether a line may end at items[i]. Glue is a legal
// break only when it directly follows a box, so leading glue and runs of glue
// never offer a second break. A penalty is legal unless its cost is +Infinity.
func IsLegalBreak(items []Item, i int) bool {
	if i < 0 || i >= len(items) {
		return false
	}
	switch it := items[i]; it.Kind {
	case KindGlue:
		return i > 0 && items[i-1].Kind == KindBox
	case KindPenalty:
		return !math.IsInf(it.Cost, 1)
	default:
		return false
	}
}
