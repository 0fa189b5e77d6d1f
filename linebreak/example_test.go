package linebreak_test

import (
	"fmt"

	"github.com/ByLCY/justify/linebreak"
)

func ExampleBreak() {
	items := []linebreak.Item{
		linebreak.Box(3), linebreak.Glue(1, 1, 1),
		linebreak.Box(3), linebreak.Glue(1, 1, 1),
		linebreak.Box(3),
		linebreak.Glue(0, 100, 0),
		linebreak.ForcedBreak(),
	}
	breaks, err := linebreak.Break(items, 7, linebreak.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range breaks {
		fmt.Printf("line %d ends at item %d, ratio %.2f (%s)\n", b.Line, b.BreakAt, b.AdjustmentRatio, b.Fitness)
	}
	// Output:
	// line 1 ends at item 3, ratio 0.00 (decent)
	// line 2 ends at item 6, ratio 0.04 (decent)
}

func ExampleFirstFit() {
	items := []linebreak.Item{
		linebreak.Box(3), linebreak.Glue(1, 1, 1),
		linebreak.Box(3), linebreak.Glue(1, 1, 1),
		linebreak.Box(3),
		linebreak.ForcedBreak(),
	}
	breaks, err := linebreak.NewFirstFit().LayoutParagraph(items, 7)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range breaks {
		fmt.Println(b.BreakAt, b.Fitness)
	}
	// Output:
	// 3 decent
	// 5 very-loose
}
