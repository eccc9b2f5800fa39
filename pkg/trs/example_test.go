package trs_test

import (
	"fmt"
	"slices"

	"github.com/matzehuels/trsplat/pkg/trs"
)

func ExampleParse() {
	t, err := trs.Parse("T154N-R97W-S14")
	if err != nil {
		panic(err)
	}
	fmt.Println(t)
	fmt.Println(t.TwpRgeKey(), t.Sec)
	fmt.Println(t.Pretty(false))
	fmt.Println(t.Pretty(true))
	// Output:
	// 154n97w14
	// 154n97w 14
	// Township 154 North, Range 97 West
	// T154N-R97W
}

func ExampleCompare() {
	ts := []trs.TRS{
		trs.MustParse("154n97w01"),
		trs.MustParse("155n97w01"),
		trs.MustParse("154n98w01"),
	}
	slices.SortFunc(ts, trs.Compare)
	for _, t := range ts {
		fmt.Println(t.TwpRgeKey())
	}
	// Output:
	// 155n97w
	// 154n98w
	// 154n97w
}
