package grid

import "github.com/matzehuels/trsplat/pkg/trs"

// SectionNumbers is the PLSS section numbering in reading order. Sections
// snake from the northeast corner west, then back east one row down:
//
//	 6  5  4  3  2  1
//	 7  8  9 10 11 12
//	18 17 16 15 14 13
//	19 20 21 22 23 24
//	30 29 28 27 26 25
//	31 32 33 34 35 36
var SectionNumbers = snake()

var offsets = func() (o [trs.SectionsPerTownship + 1][2]int) {
	for k, sec := range SectionNumbers {
		o[sec] = [2]int{k / 6, k % 6}
	}
	return o
}()

func snake() [trs.SectionsPerTownship]int {
	var out [trs.SectionsPerTownship]int
	k := 0
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			n := row*6 + col + 1
			if row%2 == 0 {
				n = row*6 + 6 - col
			}
			out[k] = n
			k++
		}
	}
	return out
}

// GridOffset returns the row and column of section sec, counted from the
// northwest corner of the township.
func GridOffset(sec int) (row, col int, ok bool) {
	if sec < 1 || sec > trs.SectionsPerTownship {
		return 0, 0, false
	}
	o := offsets[sec]
	return o[0], o[1], true
}
