package lots

import (
	"github.com/matzehuels/trsplat/pkg/aliquot"
)

// Standard lot sizes, in acres.
const (
	LotSize40 = 40
	LotSize80 = 80
)

type lotTable []struct{ lot, aliquot string }

// Default lots in a standard township lie along the north and west
// boundaries.
var (
	def01to05_40 = lotTable{{"L1", "NENE"}, {"L2", "NWNE"}, {"L3", "NENW"}, {"L4", "NWNW"}}
	def06_40     = lotTable{
		{"L1", "NENE"}, {"L2", "NWNE"}, {"L3", "NENW"}, {"L4", "NWNW"},
		{"L5", "SWNW"}, {"L6", "NWSW"}, {"L7", "SWSW"},
	}
	defWest_40 = lotTable{{"L1", "NWNW"}, {"L2", "SWNW"}, {"L3", "NWSW"}, {"L4", "SWSW"}}

	def01to05_80 = lotTable{{"L1", "N2NE"}, {"L2", "N2NW"}}
	// L2 is the exception: a single QQ in an otherwise 80-acre table.
	def06_80   = lotTable{{"L1", "N2NE"}, {"L2", "NENW"}, {"L3", "W2NW"}, {"L4", "W2SW"}}
	defWest_80 = lotTable{{"L1", "W2NW"}, {"L2", "W2SW"}}
)

func defaultTable(sec, size int) lotTable {
	north, six, west := def01to05_40, def06_40, defWest_40
	if size == LotSize80 {
		north, six, west = def01to05_80, def06_80, defWest_80
	}
	switch sec {
	case 1, 2, 3, 4, 5:
		return north
	case 6:
		return six
	case 7, 18, 19, 30, 31:
		return west
	}
	return nil
}

// DefaultSection returns the standard-township default lots of section sec,
// or nil when the section has none.
func DefaultSection(sec, size int) *Section {
	table := defaultTable(sec, size)
	if table == nil {
		return nil
	}
	out := newSection()
	for _, row := range table {
		qqs, err := aliquot.ExpandNames(row.aliquot, aliquot.QQ)
		if err != nil {
			panic("lots: bad default table entry " + row.aliquot)
		}
		out.lots.Set(row.lot, Definition{Source: row.aliquot, QQs: qqs})
	}
	return out
}

// DefaultSections lists the sections that carry default lots.
var DefaultSections = []int{1, 2, 3, 4, 5, 6, 7, 18, 19, 30, 31}
