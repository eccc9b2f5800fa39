package aliquot

import (
	"fmt"
	"strings"
)

// Quadrant is one of the four quarters of a square.
type Quadrant uint8

// Quadrants in drawing order: top row left to right, then bottom row.
const (
	NW Quadrant = iota
	NE
	SW
	SE
)

// Quadrants lists every quadrant in drawing order.
var Quadrants = [4]Quadrant{NW, NE, SW, SE}

var quadrantNames = [4]string{"NW", "NE", "SW", "SE"}

// String returns the two-letter label, e.g. "NE".
func (q Quadrant) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quadrant(%d)", uint8(q))
	}
	return quadrantNames[q]
}

// Valid reports whether q is one of the four quadrants.
func (q Quadrant) Valid() bool { return q <= SE }

// East reports whether q lies in the east half of its parent.
func (q Quadrant) East() bool { return q == NE || q == SE }

// South reports whether q lies in the south half of its parent.
func (q Quadrant) South() bool { return q == SW || q == SE }

// ParseQuadrant parses a two-letter quadrant label (case-insensitive).
func ParseQuadrant(s string) (Quadrant, bool) {
	switch strings.ToUpper(s) {
	case "NW":
		return NW, true
	case "NE":
		return NE, true
	case "SW":
		return SW, true
	case "SE":
		return SE, true
	}
	return 0, false
}

// Path is a sequence of quadrants from the section root to a division.
// The empty path is the whole section.
type Path []Quadrant

// Depth returns the number of subdivisions in p.
func (p Path) Depth() int { return len(p) }

// String returns p in clean notation, smallest division first: the path
// root → NE → NW prints as "NWNE". The empty path prints as "ALL".
func (p Path) String() string {
	if len(p) == 0 {
		return "ALL"
	}
	var b strings.Builder
	for i := len(p) - 1; i >= 0; i-- {
		b.WriteString(p[i].String())
	}
	return b.String()
}

// Equal reports whether p and o name the same division.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Child returns a new path extending p by q.
func (p Path) Child(q Quadrant) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, q)
}
