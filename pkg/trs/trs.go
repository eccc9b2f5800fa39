package trs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/trsplat/pkg/errors"
)

// NS is the north/south direction of a township.
type NS byte

// EW is the east/west direction of a range.
type EW byte

const (
	North NS = 'n'
	South NS = 's'
	East  EW = 'e'
	West  EW = 'w'
)

// SectionsPerTownship is the number of sections in a standard township.
const SectionsPerTownship = 36

const (
	undefinedString = "___z___z__"
	errorString     = "XXXzXXXzXX"
)

type status uint8

const (
	statusOK status = iota
	statusError
)

// TRS identifies a Township/Range and, optionally, a Section.
// The zero value is the undefined TRS.
type TRS struct {
	TwpNum int
	NS     NS
	RgeNum int
	EW     EW
	Sec    int // 0 when no section is specified

	status status
	set    bool
}

// Undefined returns the sentinel for a tract with no identifiable location.
func Undefined() TRS { return TRS{} }

// Error returns the sentinel for a tract whose location failed to parse.
func Error() TRS { return TRS{status: statusError, set: true} }

// New builds a TRS from its components. A sec of 0 means no section.
func New(twpNum int, ns NS, rgeNum int, ew EW, sec int) (TRS, error) {
	if twpNum <= 0 || rgeNum <= 0 {
		return Error(), errors.New(errors.ErrCodeInvalidTRS, "township and range numbers must be positive (got %d, %d)", twpNum, rgeNum)
	}
	if ns != North && ns != South {
		return Error(), errors.New(errors.ErrCodeInvalidTRS, "invalid township direction %q", rune(ns))
	}
	if ew != East && ew != West {
		return Error(), errors.New(errors.ErrCodeInvalidTRS, "invalid range direction %q", rune(ew))
	}
	if sec < 0 {
		return Error(), errors.New(errors.ErrCodeInvalidTRS, "invalid section number %d", sec)
	}
	return TRS{TwpNum: twpNum, NS: ns, RgeNum: rgeNum, EW: ew, Sec: sec, set: true}, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// package-level tables.
func MustNew(twpNum int, ns NS, rgeNum int, ew EW, sec int) TRS {
	t, err := New(twpNum, ns, rgeNum, ew, sec)
	if err != nil {
		panic(err)
	}
	return t
}

var trsPattern = regexp.MustCompile(`^t?(\d{1,3})([ns])-?r?(\d{1,3})([ew])(?:-?(?:sec|s)?(\d{1,2}|__|xx))?$`)

// Parse parses a TRS string such as "154n97w01", "154n97w" or "T154N-R97W-S1".
// The sentinel strings parse to Undefined and Error.
func Parse(s string) (TRS, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch {
	case norm == "" || norm == strings.ToLower(undefinedString):
		return Undefined(), nil
	case norm == strings.ToLower(errorString):
		return Error(), nil
	}
	m := trsPattern.FindStringSubmatch(norm)
	if m == nil {
		if strings.HasPrefix(norm, "___") {
			return Undefined(), nil
		}
		return Error(), errors.New(errors.ErrCodeInvalidTRS, "cannot parse TRS %q", s)
	}
	twp, _ := strconv.Atoi(m[1])
	rge, _ := strconv.Atoi(m[3])
	sec := 0
	if m[5] != "" && m[5] != "__" && m[5] != "xx" {
		sec, _ = strconv.Atoi(m[5])
	}
	return New(twp, NS(m[2][0]), rge, EW(m[4][0]), sec)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) TRS {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTwpRge builds a TRS from separate Twp ("154n") and Rge ("97w") strings.
func FromTwpRge(twp, rge string, sec int) (TRS, error) {
	t, err := Parse(twp + rge)
	if err != nil {
		return t, err
	}
	if !t.IsValid() {
		return t, errors.New(errors.ErrCodeInvalidTRS, "cannot parse Twp/Rge %q %q", twp, rge)
	}
	return t.WithSection(sec), nil
}

// IsUndefined reports whether t is the undefined sentinel.
func (t TRS) IsUndefined() bool { return !t.set }

// IsError reports whether t is the error sentinel.
func (t TRS) IsError() bool { return t.set && t.status == statusError }

// IsValid reports whether t carries a real Township/Range.
func (t TRS) IsValid() bool { return t.set && t.status == statusOK }

// HasSection reports whether t names one of the 36 sections of its township.
func (t TRS) HasSection() bool {
	return t.IsValid() && t.Sec >= 1 && t.Sec <= SectionsPerTownship
}

// WithSection returns a copy of t for section sec. Sentinels are returned unchanged.
func (t TRS) WithSection(sec int) TRS {
	if !t.IsValid() {
		return t
	}
	t.Sec = sec
	return t
}

// TwpRge returns a copy of t without its section.
func (t TRS) TwpRge() TRS { return t.WithSection(0) }

// Twp returns the township part, e.g. "154n".
func (t TRS) Twp() string {
	switch {
	case t.IsError():
		return errorString[:4]
	case !t.IsValid():
		return undefinedString[:4]
	}
	return fmt.Sprintf("%d%c", t.TwpNum, t.NS)
}

// Rge returns the range part, e.g. "97w".
func (t TRS) Rge() string {
	switch {
	case t.IsError():
		return errorString[4:8]
	case !t.IsValid():
		return undefinedString[4:8]
	}
	return fmt.Sprintf("%d%c", t.RgeNum, t.EW)
}

// TwpRgeKey returns the Twp/Rge key, e.g. "154n97w".
func (t TRS) TwpRgeKey() string { return t.Twp() + t.Rge() }

// String returns the canonical form, e.g. "154n97w01".
func (t TRS) String() string {
	switch {
	case t.IsError():
		return errorString
	case !t.IsValid():
		return undefinedString
	case t.Sec == 0:
		return t.TwpRgeKey() + "__"
	}
	return fmt.Sprintf("%s%02d", t.TwpRgeKey(), t.Sec)
}

// Pretty formats the Twp/Rge for a plat header: "Township 154 North, Range 97 West",
// or "T154N-R97W" when short is set.
func (t TRS) Pretty(short bool) string {
	if !t.IsValid() {
		return t.TwpRgeKey()
	}
	if short {
		return strings.ToUpper(fmt.Sprintf("T%d%c-R%d%c", t.TwpNum, t.NS, t.RgeNum, t.EW))
	}
	ns, ew := "North", "West"
	if t.NS == South {
		ns = "South"
	}
	if t.EW == East {
		ew = "East"
	}
	return fmt.Sprintf("Township %d %s, Range %d %s", t.TwpNum, ns, t.RgeNum, ew)
}

// SameHemisphere reports whether t and u share both N/S and E/W directions.
func (t TRS) SameHemisphere(u TRS) bool {
	return t.NS == u.NS && t.EW == u.EW
}

// Compare orders a and b in plat reading order. It returns -1, 0 or +1.
func Compare(a, b TRS) int {
	if r := cmpInt(a.rank(), b.rank()); r != 0 || !a.IsValid() {
		return r
	}
	if a.NS != b.NS {
		if a.NS == North {
			return -1
		}
		return 1
	}
	if r := cmpInt(a.TwpNum, b.TwpNum); r != 0 {
		if a.NS == North {
			return -r
		}
		return r
	}
	if a.EW != b.EW {
		if a.EW == West {
			return -1
		}
		return 1
	}
	if r := cmpInt(a.RgeNum, b.RgeNum); r != 0 {
		if a.EW == West {
			return -r
		}
		return r
	}
	return cmpInt(a.Sec, b.Sec)
}

// Less reports whether a sorts before b.
func Less(a, b TRS) bool { return Compare(a, b) < 0 }

func (t TRS) rank() int {
	switch {
	case t.IsValid():
		return 0
	case t.IsError():
		return 2
	}
	return 1
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
