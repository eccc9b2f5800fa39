// Package tract defines the parsed land-description fragment that plats consume.
//
// A [Tract] is produced by an external land-description parser. This package
// only reads the parser's output: a TRS, the original description text, the
// aliquots the parser identified, and the lots it identified. Lot resolution
// (see package lots) attaches the lot-derived aliquots and any undefined
// lots; nothing else in a Tract is mutated after it is created.
package tract

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Tract is one Twp/Rge/Sec worth of a land description.
type Tract struct {
	TRS  trs.TRS
	Desc string

	// QQs are the aliquots identified directly in the description, in clean
	// notation at quarter-quarter granularity.
	QQs []string
	// Lots are the lots referenced by the description ("L1", "N2 of L3").
	Lots []string

	// LotQQs are the aliquot equivalents of Lots, set by lot resolution.
	LotQQs []string
	// UndefinedLots are the lots that could not be resolved.
	UndefinedLots []string
}

// New builds a tract, expanding aliquots to quarter-quarters and normalising
// lot names.
func New(t trs.TRS, desc string, aliquots, lots []string) (*Tract, error) {
	tr := &Tract{TRS: t, Desc: desc}
	for _, a := range aliquots {
		names, err := aliquot.ExpandNames(a, aliquot.QQ)
		if err != nil {
			return nil, fmt.Errorf("tract %s: %w", t, err)
		}
		tr.QQs = appendUnique(tr.QQs, names...)
	}
	for _, l := range lots {
		name, err := NormalizeLot(l)
		if err != nil {
			return nil, fmt.Errorf("tract %s: %w", t, err)
		}
		tr.Lots = appendUnique(tr.Lots, name)
	}
	return tr, nil
}

// HasLotsOrQQs reports whether the parser identified anything to plat.
func (t *Tract) HasLotsOrQQs() bool {
	return len(t.QQs) > 0 || len(t.Lots) > 0
}

// AllQQs returns the direct aliquots merged with the lot-derived ones,
// without duplicates.
func (t *Tract) AllQQs() []string {
	out := slices.Clone(t.QQs)
	return appendUnique(out, t.LotQQs...)
}

// Resolve records the outcome of lot resolution on the tract.
func (t *Tract) Resolve(lotQQs, undefined []string) {
	t.LotQQs = lotQQs
	t.UndefinedLots = undefined
}

// QuickDesc returns a short "trs: desc" summary used in warnings.
func (t *Tract) QuickDesc() string {
	desc := t.Desc
	if r := []rune(desc); len(r) > 40 {
		desc = string(r[:37]) + "..."
	}
	return fmt.Sprintf("%s: %s", t.TRS, desc)
}

// String implements fmt.Stringer.
func (t *Tract) String() string { return t.QuickDesc() }

var lotPattern = regexp.MustCompile(`^(?i)(?:(.+?)\s+of\s+)?l?(?:ot)?\s*0*(\d+)$`)

// NormalizeLot normalises a lot reference: "1", "l1", "Lot 01" all become
// "L1"; a division prefix is kept ("n2 of lot 3" becomes "N2 of L3").
func NormalizeLot(s string) (string, error) {
	m := lotPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", errors.New(errors.ErrCodeInvalidLot, "cannot parse lot %q", s)
	}
	name := "L" + m[2]
	if m[1] != "" {
		return aliquot.Clean(m[1]) + " of " + name, nil
	}
	return name, nil
}

// SplitLot separates a lot reference into its division prefix and lot
// name: "N2 of L1" returns ("N2", "L1").
func SplitLot(lot string) (div, name string) {
	if i := strings.Index(lot, " of "); i >= 0 {
		return lot[:i], lot[i+len(" of "):]
	}
	return "", lot
}

// LotNumber returns the integer of a lot name ("L12" returns 12).
func LotNumber(lot string) (int, bool) {
	_, name := SplitLot(lot)
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "L"))
	return n, err == nil
}

// Sort orders tracts by TRS in plat reading order, keeping the original
// order among tracts of the same section.
func Sort(ts []*Tract) {
	slices.SortStableFunc(ts, func(a, b *Tract) int { return trs.Compare(a.TRS, b.TRS) })
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}
