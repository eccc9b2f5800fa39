package plat

import (
	"slices"
	"strings"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Plattable is anything that can be queued onto a plat. The variants are
// [TractItem], [Tracts], [SectionGrid] and [TownshipGrid]; each knows how
// to turn itself into tracts.
type Plattable interface {
	tracts() ([]*tract.Tract, error)
}

// TractItem queues a single tract.
type TractItem struct{ Tract *tract.Tract }

// Tracts queues a list of tracts, such as a fully parsed land description.
type Tracts []*tract.Tract

// SectionGrid queues aliquots of one section directly, bypassing lot
// resolution.
type SectionGrid struct {
	TRS      trs.TRS
	Aliquots []string
}

// TownshipGrid queues aliquots for any sections of one Twp/Rge, keyed by
// section number.
type TownshipGrid struct {
	TwpRge   trs.TRS
	Sections map[int][]string
}

func (p TractItem) tracts() ([]*tract.Tract, error) { return []*tract.Tract{p.Tract}, nil }

func (p Tracts) tracts() ([]*tract.Tract, error) { return slices.Clone([]*tract.Tract(p)), nil }

func (p SectionGrid) tracts() ([]*tract.Tract, error) {
	t, err := tract.New(p.TRS, strings.Join(p.Aliquots, ", "), p.Aliquots, nil)
	if err != nil {
		return nil, err
	}
	return []*tract.Tract{t}, nil
}

func (p TownshipGrid) tracts() ([]*tract.Tract, error) {
	secs := make([]int, 0, len(p.Sections))
	for sec := range p.Sections {
		secs = append(secs, sec)
	}
	slices.Sort(secs)
	var out []*tract.Tract
	for _, sec := range secs {
		sg := SectionGrid{TRS: p.TwpRge.WithSection(sec), Aliquots: p.Sections[sec]}
		ts, err := sg.tracts()
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

// NewSectionGrid builds a SectionGrid from aliquot text, checking it.
func NewSectionGrid(t trs.TRS, aliquots ...string) (SectionGrid, error) {
	for _, a := range aliquots {
		if _, err := aliquot.ExpandList(a, aliquot.QQ); err != nil {
			return SectionGrid{}, err
		}
	}
	return SectionGrid{TRS: t, Aliquots: aliquots}, nil
}

func expand(items []Plattable) ([]*tract.Tract, error) {
	var out []*tract.Tract
	for _, it := range items {
		ts, err := it.tracts()
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}
