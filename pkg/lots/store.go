package lots

import (
	"slices"
	"strings"

	"github.com/matzehuels/trsplat/pkg/trs"
)

// orderedMap is a map that remembers insertion order.
type orderedMap[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{m: make(map[K]V)}
}

func (o *orderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := o.m[k]
	return v, ok
}

// Set stores v under k. Overwriting keeps the original position.
func (o *orderedMap[K, V]) Set(k K, v V) {
	if _, ok := o.m[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.m[k] = v
}

func (o *orderedMap[K, V]) Delete(k K) {
	if _, ok := o.m[k]; !ok {
		return
	}
	delete(o.m, k)
	o.keys = slices.DeleteFunc(o.keys, func(x K) bool { return x == k })
}

func (o *orderedMap[K, V]) Keys() []K { return slices.Clone(o.keys) }

func (o *orderedMap[K, V]) Len() int { return len(o.keys) }

// Definition is one lot's aliquot equivalent.
type Definition struct {
	// Source is the cleaned aliquot text as it was defined ("N2NE", "E2NW,SWNW").
	Source string
	// QQs is Source expanded to quarter-quarter names.
	QQs []string
}

// single reports whether Source names exactly one aliquot, which is the only
// case where a lot division prefix ("N2 of L1") can be applied.
func (d Definition) single() bool {
	return d.Source != "" && !strings.ContainsAny(d.Source, ",;")
}

// Section holds the lot definitions of one section, keyed by lot name.
type Section struct {
	lots *orderedMap[string, Definition]
}

func newSection() *Section { return &Section{lots: newOrderedMap[string, Definition]()} }

// Get returns the definition of lot ("L1").
func (s *Section) Get(lot string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	return s.lots.Get(lot)
}

// Lots returns the defined lot names in definition order.
func (s *Section) Lots() []string {
	if s == nil {
		return nil
	}
	return s.lots.Keys()
}

// Len returns the number of defined lots.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return s.lots.Len()
}

func (s *Section) clone() *Section {
	out := newSection()
	for _, k := range s.lots.Keys() {
		v, _ := s.lots.Get(k)
		out.lots.Set(k, v)
	}
	return out
}

// Store is the three-level keyed store behind a Definer:
// Twp/Rge ("154n97w") to section TRS ("154n97w01") to lot name ("L1").
type Store struct {
	twprges *orderedMap[string, *orderedMap[string, *Section]]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{twprges: newOrderedMap[string, *orderedMap[string, *Section]]()}
}

// Section returns the definitions for the section t, or nil.
func (s *Store) Section(t trs.TRS) *Section {
	secs, ok := s.twprges.Get(t.TwpRgeKey())
	if !ok {
		return nil
	}
	sec, _ := secs.Get(t.String())
	return sec
}

// Set stores a single lot definition, replacing any earlier one.
func (s *Store) Set(t trs.TRS, lot string, def Definition) {
	s.ensure(t).lots.Set(lot, def)
}

// PutSection replaces all definitions of section t.
func (s *Store) PutSection(t trs.TRS, sec *Section) {
	secs, ok := s.twprges.Get(t.TwpRgeKey())
	if !ok {
		secs = newOrderedMap[string, *Section]()
		s.twprges.Set(t.TwpRgeKey(), secs)
	}
	secs.Set(t.String(), sec)
}

func (s *Store) ensure(t trs.TRS) *Section {
	sec := s.Section(t)
	if sec == nil {
		sec = newSection()
		s.PutSection(t, sec)
	}
	return sec
}

// TwpRges returns the Twp/Rge keys in insertion order.
func (s *Store) TwpRges() []string { return s.twprges.Keys() }

// Sections returns the section TRS keys of twprge in insertion order.
func (s *Store) Sections(twprge string) []string {
	secs, ok := s.twprges.Get(twprge)
	if !ok {
		return nil
	}
	return secs.Keys()
}

// Each calls fn for every defined lot in store order.
func (s *Store) Each(fn func(t trs.TRS, lot string, def Definition)) {
	for _, tr := range s.twprges.Keys() {
		secs, _ := s.twprges.Get(tr)
		for _, key := range secs.Keys() {
			sec, _ := secs.Get(key)
			t := trs.MustParse(key)
			for _, lot := range sec.Lots() {
				def, _ := sec.Get(lot)
				fn(t, lot, def)
			}
		}
	}
}

// Len returns the number of sections with at least one definition.
func (s *Store) Len() int {
	n := 0
	for _, tr := range s.twprges.Keys() {
		secs, _ := s.twprges.Get(tr)
		for _, key := range secs.Keys() {
			if sec, _ := secs.Get(key); sec.Len() > 0 {
				n++
			}
		}
	}
	return n
}

func (s *Store) clone() *Store {
	out := NewStore()
	for _, tr := range s.twprges.Keys() {
		secs, _ := s.twprges.Get(tr)
		for _, key := range secs.Keys() {
			sec, _ := secs.Get(key)
			out.PutSection(trs.MustParse(key), sec.clone())
		}
	}
	return out
}
