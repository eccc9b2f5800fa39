// Package lots resolves numbered lots into their aliquot equivalents.
//
// A [Definer] holds explicit per-section lot definitions and two policy
// flags: whether standard-township defaults may be assumed, and whether the
// standard lot is 40 or 80 acres. Resolution follows a fixed cascade:
//
//  1. an explicit definition for the section wins;
//  2. a section with no explicit definitions falls back to the default
//     table when defaults are allowed;
//  3. anything else is an undefined lot.
//
// Defaults are all-or-nothing per section. Once any lot of a section is
// explicitly defined, the defaults of that section are never consulted.
package lots

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Definer maps lots to aliquots.
type Definer struct {
	allowDefaults   bool
	standardLotSize int
	defs            *Store
	logger          *log.Logger

	mu     sync.Mutex
	primed *Store
}

// Option configures a Definer.
type Option func(*Definer) error

// WithDefaults sets whether standard-township defaults may be assumed.
func WithDefaults(allow bool) Option {
	return func(d *Definer) error {
		d.allowDefaults = allow
		return nil
	}
}

// WithStandardLotSize selects the 40- or 80-acre default tables.
func WithStandardLotSize(acres int) Option {
	return func(d *Definer) error { return d.SetStandardLotSize(acres) }
}

// WithLogger sets the logger for skipped or unusual definitions.
func WithLogger(l *log.Logger) Option {
	return func(d *Definer) error {
		if l != nil {
			d.logger = l
		}
		return nil
	}
}

// New returns an empty Definer. Defaults are off and the standard lot size
// is 40 acres unless options say otherwise.
func New(opts ...Option) (*Definer, error) {
	d := &Definer{standardLotSize: LotSize40, defs: NewStore(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AllowDefaults reports whether defaults may be assumed.
func (d *Definer) AllowDefaults() bool { return d.allowDefaults }

// SetAllowDefaults changes the defaults policy.
func (d *Definer) SetAllowDefaults(allow bool) { d.allowDefaults = allow }

// StandardLotSize returns 40 or 80.
func (d *Definer) StandardLotSize() int { return d.standardLotSize }

// SetStandardLotSize changes the default tables. Only 40 and 80 are valid.
func (d *Definer) SetStandardLotSize(acres int) error {
	if acres != LotSize40 && acres != LotSize80 {
		return errors.New(errors.ErrCodeInvalidInput, "standard lot size must be 40 or 80 (got %d)", acres)
	}
	d.standardLotSize = acres
	return nil
}

// Definitions returns the explicit definitions. The store is shared; callers
// must not modify it during a render.
func (d *Definer) Definitions() *Store { return d.defs }

// DefineLot sets the definition of lot in section t. The definition may be
// any aliquot text, including comma-joined lists ("E2NW,SWNW"); it is
// expanded to quarter-quarters before it is stored.
func (d *Definer) DefineLot(t trs.TRS, lot, definition string) error {
	return define(d.defs, t, lot, definition)
}

func define(store *Store, t trs.TRS, lot, definition string) error {
	if !t.IsValid() || !t.HasSection() {
		return errors.New(errors.ErrCodeInvalidTRS, "cannot define lot for %s: need a Twp/Rge/Sec", t)
	}
	name, err := tract.NormalizeLot(lot)
	if err != nil {
		return err
	}
	if div, _ := tract.SplitLot(name); div != "" {
		return errors.New(errors.ErrCodeInvalidLot, "cannot define a lot division %q", lot)
	}
	def, err := newDefinition(definition)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAliquot, err, "define %s %s", t, name)
	}
	store.Set(t, name, def)
	return nil
}

func newDefinition(s string) (Definition, error) {
	src := aliquot.Clean(s)
	qqs, err := aliquot.ExpandNames(s, aliquot.QQ)
	if err != nil {
		return Definition{}, err
	}
	if len(qqs) == 0 {
		return Definition{}, errors.New(errors.ErrCodeInvalidAliquot, "empty lot definition %q", s)
	}
	return Definition{Source: src, QQs: qqs}, nil
}

// Defaults returns the default definitions of every section in the Twp/Rge
// of t, at the configured standard lot size.
func (d *Definer) Defaults(t trs.TRS) *Store {
	out := NewStore()
	for _, sec := range DefaultSections {
		out.PutSection(t.WithSection(sec), DefaultSection(sec, d.standardLotSize))
	}
	return out
}

// AllDefinitions returns every definition that applies, including defaults
// when they are allowed. Defaults are generated for each Twp/Rge that has an
// explicit definition and for each one in mandatory. Sections with explicit
// definitions replace the defaults of that section entirely.
func (d *Definer) AllDefinitions(mandatory ...trs.TRS) *Store {
	return d.allDefinitions(d.allowDefaults, mandatory)
}

func (d *Definer) allDefinitions(allowDefaults bool, mandatory []trs.TRS) *Store {
	if !allowDefaults {
		return d.defs.clone()
	}
	var twprges []trs.TRS
	seen := map[string]bool{}
	add := func(t trs.TRS) {
		if !t.IsValid() || seen[t.TwpRgeKey()] {
			return
		}
		seen[t.TwpRgeKey()] = true
		twprges = append(twprges, t.TwpRge())
	}
	for _, key := range d.defs.TwpRges() {
		t, err := trs.Parse(key)
		if err == nil {
			add(t)
		}
	}
	for _, t := range mandatory {
		add(t)
	}
	slices.SortFunc(twprges, trs.Compare)

	out := NewStore()
	for _, t := range twprges {
		for _, sec := range DefaultSections {
			out.PutSection(t.WithSection(sec), DefaultSection(sec, d.standardLotSize))
		}
	}
	for _, tr := range d.defs.TwpRges() {
		for _, key := range d.defs.Sections(tr) {
			t := trs.MustParse(key)
			if sec := d.defs.Section(t); sec.Len() > 0 {
				out.PutSection(t, sec.clone())
			}
		}
	}
	return out
}

// Prime computes the full set of applicable definitions for twprges and
// keeps it until the returned release func is called. Resolution consults
// the primed set instead of recomputing defaults per tract.
//
//	release := definer.Prime(twprges...)
//	defer release()
func (d *Definer) Prime(twprges ...trs.TRS) (release func()) {
	all := d.AllDefinitions(twprges...)
	d.mu.Lock()
	d.primed = all
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		d.primed = nil
		d.mu.Unlock()
	}
}

// Primed reports whether a primed definition set is active.
func (d *Definer) Primed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.primed != nil
}

// section returns the definitions that apply to section t.
func (d *Definer) section(t trs.TRS, allowDefaults bool) *Section {
	if explicit := d.defs.Section(t); explicit.Len() > 0 {
		return explicit
	}
	if !allowDefaults {
		return nil
	}
	d.mu.Lock()
	primed := d.primed
	d.mu.Unlock()
	if primed != nil && d.allowDefaults {
		if sec := primed.Section(t); sec != nil {
			return sec
		}
	}
	return DefaultSection(t.Sec, d.standardLotSize)
}
