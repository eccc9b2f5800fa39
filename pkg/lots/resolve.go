package lots

import (
	"slices"
	"sort"
	"strconv"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// LotQQs is one resolved lot.
type LotQQs struct {
	Lot    string
	Number int
	QQs    []string
}

// Resolution is the outcome of resolving a tract's lots.
type Resolution struct {
	Lots      []LotQQs
	Undefined []string
}

// QQs returns the resolved quarter-quarters of all lots, without duplicates.
func (r Resolution) QQs() []string {
	var out []string
	for _, l := range r.Lots {
		for _, qq := range l.QQs {
			if !slices.Contains(out, qq) {
				out = append(out, qq)
			}
		}
	}
	return out
}

type resolveConfig struct {
	allowDefaults *bool
	dryRun        bool
}

// ResolveOption adjusts a single resolution.
type ResolveOption func(*resolveConfig)

// WithAllowDefaults overrides the Definer's defaults policy for one call.
func WithAllowDefaults(allow bool) ResolveOption {
	return func(c *resolveConfig) { c.allowDefaults = &allow }
}

// DryRun resolves without writing the result back to the tract.
func DryRun() ResolveOption {
	return func(c *resolveConfig) { c.dryRun = true }
}

// Resolve converts lots of section t into aliquots. Lot division prefixes
// ("N2 of L1") are applied when the lot is defined as a single aliquot and
// dropped otherwise; results are truncated to quarter-quarters.
func (d *Definer) Resolve(t trs.TRS, lots []string, opts ...ResolveOption) Resolution {
	cfg := resolveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	allow := d.allowDefaults
	if cfg.allowDefaults != nil {
		allow = *cfg.allowDefaults
	}

	var res Resolution
	var sec *Section
	if t.IsValid() && t.HasSection() {
		sec = d.section(t, allow)
	}
	for _, ref := range lots {
		div, name := tract.SplitLot(ref)
		def, ok := sec.Get(name)
		if !ok {
			if !slices.Contains(res.Undefined, name) {
				res.Undefined = append(res.Undefined, name)
			}
			continue
		}
		qqs := def.QQs
		if div != "" && def.single() {
			if divided, err := aliquot.ExpandNames(div+def.Source, aliquot.QQ); err == nil && len(divided) > 0 {
				qqs = divided
			}
		}
		num, _ := tract.LotNumber(name)
		res.Lots = append(res.Lots, LotQQs{Lot: name, Number: num, QQs: slices.Clone(qqs)})
	}
	return res
}

// ProcessTract resolves the lots of t and, unless DryRun is given, records
// the lot aliquots and undefined lots on the tract.
func (d *Definer) ProcessTract(t *tract.Tract, opts ...ResolveOption) Resolution {
	cfg := resolveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	res := d.Resolve(t.TRS, t.Lots, opts...)
	if !cfg.dryRun {
		t.Resolve(res.QQs(), res.Undefined)
	}
	return res
}

// ProcessTracts runs ProcessTract over ts, committing the results.
func (d *Definer) ProcessTracts(ts []*tract.Tract) {
	for _, t := range ts {
		d.ProcessTract(t)
	}
}

// FindUndefinedLots returns, per section TRS, the lots of ts that cannot be
// resolved, sorted by lot number. Tracts are not modified.
func (d *Definer) FindUndefinedLots(ts []*tract.Tract, opts ...ResolveOption) map[string][]string {
	nums := map[string]map[int]bool{}
	for _, t := range ts {
		res := d.Resolve(t.TRS, t.Lots, opts...)
		for _, lot := range res.Undefined {
			n, ok := tract.LotNumber(lot)
			if !ok {
				continue
			}
			key := t.TRS.String()
			if nums[key] == nil {
				nums[key] = map[int]bool{}
			}
			nums[key][n] = true
		}
	}
	out := make(map[string][]string, len(nums))
	for key, set := range nums {
		ns := make([]int, 0, len(set))
		for n := range set {
			ns = append(ns, n)
		}
		sort.Ints(ns)
		lots := make([]string, len(ns))
		for i, n := range ns {
			lots[i] = "L" + strconv.Itoa(n)
		}
		out[key] = lots
	}
	return out
}
