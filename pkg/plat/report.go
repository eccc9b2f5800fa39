package plat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/plat/grid"
	"github.com/matzehuels/trsplat/pkg/tract"
)

// WarningKind classifies plattability problems. None of them stop a render.
type WarningKind int

const (
	// NoLotsOrAliquots: the parser identified nothing to plat.
	NoLotsOrAliquots WarningKind = iota
	// OnlyUndefinedLots: every lot is undefined and there are no aliquots.
	OnlyUndefinedLots
	// UndefinedLots: some lots are undefined; the rest were platted.
	UndefinedLots
	// UnclearTwpRge: the Twp/Rge or section is undefined or erroneous.
	UnclearTwpRge
)

func (k WarningKind) String() string {
	switch k {
	case NoLotsOrAliquots:
		return "no_lots_or_aliquots"
	case OnlyUndefinedLots:
		return "only_undefined_lots"
	case UndefinedLots:
		return "undefined_lots"
	case UnclearTwpRge:
		return "unclear_twprge"
	}
	return "unknown"
}

// Warning is one plattability problem with one tract.
type Warning struct {
	Kind  WarningKind
	Tract *tract.Tract
}

// Message returns the human-readable warning.
func (w Warning) Message() string {
	switch w.Kind {
	case UndefinedLots:
		return fmt.Sprintf("Undefined lots that could not be shown on the plat: <%s: %s>",
			w.Tract.TRS, strings.Join(w.Tract.UndefinedLots, ", "))
	case NoLotsOrAliquots:
		return fmt.Sprintf("Cannot add tract to plat (no lots or aliquots could be identified) <%s>", w.Tract.QuickDesc())
	case OnlyUndefinedLots:
		return fmt.Sprintf("Cannot add tract to plat (all of its lots are undefined, and it has no identified aliquots) <%s>", w.Tract.QuickDesc())
	case UnclearTwpRge:
		return fmt.Sprintf("Cannot add tract to plat (undefined or otherwise erroneous Twp/Rge) <%s>", w.Tract.QuickDesc())
	}
	return w.Tract.QuickDesc()
}

// Report is the outcome of executing a queue.
type Report struct {
	// Unplattable tracts contributed nothing to the fill.
	Unplattable []*tract.Tract
	// Unwritten tracts did not fit in the footer at all.
	Unwritten []*tract.Tract
	Warnings  []Warning
}

// IsUnplattable reports whether t is in r.Unplattable.
func (r *Report) IsUnplattable(t *tract.Tract) bool {
	for _, u := range r.Unplattable {
		if u == t {
			return true
		}
	}
	return false
}

// Merge appends the contents of o to r.
func (r *Report) Merge(o Report) {
	r.Unplattable = append(r.Unplattable, o.Unplattable...)
	r.Unwritten = append(r.Unwritten, o.Unwritten...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

func (r *Report) warn(logger *log.Logger, w Warning) {
	r.Warnings = append(r.Warnings, w)
	logger.Warn(w.Message(), "trs", w.Tract.TRS.String(), "lots", w.Tract.UndefinedLots, "reason", w.Kind)
	if w.Kind != UndefinedLots {
		r.Unplattable = append(r.Unplattable, w.Tract)
	}
}

// classify records the warnings for resolved tracts.
func (r *Report) classify(logger *log.Logger, resolved []grid.Resolved) {
	for _, res := range resolved {
		t := res.Tract
		switch {
		case !t.HasLotsOrQQs():
			r.warn(logger, Warning{Kind: NoLotsOrAliquots, Tract: t})
		case len(t.QQs) == 0 && len(res.Lots.Lots) == 0:
			r.warn(logger, Warning{Kind: OnlyUndefinedLots, Tract: t})
		case len(t.UndefinedLots) > 0:
			r.warn(logger, Warning{Kind: UndefinedLots, Tract: t})
		}
	}
}

func (r *Report) unclear(logger *log.Logger, ts []*tract.Tract) {
	for _, t := range ts {
		r.warn(logger, Warning{Kind: UnclearTwpRge, Tract: t})
	}
}
