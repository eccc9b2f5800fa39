package grid

import (
	"image"
	"slices"

	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// LotDepth is the depth lot numbers are written at (quarter-quarters).
const LotDepth = 2

// Township is the 36-section body of one Twp/Rge, plus a dummy section for
// tracts whose section is missing or out of range.
type Township struct {
	TwpRge   trs.TRS
	sections [trs.SectionsPerTownship]*Section
	dummy    *Section
}

// NewTownship lays out the sections of twprge.
func NewTownship(twprge trs.TRS) *Township {
	tw := &Township{TwpRge: twprge.TwpRge(), dummy: newSection(trs.Undefined(), -1, -1)}
	for sec := 1; sec <= trs.SectionsPerTownship; sec++ {
		row, col, _ := GridOffset(sec)
		tw.sections[sec-1] = newSection(tw.TwpRge.WithSection(sec), row, col)
	}
	return tw
}

// Section returns section sec, or the dummy section if sec is out of range.
func (tw *Township) Section(sec int) *Section {
	if sec < 1 || sec > trs.SectionsPerTownship {
		return tw.dummy
	}
	return tw.sections[sec-1]
}

// Dummy returns the section that collects tracts without a usable section.
func (tw *Township) Dummy() *Section { return tw.dummy }

// Enqueue routes a tract to its section.
func (tw *Township) Enqueue(t *tract.Tract) {
	if !t.TRS.HasSection() || t.TRS.TwpRgeKey() != tw.TwpRge.TwpRgeKey() {
		tw.dummy.Enqueue(t)
		return
	}
	tw.Section(t.TRS.Sec).Enqueue(t)
}

// Sections returns the 36 sections in snake order.
func (tw *Township) Sections() []*Section {
	out := make([]*Section, 0, trs.SectionsPerTownship)
	for _, sec := range SectionNumbers {
		out = append(out, tw.sections[sec-1])
	}
	return out
}

// DrawGrid draws every section's lines and center box.
func (tw *Township) DrawGrid(ctx *Context, topLeft image.Point) {
	for _, s := range tw.Sections() {
		s.DrawLines(ctx, topLeft)
		s.ClearCenter(ctx, topLeft)
	}
}

// DrawOutline draws the township border with the depth -1 line style.
func (tw *Township) DrawOutline(ctx *Context, topLeft image.Point) {
	drawBox(ctx, canvas.Borders, topLeft, ctx.Settings.TownshipLength(), ctx.Settings.Line(settings.DepthTownship))
}

// Execute processes the queue of every section.
func (tw *Township) Execute(ctx *Context, d *lots.Definer, topLeft image.Point) []Resolved {
	var out []Resolved
	for _, s := range tw.Sections() {
		out = append(out, s.Execute(ctx, d, topLeft)...)
	}
	return out
}

// NonEmptySections returns the numbers of sections with claimed squares,
// in snake order.
func (tw *Township) NonEmptySections() []int {
	var out []int
	for _, s := range tw.Sections() {
		if !s.Tree.IsLeaf() || s.Tree.Claimed() {
			out = append(out, s.TRS.Sec)
		}
	}
	return out
}

// WriteLotNumbers labels the lots in store for this township. When only is
// non-nil, only those sections are labeled.
func (tw *Township) WriteLotNumbers(ctx *Context, store *lots.Store, topLeft image.Point, only []int) {
	for _, s := range tw.Sections() {
		if only != nil && !slices.Contains(only, s.TRS.Sec) {
			continue
		}
		s.WriteLotNumbers(ctx, store.Section(s.TRS), topLeft, LotDepth)
	}
}
