package plat

import (
	"image"
	"slices"
	"time"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/grid"
	"github.com/matzehuels/trsplat/pkg/plat/text"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// MegaPlat draws every township it is given on one canvas, laid out the
// way they sit on the ground. All tracts must share the same N/S and E/W
// hemispheres.
type MegaPlat struct {
	cfg *config

	tracts  []*tract.Tract
	unclear []*tract.Tract
	state   State

	surface   canvas.Surface
	townships []*grid.Township
}

// NewMegaPlat returns an empty MegaPlat.
func NewMegaPlat(opts ...Option) (*MegaPlat, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &MegaPlat{cfg: cfg}, nil
}

// State returns where the MegaPlat is in its lifecycle.
func (m *MegaPlat) State() State { return m.state }

// Surface returns the canvas, nil before Execute.
func (m *MegaPlat) Surface() canvas.Surface { return m.surface }

// Townships returns the townships laid out by Execute, top row first.
func (m *MegaPlat) Townships() []*grid.Township { return m.townships }

// Add queues items. If any tract lies in another hemisphere than those
// already queued, nothing is queued and a MIXED_HEMISPHERE error is
// returned.
func (m *MegaPlat) Add(items ...Plattable) error {
	ts, err := expand(items)
	if err != nil {
		return err
	}
	if err := checkHemisphere(append(slices.Clone(m.tracts), ts...)); err != nil {
		return err
	}
	for _, t := range ts {
		if t.TRS.IsValid() {
			m.tracts = append(m.tracts, t)
		} else {
			m.unclear = append(m.unclear, t)
		}
	}
	if len(ts) > 0 && m.state == Empty {
		m.state = Queued
	}
	return nil
}

func checkHemisphere(ts []*tract.Tract) error {
	var first *tract.Tract
	for _, t := range ts {
		if !t.TRS.IsValid() {
			continue
		}
		if first == nil {
			first = t
			continue
		}
		if !first.TRS.SameHemisphere(t.TRS) {
			return errors.New(errors.ErrCodeMixedHemisphere, "cannot lay out %s and %s on one plat", first.TRS.TwpRgeKey(), t.TRS.TwpRgeKey())
		}
	}
	return nil
}

// span returns lo..hi, descending when desc is set.
func span(nums []int, desc bool) []int {
	lo, hi := slices.Min(nums), slices.Max(nums)
	out := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	if desc {
		slices.Reverse(out)
	}
	return out
}

// Layout returns the township and range numbers covered by the queued
// tracts, in drawing order: top to bottom and left to right.
func (m *MegaPlat) Layout() (twps, rges []int) {
	if len(m.tracts) == 0 {
		return nil, nil
	}
	var tn, rn []int
	for _, t := range m.tracts {
		tn = append(tn, t.TRS.TwpNum)
		rn = append(rn, t.TRS.RgeNum)
	}
	first := m.tracts[0].TRS
	return span(tn, first.NS == trs.North), span(rn, first.EW == trs.West)
}

// Dimensions returns the canvas size Execute would allocate.
func (m *MegaPlat) Dimensions() image.Point {
	twps, rges := m.Layout()
	s := m.cfg.settings
	marg := s.BodyMarginTop
	return image.Pt(len(rges)*s.TownshipLength()+2*marg, len(twps)*s.TownshipLength()+2*marg)
}

// Execute lays out the townships, draws their grids, and fills the queued
// tracts. The hemisphere and canvas-size checks run before anything is
// drawn.
func (m *MegaPlat) Execute() (Report, error) {
	start := time.Now()
	if err := checkHemisphere(m.tracts); err != nil {
		return Report{}, err
	}
	var rep Report
	rep.unclear(m.cfg.logger, m.unclear)
	if len(m.tracts) == 0 {
		m.state = Executed
		return rep, nil
	}

	s := m.cfg.settings
	dim := m.Dimensions()
	if (m.cfg.maxW > 0 && dim.X > m.cfg.maxW) || (m.cfg.maxH > 0 && dim.Y > m.cfg.maxH) {
		return Report{}, errors.New(errors.ErrCodeCanvasTooLarge, "megaplat would be %dx%d, limit is %dx%d",
			dim.X, dim.Y, m.cfg.maxW, m.cfg.maxH)
	}
	surf, err := m.cfg.newSurface(dim.X, dim.Y, s)
	if err != nil {
		return Report{}, err
	}
	m.surface = surf
	ctx := &grid.Context{Settings: s, Surface: surf}

	first := m.tracts[0].TRS
	twps, rges := m.Layout()
	twpLen, marg := s.TownshipLength(), s.BodyMarginTop
	byKey := map[string]*grid.Township{}
	origins := map[string]image.Point{}
	m.townships = m.townships[:0]
	var twprges []trs.TRS
	for row, twp := range twps {
		for col, rge := range rges {
			twprge := trs.MustNew(twp, first.NS, rge, first.EW, 0)
			tl := image.Pt(marg+col*twpLen, marg+row*twpLen)
			if s.WriteHeader {
				center := tl.Add(image.Pt(twpLen/2, twpLen/2))
				text.WriteHeaderAt(s, surf, text.HeaderText(twprge, true), center, text.AlignCenter)
			}
			tw := grid.NewTownship(twprge)
			tw.DrawGrid(ctx, tl)
			tw.DrawOutline(ctx, tl)
			byKey[twprge.TwpRgeKey()] = tw
			origins[twprge.TwpRgeKey()] = tl
			m.townships = append(m.townships, tw)
			twprges = append(twprges, twprge)
		}
	}

	for _, t := range m.tracts {
		byKey[t.TRS.TwpRgeKey()].Enqueue(t)
	}

	def := m.cfg.definer
	release := def.Prime(twprges...)
	defer release()
	for _, tw := range m.townships {
		key := tw.TwpRge.TwpRgeKey()
		rep.unclear(m.cfg.logger, tw.Dummy().Queue())
		rep.classify(m.cfg.logger, tw.Execute(ctx, def, origins[key]))
		if s.WriteLotNumbers {
			var only []int
			if s.LotNumbersQueuedOnly {
				only = append([]int{}, tw.NonEmptySections()...)
			}
			tw.WriteLotNumbers(ctx, def.AllDefinitions(tw.TwpRge), origins[key], only)
		}
	}

	m.state = Executed
	m.cfg.logger.Info("executed megaplat", "townships", len(m.townships), "size", dim,
		"tracts", len(m.tracts), "warnings", len(rep.Warnings), "duration", time.Since(start))
	return rep, nil
}

// Image merges the layers into the finished plat.
func (m *MegaPlat) Image() (image.Image, error) {
	if m.surface == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "megaplat has not been executed")
	}
	img, err := flatten(m.surface)
	if err != nil {
		return nil, err
	}
	m.state = Rendered
	return img, nil
}
