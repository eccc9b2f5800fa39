package plat

import (
	"image"
	"time"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/grid"
	"github.com/matzehuels/trsplat/pkg/plat/text"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Document is a plat of a single Twp/Rge.
type Document struct {
	cfg *config

	twprge   trs.TRS
	township *grid.Township
	surface  canvas.Surface
	ctx      *grid.Context
	footer   *text.Footer
	header   string

	queue   []*tract.Tract
	unclear []*tract.Tract
	state   State
	report  Report

	// set when a Group owns the definer's run cache
	shared bool
}

// NewDocument returns an empty plat for twprge. Pass [trs.Undefined] to let
// the first valid tract decide the Twp/Rge.
func NewDocument(twprge trs.TRS, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return newDocument(cfg, twprge)
}

func newDocument(cfg *config, twprge trs.TRS) (*Document, error) {
	s := cfg.settings
	surf, err := cfg.newSurface(s.Width, s.Height, s)
	if err != nil {
		return nil, err
	}
	d := &Document{
		cfg:     cfg,
		surface: surf,
		ctx:     &grid.Context{Settings: s, Surface: surf},
		footer:  text.NewFooter(s, surf),
	}
	if twprge.IsValid() {
		d.setTwpRge(twprge)
	}
	return d, nil
}

func (d *Document) setTwpRge(t trs.TRS) {
	d.twprge = t.TwpRge()
	d.township = grid.NewTownship(d.twprge)
	tl := d.cfg.settings.GridTopLeft()
	d.township.DrawGrid(d.ctx, tl)
	d.township.DrawOutline(d.ctx, tl)
}

// TwpRge returns the document's Twp/Rge, undefined until it is known.
func (d *Document) TwpRge() trs.TRS { return d.twprge }

// State returns where the document is in its lifecycle.
func (d *Document) State() State { return d.state }

// Tracts returns every tract added, in order.
func (d *Document) Tracts() []*tract.Tract { return d.queue }

// Township returns the document's township grid, nil until the Twp/Rge is
// known.
func (d *Document) Township() *grid.Township { return d.township }

// Surface returns what the document draws on.
func (d *Document) Surface() canvas.Surface { return d.surface }

// Report returns the outcome of the last Execute.
func (d *Document) Report() Report { return d.report }

// SetHeader replaces the default header text.
func (d *Document) SetHeader(text string) { d.header = text }

// Add queues items. Tracts without a valid TRS are kept aside and reported
// as unplattable. If any tract belongs to another Twp/Rge, nothing is
// queued and a TWPRGE_MISMATCH error is returned.
func (d *Document) Add(items ...Plattable) error {
	ts, err := expand(items)
	if err != nil {
		return err
	}
	want := d.twprge
	for _, t := range ts {
		if !t.TRS.IsValid() {
			continue
		}
		if !want.IsValid() {
			want = t.TRS.TwpRge()
			continue
		}
		if t.TRS.TwpRgeKey() != want.TwpRgeKey() {
			return errors.New(errors.ErrCodeTwpRgeMismatch, "tract %s does not belong to %s", t.TRS, want.TwpRgeKey())
		}
	}
	if want.IsValid() && !d.twprge.IsValid() {
		d.setTwpRge(want)
	}
	for _, t := range ts {
		d.enqueue(t)
	}
	return nil
}

func (d *Document) enqueue(t *tract.Tract) {
	d.queue = append(d.queue, t)
	if t.TRS.IsValid() && d.township != nil {
		d.township.Enqueue(t)
	} else {
		d.unclear = append(d.unclear, t)
	}
	if d.state == Empty {
		d.state = Queued
	}
}

// Execute resolves lots, fills the claimed squares, and writes the header,
// footer and lot numbers as configured. Plattability problems are logged,
// returned in the report, and never stop the render.
func (d *Document) Execute() Report {
	start := time.Now()
	s := d.cfg.settings
	var rep Report
	rep.unclear(d.cfg.logger, d.unclear)

	if d.township != nil {
		def := d.cfg.definer
		if !d.shared {
			release := def.Prime(d.twprge)
			defer release()
		}
		tl := s.GridTopLeft()
		rep.unclear(d.cfg.logger, d.township.Dummy().Queue())
		rep.classify(d.cfg.logger, d.township.Execute(d.ctx, def, tl))

		if s.WriteHeader {
			h := d.header
			if h == "" {
				h = text.HeaderText(d.twprge, s.ShortHeader)
			}
			text.WriteHeader(s, d.surface, h)
		}
		if s.WriteLotNumbers {
			var only []int
			if s.LotNumbersQueuedOnly {
				only = append([]int{}, d.township.NonEmptySections()...)
			}
			d.township.WriteLotNumbers(d.ctx, def.AllDefinitions(d.twprge), tl, only)
		}
	}
	if s.WriteTracts {
		rep.Unwritten = d.footer.WriteTracts(d.queue, true, rep.IsUnplattable)
	}

	d.report = rep
	d.state = Executed
	d.cfg.logger.Info("executed plat", "twprge", d.twprge.TwpRgeKey(), "tracts", len(d.queue),
		"warnings", len(rep.Warnings), "duration", time.Since(start))
	return rep
}

// WriteFooterText writes a block of text below whatever the footer already
// holds and returns what did not fit.
func (d *Document) WriteFooterText(text string, writePartial bool) string {
	return d.footer.WriteText(text, writePartial)
}

// Image merges the layers into the finished plat.
func (d *Document) Image() (image.Image, error) {
	img, err := flatten(d.surface)
	if err != nil {
		return nil, err
	}
	d.state = Rendered
	return img, nil
}
