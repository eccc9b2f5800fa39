package grid

import (
	"image"
	"strconv"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Section is one section of a township: its aliquot tree and the tracts
// queued for it.
type Section struct {
	TRS      trs.TRS
	Row, Col int
	Tree     *Node

	queue []*tract.Tract
}

func newSection(t trs.TRS, row, col int) *Section {
	return &Section{TRS: t, Row: row, Col: col, Tree: NewTree()}
}

// Enqueue adds a tract to the section. Tracts are processed in the order
// they were added.
func (s *Section) Enqueue(t *tract.Tract) { s.queue = append(s.queue, t) }

// Queue returns the queued tracts.
func (s *Section) Queue() []*tract.Tract { return s.queue }

// Origin returns the section's top-left given the township's top-left.
func (s *Section) Origin(ctx *Context, township image.Point) image.Point {
	l := ctx.Settings.SecLength
	return township.Add(image.Pt(s.Col*l, s.Row*l))
}

// Center returns the pixel center of the section.
func (s *Section) Center(ctx *Context, township image.Point) image.Point {
	return s.Origin(ctx, township).Add(image.Pt(ctx.Settings.SecLength/2, ctx.Settings.SecLength/2))
}

// DrawLines draws the section border and the subdivision lines down to
// MinDepth. Deeper lines are drawn first so coarser ones end up on top.
func (s *Section) DrawLines(ctx *Context, township image.Point) {
	st := ctx.Settings
	o := s.Origin(ctx, township)
	l := st.SecLength
	for depth := st.MinDepth; depth >= 1; depth-- {
		style := st.Line(depth)
		div := l >> depth
		for i := 1; i < 1<<depth; i += 2 {
			ctx.Surface.Line(canvas.GridLines, image.Pt(o.X+div*i, o.Y), image.Pt(o.X+div*i, o.Y+l), style.Width, style.Color.NRGBA())
			ctx.Surface.Line(canvas.GridLines, image.Pt(o.X, o.Y+div*i), image.Pt(o.X+l, o.Y+div*i), style.Width, style.Color.NRGBA())
		}
	}
	drawBox(ctx, canvas.Borders, o, l, st.Line(settings.DepthSection))
}

// ClearCenter blanks a small box in the middle of the section and, when so
// configured, writes the section number in it.
func (s *Section) ClearCenter(ctx *Context, township image.Point) {
	st := ctx.Settings
	c := s.Center(ctx, township)
	half := st.CenterBox / 2
	box := image.Rect(c.X-half, c.Y-half, c.X-half+st.CenterBox, c.Y-half+st.CenterBox)
	ctx.Surface.Rect(canvas.SectionNumbers, box, settings.White.NRGBA())
	if !st.WriteSectionNumbers || !s.TRS.HasSection() {
		return
	}
	txt := strconv.Itoa(s.TRS.Sec)
	size := ctx.Surface.Measure(canvas.RoleSection, txt)
	// Nudge up slightly; true centering looks low.
	at := image.Pt(c.X-size.X/2, c.Y-int(float64(size.Y/2)*1.2))
	ctx.Surface.Text(canvas.SectionNumbers, canvas.RoleSection, at, txt, st.SectionFont.Color.NRGBA())
}

// Resolved pairs a processed tract with its lot resolution.
type Resolved struct {
	Tract *tract.Tract
	Lots  lots.Resolution
}

// Execute resolves the lots of every queued tract, registers the tracts'
// aliquots and lots in the tree, and fills the claimed squares.
func (s *Section) Execute(ctx *Context, d *lots.Definer, township image.Point) []Resolved {
	out := make([]Resolved, 0, len(s.queue))
	for _, t := range s.queue {
		res := d.ProcessTract(t)
		for _, qq := range t.QQs {
			if p, err := aliquot.ParsePath(qq); err == nil {
				s.Tree.Register(p)
			}
		}
		for _, lot := range res.Lots {
			for _, qq := range lot.QQs {
				if p, err := aliquot.ParsePath(qq); err == nil {
					s.Tree.Register(p, lot.Number)
				}
			}
		}
		out = append(out, Resolved{Tract: t, Lots: res})
	}
	if len(s.queue) > 0 {
		s.Tree.Configure(ctx, s.Origin(ctx, township))
		s.Tree.Fill(ctx)
	}
	return out
}

// WriteLotNumbers labels the lots defined for this section at atDepth. It
// uses a separate tree so the fill state of the section is left alone.
func (s *Section) WriteLotNumbers(ctx *Context, defs *lots.Section, township image.Point, atDepth int) {
	if defs.Len() == 0 {
		return
	}
	writer := NewTree()
	opts := aliquot.Options{MinDepth: atDepth, MaxDepth: atDepth}
	for _, lot := range defs.Lots() {
		def, _ := defs.Get(lot)
		num, ok := tract.LotNumber(lot)
		if !ok {
			continue
		}
		for _, qq := range def.QQs {
			paths, err := aliquot.Expand(qq, opts)
			if err != nil {
				continue
			}
			for _, p := range paths {
				writer.Register(p, num)
			}
		}
	}
	writer.Configure(ctx, s.Origin(ctx, township))
	writer.WriteLotNumbers(ctx, atDepth)
}

func drawBox(ctx *Context, l canvas.Layer, o image.Point, dim int, style settings.LineStyle) {
	c := style.Color.NRGBA()
	tl, tr := o, o.Add(image.Pt(dim, 0))
	bl, br := o.Add(image.Pt(0, dim)), o.Add(image.Pt(dim, dim))
	ctx.Surface.Line(l, tl, tr, style.Width, c)
	ctx.Surface.Line(l, tr, br, style.Width, c)
	ctx.Surface.Line(l, br, bl, style.Width, c)
	ctx.Surface.Line(l, bl, tl, style.Width, c)
}
