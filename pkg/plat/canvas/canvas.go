package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/trsplat/pkg/fonts"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

// Canvas is a raster Surface. Layers are allocated on first use.
type Canvas struct {
	w, h   int
	layers [numLayers]*gg.Context
	faces  [4]font.Face
}

// New returns a w×h canvas using the fonts configured in s.
func New(w, h int, s *settings.Settings) (*Canvas, error) {
	c := &Canvas{w: w, h: h}
	for role, spec := range map[Role]settings.FontSpec{
		RoleHeader:  s.HeaderFont,
		RoleFooter:  s.FooterFont,
		RoleSection: s.SectionFont,
		RoleLot:     s.LotFont,
	} {
		face, err := fonts.Face(spec.Typeface, spec.Size)
		if err != nil {
			return nil, err
		}
		c.faces[role] = face
	}
	return c, nil
}

// Size implements Surface.
func (c *Canvas) Size() image.Point { return image.Pt(c.w, c.h) }

func (c *Canvas) layer(l Layer) *gg.Context {
	if c.layers[l] == nil {
		c.layers[l] = gg.NewContext(c.w, c.h)
	}
	return c.layers[l]
}

// Line implements Surface. Zero-width lines are not drawn.
func (c *Canvas) Line(l Layer, from, to image.Point, width int, col color.NRGBA) {
	if width <= 0 {
		return
	}
	dc := c.layer(l)
	dc.SetColor(col)
	dc.SetLineWidth(float64(width))
	dc.SetLineCapSquare()
	dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
	dc.Stroke()
}

// Rect implements Surface.
func (c *Canvas) Rect(l Layer, r image.Rectangle, col color.NRGBA) {
	if r.Empty() {
		return
	}
	dc := c.layer(l)
	dc.SetColor(col)
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Fill()
}

// Text implements Surface.
func (c *Canvas) Text(l Layer, role Role, at image.Point, s string, col color.NRGBA) {
	if s == "" {
		return
	}
	dc := c.layer(l)
	face := c.faces[role]
	dc.SetFontFace(face)
	dc.SetColor(col)
	dc.DrawString(s, float64(at.X), float64(at.Y+face.Metrics().Ascent.Ceil()))
}

// Measure implements Surface.
func (c *Canvas) Measure(role Role, s string) image.Point {
	face := c.faces[role]
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}

// Layer returns the image of one layer, or nil if nothing was drawn on it.
func (c *Canvas) Layer(l Layer) image.Image {
	if c.layers[l] == nil {
		return nil
	}
	return c.layers[l].Image()
}

// Flatten composites every layer, bottom to top, onto an opaque white
// background.
func (c *Canvas) Flatten() *image.NRGBA {
	out := imaging.New(c.w, c.h, color.White)
	for _, dc := range c.layers {
		if dc == nil {
			continue
		}
		out = imaging.Overlay(out, dc.Image(), image.Pt(0, 0), 1.0)
	}
	return out
}
