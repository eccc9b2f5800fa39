// Package canvas is the drawing surface plats are rendered onto.
//
// A plat is drawn onto separate same-sized layers that are composited
// bottom to top in [Layer] order. Drawing code talks to the [Surface]
// interface; [Canvas] rasterizes with gg, and [Recorder] keeps a log of
// operations for tests.
package canvas

import (
	"image"
	"image/color"
)

// Layer identifies one raster layer. Layers composite in declaration order.
type Layer int

const (
	Background Layer = iota
	Header
	GridLines
	SectionNumbers
	Fill
	LotNumbers
	Borders
	Footer

	numLayers
)

var layerNames = [...]string{"background", "header", "grid_lines", "section_numbers", "fill", "lot_numbers", "borders", "footer"}

func (l Layer) String() string {
	if l < 0 || l >= numLayers {
		return "unknown"
	}
	return layerNames[l]
}

// Layers lists every layer in stacking order.
func Layers() []Layer {
	out := make([]Layer, numLayers)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

// Role selects the font used for a piece of text.
type Role int

const (
	RoleHeader Role = iota
	RoleFooter
	RoleSection
	RoleLot
)

// Surface is what plat components draw on. Coordinates are pixels from the
// top-left of the image; Text is anchored at the top-left of its bounding
// box.
type Surface interface {
	Size() image.Point
	Line(l Layer, from, to image.Point, width int, c color.NRGBA)
	Rect(l Layer, r image.Rectangle, c color.NRGBA)
	Text(l Layer, role Role, at image.Point, s string, c color.NRGBA)
	// Measure returns the width and line height of s in the role's font.
	Measure(role Role, s string) image.Point
}
