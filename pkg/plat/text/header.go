package text

import (
	"image"

	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Align controls how a header is placed relative to its anchor.
type Align int

const (
	// AlignDefault treats the anchor as the header's top-left.
	AlignDefault Align = iota
	// AlignCenter centers the header on the anchor both ways.
	AlignCenter
)

// HeaderText returns the default header for a Twp/Rge:
// "Township 154 North, Range 97 West", or "T154N-R97W" when short.
func HeaderText(twprge trs.TRS, short bool) string {
	return twprge.Pretty(short)
}

// WriteHeader writes text centered horizontally above the township grid,
// HeaderPxAboveBody pixels over it.
func WriteHeader(s *settings.Settings, surf canvas.Surface, text string) {
	size := surf.Measure(canvas.RoleHeader, text)
	at := image.Pt((surf.Size().X-size.X)/2, s.BodyMarginTop-size.Y-s.HeaderPxAboveBody)
	surf.Text(canvas.Header, canvas.RoleHeader, at, text, s.HeaderFont.Color.NRGBA())
}

// WriteHeaderAt writes text at anchor.
func WriteHeaderAt(s *settings.Settings, surf canvas.Surface, text string, anchor image.Point, align Align) {
	if align == AlignCenter {
		size := surf.Measure(canvas.RoleHeader, text)
		anchor = anchor.Sub(image.Pt(size.X/2, size.Y/2))
	}
	surf.Text(canvas.Header, canvas.RoleHeader, anchor, text, s.HeaderFont.Color.NRGBA())
}
