// Package settings configures the look and behavior of plats.
//
// A [Settings] value is plain data: construct one with [Default] or
// [Preset], adjust its fields, and pass it to the plat constructors. There
// is no package-level default instance; every call returns a fresh value.
//
// Settings round-trip through TOML:
//
//	s, err := settings.Load("letter.toml")
//	if err != nil {
//	    return err
//	}
//	s.WriteLotNumbers = true
//	err = s.Save("letter-lots.toml")
package settings

import (
	"image"
	"image/color"
	"slices"

	"github.com/matzehuels/trsplat/pkg/fonts"
)

// SectionsPerSide is the number of sections along each side of a township.
const SectionsPerSide = 6

// Line depths with special meaning.
const (
	DepthTownship = -1
	DepthSection  = 0
)

// RGBA is a non-premultiplied color. It encodes as a 4-element TOML array.
type RGBA [4]uint8

// NRGBA converts c for drawing.
func (c RGBA) NRGBA() color.NRGBA { return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]} }

// Common colors.
var (
	Black = RGBA{0, 0, 0, 255}
	White = RGBA{255, 255, 255, 255}
	Red   = RGBA{255, 0, 0, 255}
	Blue  = RGBA{0, 0, 255, 255}

	BlueOverlay = RGBA{0, 0, 255, 100}
	RedOverlay  = RGBA{255, 0, 0, 100}
)

// Page sizes at 200 pixels per inch.
var (
	Letter200 = [2]int{1700, 2200}
	Legal200  = [2]int{1700, 2800}
)

// LineStyle is the stroke of the lines drawn at one subdivision depth.
// Depth -1 is the township border, 0 the section border, 1 the half lines,
// 2 the quarter lines, and so on.
type LineStyle struct {
	Depth int  `toml:"depth"`
	Width int  `toml:"width"`
	Color RGBA `toml:"color"`
}

// FontSpec names a typeface, its size in pixels, and its color.
type FontSpec struct {
	Typeface string  `toml:"typeface"`
	Size     float64 `toml:"size"`
	Color    RGBA    `toml:"color"`
}

// Settings controls plat dimensions, colors, fonts, margins and which
// labels are written.
type Settings struct {
	Width     int  `toml:"width"`
	Height    int  `toml:"height"`
	QQFill    RGBA `toml:"qq_fill"`
	SecLength int  `toml:"sec_length_px"`

	Lines       []LineStyle `toml:"lines"`
	DefaultLine LineStyle   `toml:"default_line"`

	// MinDepth is the deepest subdivision whose lines are drawn.
	MinDepth int `toml:"min_depth"`
	// MaxDepth coarsens registered aliquots to at most this depth. Zero
	// means no limit.
	MaxDepth int `toml:"max_depth"`

	CenterBox    int `toml:"centerbox_px"`
	LotNumOffset int `toml:"lot_num_offset_px"`

	HeaderFont   FontSpec `toml:"header_font"`
	FooterFont   FontSpec `toml:"footer_font"`
	SectionFont  FontSpec `toml:"section_font"`
	LotFont      FontSpec `toml:"lot_font"`
	WarningColor RGBA     `toml:"warning_color"`

	BodyMarginTop        int `toml:"body_marg_top_px"`
	HeaderPxAboveBody    int `toml:"header_px_above_body"`
	FooterMarginBottom   int `toml:"footer_marg_bottom_px"`
	FooterMarginLeft     int `toml:"footer_marg_left_px"`
	FooterMarginRight    int `toml:"footer_marg_right_px"`
	FooterPxBelowBody    int `toml:"footer_px_below_body"`
	FooterPxBetweenLines int `toml:"footer_px_between_lines"`

	WriteHeader          bool `toml:"write_header"`
	ShortHeader          bool `toml:"short_header"`
	WriteTracts          bool `toml:"write_tracts"`
	WriteSectionNumbers  bool `toml:"write_section_numbers"`
	WriteLotNumbers      bool `toml:"write_lot_numbers"`
	LotNumbersQueuedOnly bool `toml:"lot_numbers_queued_only"`
}

// Default returns the standard letter-size settings at 200 ppi.
func Default() *Settings {
	return &Settings{
		Width:     Letter200[0],
		Height:    Letter200[1],
		QQFill:    BlueOverlay,
		SecLength: 200,
		Lines: []LineStyle{
			{Depth: DepthTownship, Width: 4, Color: Black},
			{Depth: DepthSection, Width: 3, Color: Black},
			{Depth: 1, Width: 3, Color: Black},
			{Depth: 2, Width: 1, Color: RGBA{128, 128, 128, 140}},
			{Depth: 3, Width: 1, Color: RGBA{128, 128, 128, 60}},
		},
		DefaultLine:  LineStyle{Width: 1, Color: RGBA{196, 196, 196, 100}},
		MinDepth:     2,
		CenterBox:    48,
		LotNumOffset: 6,

		HeaderFont:   FontSpec{Typeface: fonts.Sans, Size: 64, Color: Black},
		FooterFont:   FontSpec{Typeface: fonts.Sans, Size: 28, Color: Black},
		SectionFont:  FontSpec{Typeface: fonts.Sans, Size: 36, Color: Black},
		LotFont:      FontSpec{Typeface: fonts.Sans, Size: 14, Color: Black},
		WarningColor: Red,

		BodyMarginTop:        180,
		HeaderPxAboveBody:    15,
		FooterMarginBottom:   80,
		FooterMarginLeft:     100,
		FooterMarginRight:    100,
		FooterPxBelowBody:    40,
		FooterPxBetweenLines: 10,

		WriteHeader:         true,
		WriteTracts:         true,
		WriteSectionNumbers: true,
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Lines = slices.Clone(s.Lines)
	return &c
}

// Line returns the stroke for depth, falling back to DefaultLine.
func (s *Settings) Line(depth int) LineStyle {
	for _, l := range s.Lines {
		if l.Depth == depth {
			return l
		}
	}
	l := s.DefaultLine
	l.Depth = depth
	return l
}

// SetLine sets the stroke for one depth.
func (s *Settings) SetLine(depth, width int, c RGBA) {
	for i := range s.Lines {
		if s.Lines[i].Depth == depth {
			s.Lines[i].Width, s.Lines[i].Color = width, c
			return
		}
	}
	s.Lines = append(s.Lines, LineStyle{Depth: depth, Width: width, Color: c})
}

// SetLineWidth changes only the width of one depth's stroke.
func (s *Settings) SetLineWidth(depth, width int) {
	l := s.Line(depth)
	s.SetLine(depth, width, l.Color)
}

// TownshipLength returns the side of a township in pixels.
func (s *Settings) TownshipLength() int { return s.SecLength * SectionsPerSide }

// GridTopLeft returns the top-left of the township grid on a single plat:
// centered horizontally, BodyMarginTop from the top.
func (s *Settings) GridTopLeft() image.Point {
	return image.Pt((s.Width-s.TownshipLength())/2, s.BodyMarginTop)
}

// FooterTopLeft returns where footer text starts.
func (s *Settings) FooterTopLeft() image.Point {
	return image.Pt(s.FooterMarginLeft, s.BodyMarginTop+s.TownshipLength()+s.FooterPxBelowBody)
}

// FooterLimit returns the bottom-right bound of the footer.
func (s *Settings) FooterLimit() image.Point {
	return image.Pt(s.Width-s.FooterMarginRight, s.Height-s.FooterMarginBottom)
}
