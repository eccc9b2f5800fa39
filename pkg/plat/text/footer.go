// Package text lays out the words on a plat: the header above the township
// grid and the tract descriptions in the footer below it.
package text

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/tract"
)

// sampleLabel is as wide as the widest TRS label, so descriptions line up.
const sampleLabel = "XXXzXXXzXX:"

const ellipsis = "..."

// Footer writes text top to bottom in the region below the township grid.
// Each written line moves the cursor down by one line height plus the
// configured spacing.
type Footer struct {
	s    *settings.Settings
	surf canvas.Surface

	x, y       int
	lineHeight int
	indent     int
	limit      image.Point
}

// NewFooter positions a footer according to s.
func NewFooter(s *settings.Settings, surf canvas.Surface) *Footer {
	tl := s.FooterTopLeft()
	sample := surf.Measure(canvas.RoleFooter, sampleLabel)
	return &Footer{
		s:          s,
		surf:       surf,
		x:          tl.X,
		y:          tl.Y,
		lineHeight: sample.Y,
		indent:     tl.X + sample.X,
		limit:      s.FooterLimit(),
	}
}

// Cursor returns where the next line will be written.
func (f *Footer) Cursor() image.Point { return image.Pt(f.x, f.y) }

// LineHeight returns the height of one line of footer text.
func (f *Footer) LineHeight() int { return f.lineHeight }

// CheckText wraps text into lines that fit between topLeft and limit. Words
// are added to a line while it fits the width; a word that does not fit
// starts the next line. When the next line would not fit the remaining
// height, the words from that point on are returned as the remainder. A
// word too wide for any line is never broken; it and everything after it
// become the remainder. An empty remainder means all of text fits.
func (f *Footer) CheckText(text string, topLeft, limit image.Point) (lines []string, remainder string) {
	availW := limit.X - topLeft.X
	availH := limit.Y - topLeft.Y
	words := strings.Fields(text)
	if availH < f.lineHeight {
		return nil, strings.Join(words, " ")
	}
	fits := func(s string) bool { return f.surf.Measure(canvas.RoleFooter, s).X <= availW }

	line := ""
	for i, word := range words {
		cand := word
		if line != "" {
			cand = line + " " + word
		}
		if fits(cand) {
			line = cand
			continue
		}
		if line != "" {
			lines = append(lines, line)
			availH -= f.lineHeight + f.s.FooterPxBetweenLines
			if availH < f.lineHeight {
				return lines, strings.Join(words[i:], " ")
			}
		}
		if !fits(word) {
			return lines, strings.Join(words[i:], " ")
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines, ""
}

func (f *Footer) writeLine(x int, s string, c settings.RGBA) {
	f.surf.Text(canvas.Footer, canvas.RoleFooter, image.Pt(x, f.y), s, c.NRGBA())
	f.y += f.lineHeight + f.s.FooterPxBetweenLines
}

// WriteTract writes a tract's TRS in the left column and its description
// beside it. If the description does not fit and writePartial is set, the
// last line that fits ends in an ellipsis. It reports false, drawing
// nothing, when the tract cannot be written at all. Descriptions of tracts
// with undefined lots, or when warn is set, use the warning color.
func (f *Footer) WriteTract(t *tract.Tract, writePartial, warn bool) bool {
	if f.y+f.lineHeight > f.limit.Y {
		return false
	}
	lines, rem := f.CheckText(t.Desc, image.Pt(f.indent, f.y), f.limit)
	if rem != "" {
		if !writePartial || len(lines) == 0 {
			return false
		}
		last := lines[len(lines)-1]
		if n := utf8.RuneCountInString(last); n >= len(ellipsis) {
			r := []rune(last)
			lines[len(lines)-1] = string(r[:n-len(ellipsis)]) + ellipsis
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	labelColor := f.s.FooterFont.Color
	descColor := labelColor
	if warn {
		labelColor = f.s.WarningColor
	}
	if warn || len(t.UndefinedLots) > 0 {
		descColor = f.s.WarningColor
	}
	f.surf.Text(canvas.Footer, canvas.RoleFooter, image.Pt(f.x, f.y), t.TRS.String()+":", labelColor.NRGBA())
	for _, line := range lines {
		f.writeLine(f.indent, line, descColor)
	}
	return true
}

// WriteTracts writes tracts in order and returns those that could not be
// written at all. Partially written tracts are not returned. warn marks the
// tracts to draw in the warning color.
func (f *Footer) WriteTracts(ts []*tract.Tract, writePartial bool, warn func(*tract.Tract) bool) []*tract.Tract {
	var unwritten []*tract.Tract
	for _, t := range ts {
		if !f.WriteTract(t, writePartial, warn != nil && warn(t)) {
			unwritten = append(unwritten, t)
		}
	}
	return unwritten
}

// WriteText writes a block of text at the left margin. It returns the text
// that was not written: all of it when it does not fit and writePartial is
// false, otherwise whatever did not fit.
func (f *Footer) WriteText(text string, writePartial bool) string {
	lines, rem := f.CheckText(text, f.Cursor(), f.limit)
	if rem != "" && !writePartial {
		return text
	}
	for _, line := range lines {
		f.writeLine(f.x, line, f.s.FooterFont.Color)
	}
	return rem
}
