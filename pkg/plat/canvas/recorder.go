package canvas

import (
	"image"
	"image/color"
	"unicode/utf8"
)

// OpKind is the kind of a recorded drawing operation.
type OpKind int

const (
	OpLine OpKind = iota
	OpRect
	OpText
)

// Op is one recorded drawing operation.
type Op struct {
	Kind  OpKind
	Layer Layer
	Role  Role
	From  image.Point
	To    image.Point
	Rect  image.Rectangle
	Text  string
	Width int
	Color color.NRGBA
}

// Recorder is a Surface that records operations instead of drawing. Text is
// measured as CharWidth pixels per rune and LineHeight pixels tall.
type Recorder struct {
	W, H       int
	CharWidth  int
	LineHeight int
	Ops        []Op
}

// NewRecorder returns a w×h recorder measuring 10px per rune, 20px per line.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, CharWidth: 10, LineHeight: 20}
}

// Size implements Surface.
func (r *Recorder) Size() image.Point { return image.Pt(r.W, r.H) }

// Line implements Surface.
func (r *Recorder) Line(l Layer, from, to image.Point, width int, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Layer: l, From: from, To: to, Width: width, Color: c})
}

// Rect implements Surface.
func (r *Recorder) Rect(l Layer, rect image.Rectangle, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Layer: l, Rect: rect, Color: c})
}

// Text implements Surface.
func (r *Recorder) Text(l Layer, role Role, at image.Point, s string, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Layer: l, Role: role, From: at, Text: s, Color: c})
}

// Measure implements Surface.
func (r *Recorder) Measure(_ Role, s string) image.Point {
	return image.Pt(utf8.RuneCountInString(s)*r.CharWidth, r.LineHeight)
}

// Filter returns the recorded operations of one kind on one layer.
func (r *Recorder) Filter(kind OpKind, l Layer) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind && op.Layer == l {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn on layer l, in order.
func (r *Recorder) Texts(l Layer) []string {
	var out []string
	for _, op := range r.Filter(OpText, l) {
		out = append(out, op.Text)
	}
	return out
}
