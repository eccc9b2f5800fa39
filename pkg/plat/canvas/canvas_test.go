package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

func TestLayerOrder(t *testing.T) {
	want := []string{"background", "header", "grid_lines", "section_numbers", "fill", "lot_numbers", "borders", "footer"}
	for i, l := range Layers() {
		if l.String() != want[i] {
			t.Errorf("layer %d = %s, want %s", i, l, want[i])
		}
	}
}

func TestCanvasFlatten(t *testing.T) {
	c, err := New(40, 30, settings.Default())
	if err != nil {
		t.Fatal(err)
	}
	if c.Layer(Fill) != nil {
		t.Error("layer allocated before use")
	}
	c.Rect(Fill, image.Rect(0, 0, 10, 10), color.NRGBA{0, 0, 255, 255})
	c.Line(Borders, image.Pt(20, 0), image.Pt(20, 30), 2, color.NRGBA{0, 0, 0, 255})
	c.Line(Borders, image.Pt(30, 0), image.Pt(30, 30), 0, color.NRGBA{255, 0, 0, 255})

	img := c.Flatten()
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.NRGBAAt(5, 5); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("fill pixel = %v", got)
	}
	if got := img.NRGBAAt(35, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %v", got)
	}
	if got := img.NRGBAAt(20, 15); got.R > 10 || got.A != 255 {
		t.Errorf("border pixel = %v", got)
	}
	if got := img.NRGBAAt(30, 15); got.G != 255 {
		t.Errorf("zero-width line was drawn: %v", got)
	}
}

func TestCanvasMeasure(t *testing.T) {
	c, err := New(10, 10, settings.Default())
	if err != nil {
		t.Fatal(err)
	}
	short := c.Measure(RoleFooter, "L1")
	long := c.Measure(RoleFooter, "L1, L2, L3")
	if short.X <= 0 || long.X <= short.X {
		t.Errorf("Measure widths %d, %d", short.X, long.X)
	}
	if short.Y != long.Y || short.Y <= 0 {
		t.Errorf("Measure heights %d, %d", short.Y, long.Y)
	}
	if c.Measure(RoleHeader, "X").Y <= c.Measure(RoleLot, "X").Y {
		t.Error("header font should be taller than lot font")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Text(Header, RoleHeader, image.Pt(1, 2), "hello", color.NRGBA{})
	r.Rect(Fill, image.Rect(0, 0, 5, 5), color.NRGBA{})
	if got := r.Measure(RoleFooter, "hello"); got != image.Pt(50, 20) {
		t.Errorf("Measure = %v", got)
	}
	if texts := r.Texts(Header); len(texts) != 1 || texts[0] != "hello" {
		t.Errorf("Texts = %v", texts)
	}
	if len(r.Filter(OpRect, Fill)) != 1 {
		t.Error("rect not recorded")
	}
}
