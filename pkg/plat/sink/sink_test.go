package sink

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/plat"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.NRGBA{0, 0, 255, 100})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"pdf", FormatPDF, false},
		{"svg", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if got := FormatFromPath("plats.zip"); got != FormatPNG {
		t.Errorf("FormatFromPath(zip) = %q", got)
	}
	if got := FormatFromPath("out/plat.tiff"); got != FormatTIFF {
		t.Errorf("FormatFromPath(tiff) = %q", got)
	}
}

func TestEncode(t *testing.T) {
	img := testImage(12, 8)

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG); err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("png bounds = %v", got.Bounds())
	}

	buf.Reset()
	if err := Encode(&buf, img, FormatTIFF); err != nil {
		t.Fatal(err)
	}
	if got, err = tiff.Decode(&buf); err != nil {
		t.Fatal(err)
	} else if got.Bounds() != img.Bounds() {
		t.Errorf("tiff bounds = %v", got.Bounds())
	}

	if err := Encode(&buf, img, "bmp"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestEncodePDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	var buf bytes.Buffer
	if err := EncodePDF(&buf, testImage(20, 20)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF")
	}
}

func TestSave(t *testing.T) {
	outs := []plat.Output{
		{Name: "154n97w", Image: testImage(4, 4)},
		{Name: "155n97w", Image: testImage(4, 4)},
	}

	t.Run("single", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plat.png")
		written, err := Save(outs[:1], path, "")
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(written, []string{path}) {
			t.Errorf("written = %v", written)
		}
	})

	t.Run("several", func(t *testing.T) {
		dir := t.TempDir()
		written, err := Save(outs, filepath.Join(dir, "plat.tif"), "")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{filepath.Join(dir, "plat_154n97w.tif"), filepath.Join(dir, "plat_155n97w.tif")}
		if !slices.Equal(written, want) {
			t.Errorf("written = %v, want %v", written, want)
		}
		for _, p := range want {
			if _, err := os.Stat(p); err != nil {
				t.Error(err)
			}
		}
	})

	t.Run("zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "plats.zip")
		if _, err := Save(outs, path, ""); err != nil {
			t.Fatal(err)
		}
		zr, err := zip.OpenReader(path)
		if err != nil {
			t.Fatal(err)
		}
		defer zr.Close()
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		if !slices.Equal(names, []string{"154n97w.png", "155n97w.png"}) {
			t.Errorf("entries = %v", names)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := Save(outs, "noext", ""); !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("err = %v, want INVALID_PATH", err)
		}
		if _, err := Save(nil, filepath.Join(t.TempDir(), "x.png"), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("err = %v, want INVALID_INPUT", err)
		}
	})
}

func TestWriteUnnamed(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{{Data: []byte("a")}, {Data: []byte("b")}}
	written, err := Write(arts, filepath.Join(dir, "plat.png"), FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "plat_1.png"), filepath.Join(dir, "plat_2.png")}
	if !slices.Equal(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
	data, err := os.ReadFile(want[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "b" {
		t.Errorf("plat_2.png = %q", data)
	}
}
