package settings

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/trsplat/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Width != 1700 || s.Height != 2200 || s.SecLength != 200 {
		t.Errorf("dimensions = %dx%d sec %d", s.Width, s.Height, s.SecLength)
	}
	if got, want := s.GridTopLeft(), image.Pt(250, 180); got != want {
		t.Errorf("GridTopLeft = %v, want %v", got, want)
	}
	if got, want := s.FooterTopLeft(), image.Pt(100, 1420); got != want {
		t.Errorf("FooterTopLeft = %v, want %v", got, want)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default is invalid: %v", err)
	}

	// Each call returns an independent value.
	s.Lines[0].Width = 99
	if Default().Lines[0].Width == 99 {
		t.Error("Default shares state between calls")
	}
}

func TestLine(t *testing.T) {
	s := Default()
	tests := []struct {
		depth int
		width int
		color RGBA
	}{
		{DepthTownship, 4, Black},
		{DepthSection, 3, Black},
		{2, 1, RGBA{128, 128, 128, 140}},
		{7, 1, RGBA{196, 196, 196, 100}},
	}
	for _, tt := range tests {
		l := s.Line(tt.depth)
		if l.Width != tt.width || l.Color != tt.color || l.Depth != tt.depth {
			t.Errorf("Line(%d) = %+v", tt.depth, l)
		}
	}
	s.SetLineWidth(5, 9)
	if l := s.Line(5); l.Width != 9 || l.Color != s.DefaultLine.Color {
		t.Errorf("SetLineWidth(5) = %+v", l)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			s, err := Preset(name)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
	mega, _ := Preset("megaplat_default")
	if mega.SecLength != 120 || mega.Line(DepthTownship).Width != 8 || !mega.ShortHeader {
		t.Errorf("megaplat_default = %+v", mega)
	}
	if _, err := Preset("nope"); !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("Preset(nope) error = %v", err)
	}
	if _, err := Preset("../etc"); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("Preset(../etc) error = %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	s, _ := Preset("legal")
	s.WriteLotNumbers = true
	s.MaxDepth = 3
	s.SetLine(4, 2, Red)
	path := filepath.Join(t.TempDir(), "legal.toml")
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Height != 2800 || !got.WriteLotNumbers || got.MaxDepth != 3 {
		t.Errorf("loaded = %+v", got)
	}
	if l := got.Line(4); l.Width != 2 || l.Color != Red {
		t.Errorf("loaded Line(4) = %+v", l)
	}
}

func TestDecodePartialAndUnknown(t *testing.T) {
	s, err := Decode(strings.NewReader("sec_length_px = 100\nqq_fill = [255, 0, 0, 100]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.SecLength != 100 || s.QQFill != RedOverlay || s.Width != 1700 {
		t.Errorf("decoded = %+v", s)
	}

	_, err = Decode(strings.NewReader("colour = 3\n"))
	if !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("unknown key error = %v", err)
	}
	_, err = Decode(strings.NewReader("sec_length_px = 0\n"))
	if !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("invalid value error = %v", err)
	}
}

func TestValidateMinDepth(t *testing.T) {
	tests := []struct {
		src     string
		wantErr bool
	}{
		{"min_depth = 4\n", false},
		{"min_depth = 7\n", false},
		{"min_depth = 8\n", true},
		{"min_depth = 40\n", true},
		{"sec_length_px = 64\nmin_depth = 6\n", false},
		{"sec_length_px = 64\nmin_depth = 7\n", true},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(strings.TrimSpace(tt.src), "\n", ","), func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidSettings) {
				t.Errorf("Decode() error = %v, want %s", err, errors.ErrCodeInvalidSettings)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Decode() error = %v", err)
			}
		})
	}
}
