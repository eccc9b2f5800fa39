package settings

import (
	"sort"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/fonts"
)

// presets build named variants of Default.
var presets = map[string]func() *Settings{
	"default": Default,
	"letter":  Default,
	"legal": func() *Settings {
		s := Default()
		s.Width, s.Height = Legal200[0], Legal200[1]
		return s
	},
	"square_m": func() *Settings {
		s := Default()
		s.Width, s.Height = 1000, 1000
		s.SecLength = 144
		s.BodyMarginTop = 96
		s.HeaderFont.Size = 48
		s.SectionFont.Size = 28
		s.CenterBox = 36
		s.WriteTracts = false
		return s
	},
	"square_s": func() *Settings {
		s := Default()
		s.Width, s.Height = 600, 600
		s.SecLength = 84
		s.BodyMarginTop = 64
		s.HeaderPxAboveBody = 10
		s.HeaderFont.Size = 32
		s.SectionFont.Size = 18
		s.LotFont.Size = 10
		s.CenterBox = 24
		s.LotNumOffset = 3
		s.SetLineWidth(DepthTownship, 3)
		s.SetLineWidth(DepthSection, 2)
		s.SetLineWidth(1, 2)
		s.WriteTracts = false
		return s
	},
	"megaplat_default": func() *Settings {
		s := Default()
		s.SecLength = 120
		s.BodyMarginTop = 36
		s.ShortHeader = true
		s.HeaderFont = FontSpec{Typeface: fonts.MonoBold, Size: 72, Color: RGBA{192, 192, 192, 255}}
		s.SectionFont.Size = 24
		s.SetLineWidth(DepthTownship, 8)
		s.SetLineWidth(1, 1)
		s.SetLineWidth(2, 1)
		s.CenterBox = 38
		s.WriteTracts = false
		return s
	},
	"megaplat_s": func() *Settings {
		s := Default()
		s.SecLength = 64
		s.BodyMarginTop = 14
		s.ShortHeader = true
		s.HeaderFont = FontSpec{Typeface: fonts.MonoBold, Size: 48, Color: RGBA{192, 192, 192, 255}}
		s.SectionFont.Size = 14
		s.SetLineWidth(DepthTownship, 4)
		s.SetLineWidth(DepthSection, 0)
		s.SetLineWidth(1, 0)
		s.SetLineWidth(2, 0)
		s.CenterBox = 20
		s.WriteTracts = false
		return s
	},
}

// Preset returns a fresh copy of a named preset.
func Preset(name string) (*Settings, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	fn, ok := presets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q (have %v)", name, Presets())
	}
	return fn(), nil
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
