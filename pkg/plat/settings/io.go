package settings

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trsplat/pkg/errors"
)

// Decode reads settings from TOML. Keys that are absent keep their Default
// values; unknown keys are an error.
func Decode(r io.Reader) (*Settings, error) {
	s := Default()
	md, err := toml.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidSettings, "unknown settings keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads settings from a TOML file.
func Load(path string) (*Settings, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes s as TOML.
func (s *Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Save writes s to a TOML file at path, replacing it.
func (s *Settings) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write settings %s", path)
	}
	return nil
}

// Validate reports settings that cannot produce a plat.
func (s *Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return errors.New(errors.ErrCodeInvalidSettings, "dimensions must be positive (got %dx%d)", s.Width, s.Height)
	case s.SecLength <= 0:
		return errors.New(errors.ErrCodeInvalidSettings, "sec_length_px must be positive (got %d)", s.SecLength)
	case s.MinDepth < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "min_depth cannot be negative (got %d)", s.MinDepth)
	case s.SecLength>>s.MinDepth == 0:
		return errors.New(errors.ErrCodeInvalidSettings, "min_depth %d subdivides a %d px section below one pixel", s.MinDepth, s.SecLength)
	case s.MaxDepth < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "max_depth cannot be negative (got %d)", s.MaxDepth)
	case s.CenterBox < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "centerbox_px cannot be negative (got %d)", s.CenterBox)
	}
	for _, f := range []struct {
		name string
		spec FontSpec
	}{
		{"header_font", s.HeaderFont},
		{"footer_font", s.FooterFont},
		{"section_font", s.SectionFont},
		{"lot_font", s.LotFont},
	} {
		if f.spec.Size <= 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s.size must be positive (got %g)", f.name, f.spec.Size)
		}
	}
	for _, l := range s.Lines {
		if l.Width < 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "line width for depth %d cannot be negative", l.Depth)
		}
	}
	return nil
}
