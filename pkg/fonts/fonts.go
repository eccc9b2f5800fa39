// Package fonts provides the typefaces used to draw plat text.
//
// The Go font family is built into the binary (golang.org/x/image/font/gofont),
// so plats render identically on every system. Any other typeface can be
// named by path to a .ttf file or by a system font name, which is resolved
// with go-findfont.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/trsplat/pkg/errors"
)

// Built-in typeface names.
const (
	Sans           = "sans"
	SansBold       = "sans-bold"
	SansItalic     = "sans-italic"
	SansBoldItalic = "sans-bold-italic"
	Mono           = "mono"
	MonoBold       = "mono-bold"
	MonoItalic     = "mono-italic"
	MonoBoldItalic = "mono-bold-italic"
)

// Default is the typeface used when none is configured.
const Default = Sans

var builtin = map[string][]byte{
	Sans:           goregular.TTF,
	SansBold:       gobold.TTF,
	SansItalic:     goitalic.TTF,
	SansBoldItalic: gobolditalic.TTF,
	Mono:           gomono.TTF,
	MonoBold:       gomonobold.TTF,
	MonoItalic:     gomonoitalic.TTF,
	MonoBoldItalic: gomonobolditalic.TTF,
}

// Builtin lists the names of the built-in typefaces.
func Builtin() []string {
	return []string{Sans, SansBold, SansItalic, SansBoldItalic, Mono, MonoBold, MonoItalic, MonoBoldItalic}
}

// IsBuiltin reports whether name is a built-in typeface.
func IsBuiltin(name string) bool {
	_, ok := builtin[strings.ToLower(name)]
	return ok
}

// Parsed fonts are cached by typeface name; faces by name and size.
var (
	mu     sync.Mutex
	parsed = map[string]*truetype.Font{}
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	name string
	size float64
}

// Resolve returns the raw font data for a typeface: a built-in name, a path
// to a .ttf file, or a system font name ("DejaVuSans.ttf", "Arial").
func Resolve(name string) ([]byte, error) {
	if name == "" {
		name = Default
	}
	if data, ok := builtin[strings.ToLower(name)]; ok {
		return data, nil
	}
	path := name
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(name)
		if ferr != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, ferr, "typeface %q", name)
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "typeface %q", name)
	}
	return data, nil
}

// Load returns the parsed font for a typeface.
func Load(name string) (*truetype.Font, error) {
	mu.Lock()
	defer mu.Unlock()
	return load(name)
}

func load(name string) (*truetype.Font, error) {
	if f, ok := parsed[name]; ok {
		return f, nil
	}
	data, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parse typeface %q", name)
	}
	parsed[name] = f
	return f, nil
}

// Face returns a font face for a typeface at size points (72 DPI, so one
// point is one pixel). Faces are cached and shared.
func Face(name string, size float64) (font.Face, error) {
	mu.Lock()
	defer mu.Unlock()
	key := faceKey{name, size}
	if f, ok := faces[key]; ok {
		return f, nil
	}
	tf, err := load(name)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(tf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	faces[key] = face
	return face, nil
}
