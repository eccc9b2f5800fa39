// Package plat queues tracts onto townships and renders them.
//
// A [Document] plats one Twp/Rge on its own page. A [Group] keeps one
// Document per Twp/Rge it sees, sharing settings and lot definitions. A
// [MegaPlat] draws every township it sees side by side on a single canvas
// sized to fit them.
//
// Each of the three moves through the same states: [Empty], [Queued] once
// tracts have been added, [Executed] once lots are resolved and the grid
// is filled, and [Rendered] once its image has been produced. Executing
// twice accumulates fills; build a new instance for a fresh render.
package plat

import (
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

// State is where a plat is in its lifecycle.
type State int

const (
	Empty State = iota
	Queued
	Executed
	Rendered
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Queued:
		return "queued"
	case Executed:
		return "executed"
	case Rendered:
		return "rendered"
	}
	return "unknown"
}

// SurfaceFactory creates the surface a plat draws on.
type SurfaceFactory func(w, h int, s *settings.Settings) (canvas.Surface, error)

// RasterSurface is the default SurfaceFactory.
func RasterSurface(w, h int, s *settings.Settings) (canvas.Surface, error) {
	return canvas.New(w, h, s)
}

type config struct {
	settings   *settings.Settings
	definer    *lots.Definer
	logger     *log.Logger
	newSurface SurfaceFactory
	maxW, maxH int
}

// Option configures a Document, Group or MegaPlat.
type Option func(*config)

// WithSettings sets the render settings. The default is [settings.Default].
func WithSettings(s *settings.Settings) Option {
	return func(c *config) { c.settings = s }
}

// WithDefiner sets the lot definitions used to resolve lots.
func WithDefiner(d *lots.Definer) Option {
	return func(c *config) { c.definer = d }
}

// WithLogger sets where warnings and progress are logged.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSurfaceFactory replaces the raster canvas, e.g. with a
// [canvas.Recorder].
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(c *config) { c.newSurface = f }
}

// WithMaxDimensions bounds the canvas a MegaPlat may allocate. Zero means
// no bound on that side.
func WithMaxDimensions(w, h int) Option {
	return func(c *config) { c.maxW, c.maxH = w, h }
}

func newConfig(opts []Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.settings == nil {
		c.settings = settings.Default()
	}
	if err := c.settings.Validate(); err != nil {
		return nil, err
	}
	if c.definer == nil {
		d, err := lots.New()
		if err != nil {
			return nil, err
		}
		c.definer = d
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.newSurface == nil {
		c.newSurface = RasterSurface
	}
	return c, nil
}

type flattener interface {
	Flatten() *image.NRGBA
}

func flatten(surf canvas.Surface) (image.Image, error) {
	f, ok := surf.(flattener)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "surface %T does not produce an image", surf)
	}
	return f.Flatten(), nil
}
