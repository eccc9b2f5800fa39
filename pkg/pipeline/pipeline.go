// Package pipeline runs the load → render → encode pipeline behind the CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read tracts, lot definitions and settings
//  2. Render: queue the tracts onto plats and execute them
//  3. Encode: write each plat image in the requested format
//
// Encoded artifacts are cached by a hash of the loaded inputs and the
// render options, so rendering the same tracts twice is free.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Compact:  []string{"154n97w01: L1, L2, S2N2"},
//	    Defaults: true,
//	    Format:   "png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts[0].Data
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/cache"
	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/sink"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMode renders one plat per Twp/Rge.
	DefaultMode = ModeGroup

	// DefaultFormat is the default output format.
	DefaultFormat = string(sink.FormatPNG)

	// DefaultPreset is the settings preset used when none is named.
	DefaultPreset = "default"

	// DefaultLotSize is the standard lot size for default lot tables.
	DefaultLotSize = lots.LotSize40

	// DefaultMaxSide bounds each side of a megaplat canvas.
	DefaultMaxSide = 12000
)

// Render modes.
const (
	ModeSingle = "single"
	ModeGroup  = "group"
	ModeMega   = "mega"
)

// ValidModes is the set of supported render modes.
var ValidModes = map[string]bool{
	ModeSingle: true,
	ModeGroup:  true,
	ModeMega:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a render.
type Options struct {
	// Load options
	TractFiles   []string     `json:"tract_files,omitempty"`
	Compact      []string     `json:"compact,omitempty"`
	LotsFile     string       `json:"lots_file,omitempty"`
	LotHeaders   lots.Headers `json:"lot_headers"`
	Defaults     bool         `json:"defaults,omitempty"`
	LotSize      int          `json:"lot_size,omitempty"`
	Preset       string       `json:"preset,omitempty"`
	SettingsFile string       `json:"settings_file,omitempty"`

	// Render options
	Mode      string   `json:"mode,omitempty"`
	Only      []string `json:"only,omitempty"`
	Header    string   `json:"header,omitempty"`
	MaxWidth  int      `json:"max_width,omitempty"`
	MaxHeight int      `json:"max_height,omitempty"`

	// Encode options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs.
	ID string

	// Artifacts are the encoded plats, in plat order.
	Artifacts []sink.Artifact

	// Warnings are the plattability warnings, fresh or replayed from cache.
	Warnings []string

	// Unplattable lists the TRS of tracts that could not be platted.
	Unplattable []string

	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TractCount int
	PlatCount  int
	LoadTime   time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a render mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be one of: single, group, mega)", mode)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := sink.ParseFormat(format)
	return err
}

// ValidateOnly checks that every subset entry is a Twp/Rge.
func ValidateOnly(only []string) error {
	for _, s := range only {
		t, err := trs.Parse(s)
		if err != nil {
			return err
		}
		if t.HasSection() {
			return errors.New(errors.ErrCodeInvalidInput, "--only takes a Twp/Rge without section, got %q", s)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.LotSize == 0 {
		o.LotSize = DefaultLotSize
	}
	if o.Mode == ModeMega {
		if o.MaxWidth == 0 {
			o.MaxWidth = DefaultMaxSide
		}
		if o.MaxHeight == 0 {
			o.MaxHeight = DefaultMaxSide
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks the options. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if len(o.TractFiles) == 0 && len(o.Compact) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tracts given")
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateOnly(o.Only); err != nil {
		return err
	}
	if o.LotSize != lots.LotSize40 && o.LotSize != lots.LotSize80 {
		return errors.New(errors.ErrCodeInvalidInput, "lot size must be 40 or 80, got %d", o.LotSize)
	}
	if o.MaxWidth < 0 || o.MaxHeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max dimensions cannot be negative")
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the render.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	only := slices.Clone(o.Only)
	slices.Sort(only)
	return cache.ArtifactKeyOpts{
		Mode:      o.Mode,
		Format:    o.Format,
		Subset:    only,
		MaxWidth:  o.MaxWidth,
		MaxHeight: o.MaxHeight,
		Header:    o.Header,
	}
}
