package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/trsplat/pkg/cache"
	"github.com/matzehuels/trsplat/pkg/observability"
	"github.com/matzehuels/trsplat/pkg/plat"
	"github.com/matzehuels/trsplat/pkg/plat/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRender is what the cache holds for one render.
type cachedRender struct {
	Artifacts   []sink.Artifact `json:"artifacts"`
	Warnings    []string        `json:"warnings,omitempty"`
	Unplattable []string        `json:"unplattable,omitempty"`
}

// Execute runs the complete load → render → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ID: uuid.NewString()}
	logger := opts.Logger.With("run", result.ID[:8])

	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx)
	in, err := Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, result.Stats.LoadTime, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	hooks.OnLoadComplete(ctx, len(in.Tracts), result.Stats.LoadTime, nil)
	result.Stats.TractCount = len(in.Tracts)
	logger.Info("loaded inputs",
		"tracts", len(in.Tracts),
		"lot_sections", in.Definer.Definitions().Len(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputHash, err := in.Hash()
	if err != nil {
		return nil, fmt.Errorf("hash inputs: %w", err)
	}
	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached cachedRender
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts = cached.Artifacts
			result.Warnings = cached.Warnings
			result.Unplattable = cached.Unplattable
			result.Stats.PlatCount = len(cached.Artifacts)
			result.CacheHit = true
			for _, w := range cached.Warnings {
				logger.Warn(w, "cached", true)
			}
			logger.Info("served from cache", "plats", len(cached.Artifacts))
			return result, nil
		}
	}

	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Stage 2: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Mode, len(in.Tracts))
	outputs, rep, err := Render(in, opts, logger)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Mode, len(outputs), len(rep.Unplattable), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.PlatCount = len(outputs)
	result.Warnings, result.Unplattable = summarize(rep)
	logger.Info("rendered plats",
		"mode", opts.Mode,
		"plats", len(outputs),
		"warnings", len(rep.Warnings),
		"duration", result.Stats.RenderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Encode
	encodeStart := time.Now()
	format, _ := sink.ParseFormat(opts.Format)
	result.Artifacts, err = sink.EncodeAll(outputs, format)
	result.Stats.EncodeTime = time.Since(encodeStart)
	hooks.OnEncodeComplete(ctx, string(format), artifactBytes(result.Artifacts), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	logger.Info("encoded plats", "format", format, "duration", result.Stats.EncodeTime)

	if data, err := json.Marshal(cachedRender{
		Artifacts:   result.Artifacts,
		Warnings:    result.Warnings,
		Unplattable: result.Unplattable,
	}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Debug("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return result, nil
}

func artifactBytes(arts []sink.Artifact) int {
	n := 0
	for _, a := range arts {
		n += len(a.Data)
	}
	return n
}

func summarize(rep plat.Report) (warnings, unplattable []string) {
	for _, w := range rep.Warnings {
		warnings = append(warnings, w.Message())
	}
	for _, t := range rep.Unplattable {
		unplattable = append(unplattable, t.TRS.String())
	}
	return warnings, unplattable
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
