// Package observability provides hooks for metrics and tracing of plat
// rendering.
//
// Consumers register hooks at startup to receive events about pipeline
// stages and cache lookups. The defaults do nothing, so the library carries
// no dependency on a particular metrics backend.
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The pipeline emits events around each stage:
//
//	observability.Pipeline().OnRenderStart(ctx, mode, tractCount)
//	// ... draw plats ...
//	observability.Pipeline().OnRenderComplete(ctx, mode, platCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context)
	OnLoadComplete(ctx context.Context, tractCount int, duration time.Duration, err error)

	// Render events. unplattable counts tracts that drew nothing.
	OnRenderStart(ctx context.Context, mode string, tractCount int)
	OnRenderComplete(ctx context.Context, mode string, platCount, unplattable int, duration time.Duration, err error)

	// Encode events. size is the total encoded bytes.
	OnEncodeComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int)                {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
