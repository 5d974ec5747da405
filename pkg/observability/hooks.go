// Package observability provides hooks for instrumenting renderer runs and
// cache lookups.
//
// Libraries emit events through the registered hooks; the defaults are
// no-ops. The CLI registers implementations at startup, for example to
// log every renderer invocation at debug level:
//
//	observability.SetRendererHooks(myHooks)
//
//	observability.Renderer().OnInvokeStart(ctx, argv)
//	// ... run the renderer ...
//	observability.Renderer().OnInvokeComplete(ctx, argv, code, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Renderer Hooks
// =============================================================================

// RendererHooks receives events from renderer invocations.
type RendererHooks interface {
	// OnInvokeStart is called right before the renderer process is spawned.
	OnInvokeStart(ctx context.Context, argv []string)

	// OnInvokeComplete is called once the invocation is classified.
	// code is the classified result code (0, the renderer's exit code, or
	// the warning sentinel).
	OnInvokeComplete(ctx context.Context, argv []string, code int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRendererHooks is a no-op implementation of RendererHooks.
type NoopRendererHooks struct{}

func (NoopRendererHooks) OnInvokeStart(context.Context, []string) {}
func (NoopRendererHooks) OnInvokeComplete(context.Context, []string, int, time.Duration, error) {
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
	rendererHooks RendererHooks = NoopRendererHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetRendererHooks registers custom renderer hooks.
// This should be called once at application startup.
func SetRendererHooks(h RendererHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rendererHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Renderer returns the registered renderer hooks.
func Renderer() RendererHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rendererHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	rendererHooks = NoopRendererHooks{}
	cacheHooks = NoopCacheHooks{}
}
