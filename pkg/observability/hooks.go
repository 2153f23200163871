// Package observability lets a host receive editor, cache and store events
// without the library depending on a metrics or tracing backend.
//
// Each event category is an interface with a no-op default. The process
// entry point registers its own implementations once at startup; library
// code fetches the current implementation at the call site:
//
//	observability.SetEditorHooks(&myEditorHooks{})
//
//	observability.Editor().OnDropStart(ctx, itemID)
//	// ... finalize and apply ...
//	observability.Editor().OnDropComplete(ctx, string(act.Kind), elapsed, err)
//
// Registration is guarded by a mutex, so hooks may be swapped while
// requests are in flight, though in practice they are set once.
package observability

import (
	"context"
	"sync"
	"time"
)

// EditorHooks receives events from the editor runner.
type EditorHooks interface {
	// OnPreview fires once per pointer event of a drag.
	OnPreview(ctx context.Context, itemID, zone string, snapped bool)

	OnDropStart(ctx context.Context, itemID string)
	OnDropComplete(ctx context.Context, action string, duration time.Duration, err error)

	// OnEdit fires after a split or trim. applied is false when the request
	// was a no-op.
	OnEdit(ctx context.Context, op, itemID string, applied bool)

	OnReplayComplete(ctx context.Context, events int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// StoreHooks receives events from timeline document stores.
type StoreHooks interface {
	// OnStoreOp records a completed store operation (save, load, list,
	// delete) against the named backend.
	OnStoreOp(ctx context.Context, backend, op string, duration time.Duration, err error)
}

// NoopEditorHooks ignores every editor event.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnPreview(context.Context, string, string, bool)              {}
func (NoopEditorHooks) OnDropStart(context.Context, string)                          {}
func (NoopEditorHooks) OnDropComplete(context.Context, string, time.Duration, error) {}
func (NoopEditorHooks) OnEdit(context.Context, string, string, bool)                 {}
func (NoopEditorHooks) OnReplayComplete(context.Context, int, time.Duration, error)  {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks ignores every store event.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreOp(context.Context, string, string, time.Duration, error) {}

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers h for editor events. A nil h is ignored.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers h for store events. A nil h is ignored.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores the no-op defaults. Tests use it to isolate registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
