// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about scan stages,
// cache traffic and external process invocations. Libraries only depend on
// the hook interfaces, so no metrics backend is linked into the scanner.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScanHooks(&myScanHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnStageStart(ctx, "pub", observability.StageTree)
//	// ... parse the tree ...
//	observability.Scan().OnStageComplete(ctx, "pub", observability.StageTree, n, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names reported to ScanHooks.
const (
	StageSetup   = "setup"
	StageTree    = "tree"
	StageScope   = "scope"
	StageCatalog = "catalog"
	StageRows    = "rows"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from a package-manager scan.
type ScanHooks interface {
	OnStageStart(ctx context.Context, manager, stage string)
	OnStageComplete(ctx context.Context, manager, stage string, count int, duration time.Duration, err error)

	// OnRecordSkipped records a catalog entry dropped from the report.
	OnRecordSkipped(ctx context.Context, manager, pkg string, err error)
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
// Process Hooks
// =============================================================================

// ProcessHooks receives events from external process invocations.
type ProcessHooks interface {
	// OnStart records a process about to be started.
	OnStart(ctx context.Context, name string, args []string)

	// OnExit records the process exit. exitCode is -1 when the process
	// could not be started or was killed.
	OnExit(ctx context.Context, name string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnStageStart(context.Context, string, string) {}
func (NoopScanHooks) OnStageComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopScanHooks) OnRecordSkipped(context.Context, string, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopProcessHooks is a no-op implementation of ProcessHooks.
type NoopProcessHooks struct{}

func (NoopProcessHooks) OnStart(context.Context, string, []string)                 {}
func (NoopProcessHooks) OnExit(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks    ScanHooks    = NoopScanHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	processHooks ProcessHooks = NoopProcessHooks{}
	hooksMu      sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetProcessHooks registers custom process hooks.
func SetProcessHooks(h ProcessHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		processHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Process returns the registered process hooks.
func Process() ProcessHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return processHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	cacheHooks = NoopCacheHooks{}
	processHooks = NoopProcessHooks{}
}
