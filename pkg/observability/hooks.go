// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about remote API calls and pinning decisions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&requestCounter{})
//	    observability.SetPinHooks(&auditTrail{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pin().OnPinned(ctx, "lib", "org/lib#abc123", "tag")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pin Hooks
// =============================================================================

// PinHooks receives one event per dependency decision made by the walker.
// Implementations may be called from several goroutines when sibling
// dependencies are resolved concurrently.
type PinHooks interface {
	// OnPinned records a dependency pinned to ref ("owner/repo#sha").
	// via is "tag" or "commit" depending on how the commit was found.
	OnPinned(ctx context.Context, dependency, ref, via string)

	// OnRetained records an exempt dependency kept unpinned.
	OnRetained(ctx context.Context, dependency string)

	// OnDropped records an exempt dependency removed from the output.
	OnDropped(ctx context.Context, dependency string)

	// OnWarning records a non-fatal resolution warning.
	OnWarning(ctx context.Context, dependency, kind string)

	// OnFailed records a fatal verification failure.
	OnFailed(ctx context.Context, dependency string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPinHooks is a no-op implementation of PinHooks.
type NoopPinHooks struct{}

func (NoopPinHooks) OnPinned(context.Context, string, string, string) {}
func (NoopPinHooks) OnRetained(context.Context, string)               {}
func (NoopPinHooks) OnDropped(context.Context, string)                {}
func (NoopPinHooks) OnWarning(context.Context, string, string)        {}
func (NoopPinHooks) OnFailed(context.Context, string, error)          {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pinHooks  PinHooks  = NoopPinHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetPinHooks registers custom pinning hooks.
// This should be called once at application startup before any verification run.
func SetPinHooks(h PinHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pinHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pin returns the registered pinning hooks.
func Pin() PinHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pinHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pinHooks = NoopPinHooks{}
	httpHooks = NoopHTTPHooks{}
}
