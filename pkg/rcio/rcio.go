// Package rcio provides scoped resource handles: values that own exactly
// one underlying OS resource (a socket, a pipe descriptor, a buffered
// stream, a memory mapping) and release it exactly once.
//
// Handles are move-only in spirit: callers are expected to call Close
// from a single defer and never copy a handle once it has been handed
// to a goroutine. Failures encountered while releasing a resource are
// never returned to the caller — they are logged at WARN and swallowed,
// per the resource-handle invariant that release must not raise.
package rcio

import (
	"log/slog"
	"sync"
)

// Handle owns a single release function and runs it at most once.
type Handle struct {
	name    string
	release func() error
	log     *slog.Logger
	once    sync.Once
}

// New wraps release as a scoped handle named name, for diagnostics.
// log may be nil, in which case slog.Default() is used.
func New(name string, log *slog.Logger, release func() error) *Handle {
	if log == nil {
		log = slog.Default()
	}
	return &Handle{name: name, release: release, log: log}
}

// Close releases the underlying resource. Safe to call more than once
// and safe to call concurrently; only the first call does any work.
// A failure in the release path is logged at WARN, never returned.
func (h *Handle) Close() {
	h.once.Do(func() {
		if h.release == nil {
			return
		}
		if err := h.release(); err != nil {
			h.log.Warn("resource release failed", "resource", h.name, "error", err)
		}
	})
}
