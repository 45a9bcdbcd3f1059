package utils

import (
	"context"
	"sync"
)

// InflightRegistry enforces latest-wins per logical operation: starting a
// request for a key cancels the one already running under that key, so a
// stale write can never land after a newer one.
type InflightRegistry struct {
	mu      sync.Mutex
	entries map[string]*inflightEntry
}

type inflightEntry struct {
	cancel context.CancelFunc
}

// NewInflightRegistry creates an empty registry.
func NewInflightRegistry() *InflightRegistry {
	return &InflightRegistry{entries: make(map[string]*inflightEntry)}
}

// Begin registers a request under key, cancelling any request already in
// flight for it. The returned context is cancelled if a newer request
// supersedes this one. Callers must invoke done when finished.
func (r *InflightRegistry) Begin(ctx context.Context, key string) (context.Context, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.entries[key]; ok {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	entry := &inflightEntry{cancel: cancel}
	r.entries[key] = entry

	done := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		cancel()
		if r.entries[key] == entry {
			delete(r.entries, key)
		}
	}
	return ctx, done
}

// Superseded reports whether the context handed out by Begin was cancelled
// by a newer request for the same key.
func Superseded(ctx context.Context) bool {
	return ctx.Err() != nil
}
