package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"go_rga/core"
)

type entry struct {
	name     string
	fn       core.ShutdownFunc
	priority int
}

// Registry holds cleanup functions and runs them once, lowest priority
// first. Priorities used by the engine:
//
//	10  audit writer drain
//	20  audit database
//	30  device session
//	40  logger sync
type Registry struct {
	mu      sync.Mutex
	entries []entry
	closed  bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn under name. Registering after Shutdown does nothing.
func (r *Registry) Register(name string, priority int, fn core.ShutdownFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || fn == nil {
		return
	}
	r.entries = append(r.entries, entry{name: name, fn: fn, priority: priority})
}

func (r *Registry) sorted() []entry {
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].priority < out[j].priority
	})
	return out
}

// Shutdown runs every registered function even when earlier ones fail and
// returns their errors combined. Later calls return nil.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	entries := r.sorted()
	r.mu.Unlock()

	var err error
	for _, e := range entries {
		if ferr := e.fn(ctx); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", e.name, ferr))
		}
	}
	return err
}

// Names returns the registered names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.sorted()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
