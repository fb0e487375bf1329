// Package shutdown coordinates closing an engine: it stops new submissions,
// waits for the ones in flight and then runs ordered cleanup functions.
package shutdown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrTrackerClosed is returned by Track once the tracker is closed.
var ErrTrackerClosed = errors.New("operation tracker is closed")

// Tracker counts in-flight submissions.
//
//	if !tracker.Start() {
//	    return ErrTrackerClosed
//	}
//	defer tracker.Done()
type Tracker struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	active atomic.Int64
	closed bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Start registers one operation. It returns false once Close has been
// called; otherwise the caller must call Done.
func (t *Tracker) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	t.wg.Add(1)
	t.active.Add(1)
	return true
}

func (t *Tracker) Done() {
	t.active.Add(-1)
	t.wg.Done()
}

// Wait blocks until every started operation is done or ctx ends.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close rejects further Start calls. Running operations are unaffected.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

func (t *Tracker) ActiveCount() int64 {
	return t.active.Load()
}

func (t *Tracker) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
