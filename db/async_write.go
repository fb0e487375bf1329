package db

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"go_rga/logging"
)

// DefaultChannelCapacity is the default number of queued submissions.
const DefaultChannelCapacity = 100

// DefaultDrainTimeout bounds how long Stop waits for queued writes.
const DefaultDrainTimeout = 30 * time.Second

// WriteHandler stores one queued submission.
type WriteHandler func(ctx context.Context, s Submission) error

// AsyncWriter queues submissions on a buffered channel and stores them
// from a single background goroutine, so recording never blocks a blit.
type AsyncWriter struct {
	queue   chan Submission
	handler WriteHandler
	log     *logging.Logger

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
	closed  bool

	dropped uint64
	failed  uint64
}

// AsyncWriterConfig configures an AsyncWriter.
type AsyncWriterConfig struct {
	ChannelCapacity int
	DrainTimeout    time.Duration
	Logger          *logging.Logger
}

// DefaultAsyncWriterConfig returns the default configuration.
func DefaultAsyncWriterConfig() AsyncWriterConfig {
	return AsyncWriterConfig{
		ChannelCapacity: DefaultChannelCapacity,
		DrainTimeout:    DefaultDrainTimeout,
	}
}

// NewAsyncWriter returns a stopped writer. Call Start before Write.
func NewAsyncWriter(handler WriteHandler, config AsyncWriterConfig) *AsyncWriter {
	if config.ChannelCapacity < 1 {
		config.ChannelCapacity = DefaultChannelCapacity
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncWriter{
		queue:   make(chan Submission, config.ChannelCapacity),
		handler: handler,
		log:     logging.OrNop(config.Logger).Named("audit"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the background goroutine. Later calls do nothing.
func (w *AsyncWriter) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.run()
}

func (w *AsyncWriter) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			w.drain()
			return
		case s := <-w.queue:
			w.store(s)
		}
	}
}

func (w *AsyncWriter) drain() {
	for {
		select {
		case s := <-w.queue:
			w.store(s)
		default:
			return
		}
	}
}

func (w *AsyncWriter) store(s Submission) {
	// The writer's own context is cancelled while draining.
	if err := w.handler(context.Background(), s); err != nil {
		w.mu.Lock()
		w.failed++
		w.mu.Unlock()
		w.log.Warn("failed to store submission",
			logging.CorrelationID(s.CorrelationID), zap.Error(err))
	}
}

// Write queues s without blocking. It returns false when the queue is full
// or the writer is closed.
func (w *AsyncWriter) Write(s Submission) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- s:
		return true
	default:
		w.dropped++
		return false
	}
}

// Pending returns the number of queued submissions.
func (w *AsyncWriter) Pending() int {
	return len(w.queue)
}

// Stats returns how many writes were rejected by a full queue and how many
// queued writes failed to store.
func (w *AsyncWriter) Stats() (dropped, failed uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped, w.failed
}

func (w *AsyncWriter) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started && !w.closed
}

// Stop rejects further writes, stores everything queued and waits for the
// goroutine to exit, giving up after timeout. It reports whether the drain
// finished.
func (w *AsyncWriter) Stop(timeout time.Duration) bool {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		w.log.Warn("audit writer drain timed out", zap.Int("pending", w.Pending()))
		return false
	}
}
