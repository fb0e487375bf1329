package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go_rga/core"
	"go_rga/logging"
)

// DefaultTimeout bounds Shutdown when no option overrides it.
const DefaultTimeout = 10 * time.Second

// Manager combines a Tracker and a Registry. Shutdown closes the tracker,
// waits for in-flight work and then runs cleanup.
type Manager struct {
	log      *logging.Logger
	timeout  time.Duration
	tracker  *Tracker
	registry *Registry

	mu   sync.Mutex
	done bool
	err  error
}

type ManagerOption func(*Manager)

func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func NewManager(log *logging.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		log:      logging.OrNop(log).Named("shutdown"),
		timeout:  DefaultTimeout,
		tracker:  NewTracker(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Register(name string, priority int, fn core.ShutdownFunc) {
	m.registry.Register(name, priority, fn)
	m.log.Debug("registered cleanup", zap.String("name", name), zap.Int("priority", priority))
}

// Track runs fn as an in-flight operation. It returns ErrTrackerClosed
// without calling fn once Shutdown has started.
func (m *Manager) Track(ctx context.Context, name string, fn func(context.Context) error) error {
	if !m.tracker.Start() {
		m.log.Debug("operation rejected during shutdown", zap.String("operation", name))
		return ErrTrackerClosed
	}
	defer m.tracker.Done()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Shutdown is idempotent; later calls return the first call's result.
// ctx may shorten the configured timeout.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return m.err
	}
	m.done = true

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.tracker.Close()
	var err error
	if n := m.tracker.ActiveCount(); n > 0 {
		m.log.Info("waiting for in-flight submissions", zap.Int64("active", n))
	}
	if werr := m.tracker.Wait(ctx); werr != nil {
		m.log.Warn("in-flight submissions did not finish",
			zap.Int64("remaining", m.tracker.ActiveCount()), zap.Error(werr))
		err = multierr.Append(err, werr)
		// Cleanup still gets a short window of its own.
		var c2 context.CancelFunc
		ctx, c2 = context.WithTimeout(context.Background(), time.Second)
		defer c2()
	}

	m.log.Debug("running cleanup", zap.Strings("handlers", m.registry.Names()))
	if rerr := m.registry.Shutdown(ctx); rerr != nil {
		for _, e := range multierr.Errors(rerr) {
			m.log.Error("cleanup failed", zap.Error(e))
		}
		err = multierr.Append(err, rerr)
	}
	m.log.Debug("shutdown complete", zap.Duration("duration", time.Since(start)))
	m.err = err
	return err
}

func (m *Manager) ActiveOperations() int64 { return m.tracker.ActiveCount() }

func (m *Manager) IsShuttingDown() bool { return m.tracker.IsClosed() }

func (m *Manager) Handlers() []string { return m.registry.Names() }

// NotifyContext returns a context cancelled by the first SIGINT or SIGTERM.
// A second signal calls force, which usually exits the process. stop
// releases the signal handler.
func (m *Manager) NotifyContext(parent context.Context, force func()) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	counter := NewSignalCounter(2, force)
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	quit := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				if counter.Increment() == 1 {
					m.log.Info("interrupted, cancelling", zap.String("signal", sig.String()))
					cancel()
				}
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(ch)
			close(quit)
			cancel()
		})
	}
}
