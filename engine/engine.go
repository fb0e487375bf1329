// Package engine is the entry point for callers: it validates and compiles
// tasks, submits them to the device or appends them to a job, and records
// every submission in the metrics store and the optional audit database.
//
// Usage:
//
//	sess := session.New(device.Open)
//	eng := engine.New(sess, engine.WithLogger(log))
//	defer eng.Close(context.Background())
//
//	err := eng.Copy(ctx, surface.FromFD(srcFD, 1280, 720, surface.FormatRGBA8888),
//	    surface.FromFD(dstFD, 1280, 720, surface.FormatRGBA8888))
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go_rga/core"
	"go_rga/db"
	"go_rga/job"
	"go_rga/logging"
	"go_rga/metrics"
	"go_rga/session"
	"go_rga/shutdown"
	"go_rga/version"
)

// Cleanup priorities. Lower runs first.
const (
	priorityAuditWriter = 10
	priorityAuditDB     = 20
	prioritySession     = 30
)

// Engine is safe for concurrent use.
type Engine struct {
	sess  *session.Session
	jobs  *job.Manager
	stats metrics.Collector
	audit *db.Repository
	log   *logging.Logger
	shut  *shutdown.Manager

	jobTaskMax      int
	shutdownTimeout time.Duration
	auditDB         *db.Database
	ownsDB          bool
}

type Option func(*Engine)

func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics replaces the default in-memory store.
func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) { e.stats = c }
}

// WithJobTaskMax caps the tasks a job may hold. n <= 0 keeps the default.
func WithJobTaskMax(n int) Option {
	return func(e *Engine) { e.jobTaskMax = n }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(e *Engine) { e.shutdownTimeout = d }
}

// WithAudit records submissions in d. Close drains pending rows but leaves
// d open; the caller owns it.
func WithAudit(d *db.Database) Option {
	return func(e *Engine) { e.auditDB = d }
}

// WithAuditPath opens the audit database at path when the engine is built.
// Close closes it. An empty path disables auditing.
func WithAuditPath(path string) Option {
	return func(e *Engine) {
		if path == "" {
			return
		}
		d, err := db.Open(path)
		if err != nil {
			logging.OrNop(e.log).Warn("audit store disabled", zap.String("path", path), zap.Error(err))
			return
		}
		e.auditDB = d
		e.ownsDB = true
	}
}

// FromConfig applies the engine settings in cfg.
func FromConfig(cfg *core.Config) Option {
	return func(e *Engine) {
		e.jobTaskMax = cfg.JobTaskMax
		e.shutdownTimeout = cfg.ShutdownTimeout
		if cfg.MetricsHistory > 0 {
			e.stats = metrics.NewStore(metrics.StoreConfig{HistoryCapacity: cfg.MetricsHistory}, time.Now())
		}
	}
}

// New builds an engine over sess. The device is opened by the first call
// that needs it.
func New(sess *session.Session, opts ...Option) *Engine {
	e := &Engine{sess: sess}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.OrNop(e.log).Named("engine")
	if e.stats == nil {
		e.stats = metrics.NewStore(metrics.DefaultStoreConfig(), time.Now())
	}
	e.jobs = job.NewManager(sess, e.jobTaskMax, e.log)
	e.shut = shutdown.NewManager(e.log, shutdown.WithTimeout(e.shutdownTimeout))

	if e.auditDB != nil {
		e.wireAudit()
	}
	e.shut.Register("session", prioritySession, func(context.Context) error {
		return sess.Close()
	})
	return e
}

func (e *Engine) wireAudit() {
	direct := db.NewRepository(e.auditDB, nil)
	cfg := db.DefaultAsyncWriterConfig()
	cfg.Logger = e.log
	writer := db.NewAsyncWriter(direct.WriteHandler(), cfg)
	writer.Start()
	e.audit = db.NewRepository(e.auditDB, writer)

	e.shut.Register("audit-writer", priorityAuditWriter, func(ctx context.Context) error {
		timeout := cfg.DrainTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if !writer.Stop(timeout) {
			return fmt.Errorf("audit writer left %d rows unwritten", writer.Pending())
		}
		if dropped, failed := writer.Stats(); dropped > 0 || failed > 0 {
			e.log.Warn("audit rows lost", zap.Uint64("dropped", dropped), zap.Uint64("failed", failed))
		}
		return nil
	})
	if e.ownsDB {
		e.shut.Register("audit-db", priorityAuditDB, func(context.Context) error {
			return e.auditDB.Close()
		})
	}
}

// Info initialises the session if needed and returns what it detected.
func (e *Engine) Info(ctx context.Context) (session.Info, error) {
	if err := e.sess.Init(ctx); err != nil {
		return session.Info{}, err
	}
	info, ok := e.sess.Info()
	if !ok {
		return session.Info{}, core.ErrDevice("session", fmt.Errorf("session closed"))
	}
	return info, nil
}

// CheckHeaderVersion reports whether a caller built against header can use
// this library. The result is logged; the caller decides whether to go on.
func (e *Engine) CheckHeaderVersion(header version.Version) error {
	res, err := version.CheckHeader(version.LibraryVersion, header)
	if err != nil {
		e.log.Warn("header version mismatch",
			zap.Stringer("header", header),
			zap.Stringer("library", version.LibraryVersion),
			zap.Stringer("range", res.Range),
			zap.Error(err))
		return err
	}
	return nil
}

// Stats returns the aggregate submission statistics.
func (e *Engine) Stats() metrics.Snapshot {
	return e.stats.Snapshot()
}

// Recent returns up to n recent submissions, oldest first.
func (e *Engine) Recent(n int) []metrics.SubmissionRecord {
	return e.stats.Recent(n)
}

// Audit returns the audit repository, or nil when auditing is off.
func (e *Engine) Audit() *db.Repository {
	return e.audit
}

// Close stops accepting work, waits for running calls and releases the
// audit store and the device. Later calls return the first result.
func (e *Engine) Close(ctx context.Context) error {
	return e.shut.Shutdown(ctx)
}

func (e *Engine) track(ctx context.Context, name string, fn func(context.Context) error) error {
	err := e.shut.Track(ctx, name, fn)
	if errors.Is(err, shutdown.ErrTrackerClosed) {
		return core.ErrDevice(name, err)
	}
	return err
}
