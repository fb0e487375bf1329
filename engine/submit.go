package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go_rga/compile"
	"go_rga/core"
	"go_rga/device"
	"go_rga/job"
	"go_rga/logging"
	"go_rga/metrics"
	"go_rga/op"
	"go_rga/session"
	"go_rga/surface"
	"go_rga/validate"
)

// Task is one blit, fill or palette operation. Zero rects cover the whole
// buffer; a zero Pat leaves the pattern channel unused.
type Task struct {
	Src, Dst, Pat             surface.Buffer
	SrcRect, DstRect, PatRect surface.Rect
	Usage                     op.Usage
	Options                   op.Options

	// AcquireFence is a sync fence the device waits on before reading.
	// Zero or negative means none.
	AcquireFence int

	// LegacyBlend is a raw blend word from the older blit API.
	LegacyBlend uint32

	// Job appends the task to a job instead of running it. Zero runs it
	// now.
	Job job.Handle
}

// Submit validates and compiles t, then runs it or appends it to t.Job.
// For an immediate async task it returns the release fence, which the
// caller owns; otherwise it returns -1.
func (e *Engine) Submit(ctx context.Context, t Task) (int, error) {
	fence := -1
	err := e.track(ctx, "submit", func(ctx context.Context) error {
		var err error
		fence, err = e.submit(ctx, t)
		return err
	})
	return fence, err
}

func taskKind(u op.Usage) string {
	switch {
	case u.Has(op.ColorFill):
		return metrics.KindFill
	case u.Has(op.ColorPalette):
		return metrics.KindPalette
	}
	return metrics.KindBlit
}

func (e *Engine) submit(ctx context.Context, t Task) (int, error) {
	rec := newRecord(taskKind(t.Usage), t.Usage)
	rec.jobHandle = uint32(t.Job)
	if !t.Usage.Has(op.ColorFill) {
		rec.srcFormat = t.Src.Format.String()
	}
	rec.dstFormat = t.Dst.Format.String()

	fence, err := e.execute(ctx, t, rec.id)
	rec.fence = fence
	e.finish(ctx, rec, err)
	return fence, err
}

func (e *Engine) execute(ctx context.Context, t Task, id string) (int, error) {
	dev, err := e.sess.Device(ctx)
	if err != nil {
		return -1, err
	}
	info, err := e.Info(ctx)
	if err != nil {
		return -1, err
	}

	task, err := e.compile(t, info)
	if err != nil {
		return -1, err
	}
	if e.log.Core().Enabled(zapcore.DebugLevel) {
		e.log.Debug("compiled request", append(compile.Fields(&task.Request), logging.CorrelationID(id))...)
	}

	if t.Job != 0 {
		return -1, e.jobs.Append(t.Job, task)
	}

	defer task.KeepAlive()
	if task.LUTUpload != nil {
		if err := dev.Blit(ctx, task.LUTUpload, false); err != nil {
			return -1, core.ErrDevice("palette table upload", err)
		}
	}
	if err := dev.Blit(ctx, &task.Request, task.Async); err != nil {
		return -1, core.ErrDevice("blit", err)
	}
	if !task.Async {
		return -1, nil
	}
	e.releaseAcquireFence(dev, info, t.AcquireFence)
	return int(task.Request.OutFenceFD), nil
}

func (e *Engine) compile(t Task, info session.Info) (*compile.Task, error) {
	checked, err := validate.PrepareAndCheck(validate.Request{
		Src:     t.Src,
		Dst:     t.Dst,
		Pat:     t.Pat,
		SrcRect: t.SrcRect,
		DstRect: t.DstRect,
		PatRect: t.PatRect,
		Usage:   t.Usage,
	}, info.Row)
	if err != nil {
		return nil, err
	}
	return compile.Compile(compile.Input{
		Src:          checked.Src,
		Dst:          checked.Dst,
		Pat:          checked.Pat,
		SrcRect:      checked.SrcRect,
		DstRect:      checked.DstRect,
		PatRect:      checked.PatRect,
		Usage:        checked.Usage,
		Options:      t.Options,
		AcquireFence: t.AcquireFence,
		LegacyBlend:  t.LegacyBlend,
	}, info)
}

// releaseAcquireFence closes the caller's acquire fence once the driver
// has taken its own reference, on drivers that expect that.
func (e *Engine) releaseAcquireFence(dev device.Device, info session.Info, fd int) {
	if fd <= 0 || !info.Features.UserCloseFence {
		return
	}
	if err := dev.CloseFence(fd); err != nil {
		e.log.Warn("failed to close acquire fence", logging.Fence("acquire_fence", fd), zap.Error(err))
	}
}

// CreateJob opens a job on the device. Tasks submitted with its handle
// are queued until SubmitJob.
func (e *Engine) CreateJob(ctx context.Context, flags uint32) (job.Handle, error) {
	var h job.Handle
	err := e.track(ctx, "job create", func(ctx context.Context) error {
		var err error
		h, err = e.jobs.Create(ctx, flags)
		return err
	})
	if err == nil {
		e.log.Debug("job created", logging.JobHandle(uint32(h)))
	}
	return h, err
}

// SubmitJob sends every queued task of h and forgets the job. For async
// it returns the release fence; otherwise -1.
func (e *Engine) SubmitJob(ctx context.Context, h job.Handle, async bool, acquireFence int) (int, error) {
	return e.runJob(ctx, "job submit", h, async, acquireFence, e.jobs.Submit)
}

// ConfigJob sends the queued tasks of h without consuming the job.
func (e *Engine) ConfigJob(ctx context.Context, h job.Handle, async bool, acquireFence int) (int, error) {
	return e.runJob(ctx, "job config", h, async, acquireFence, e.jobs.Config)
}

func (e *Engine) runJob(ctx context.Context, name string, h job.Handle, async bool, acquireFence int,
	run func(context.Context, job.Handle, bool, int) (int, error)) (int, error) {
	fence := -1
	err := e.track(ctx, name, func(ctx context.Context) error {
		var usage op.Usage
		if async {
			usage = op.Async
		}
		rec := newRecord(metrics.KindJob, usage)
		rec.jobHandle = uint32(h)

		var err error
		fence, err = run(ctx, h, async, acquireFence)
		rec.fence = fence
		if err == nil && async {
			if info, ierr := e.Info(ctx); ierr == nil {
				if dev, derr := e.sess.Device(ctx); derr == nil {
					e.releaseAcquireFence(dev, info, acquireFence)
				}
			}
		}
		e.finish(ctx, rec, err)
		return err
	})
	return fence, err
}

// CancelJob drops h and its queued tasks.
func (e *Engine) CancelJob(ctx context.Context, h job.Handle) error {
	return e.track(ctx, "job cancel", func(ctx context.Context) error {
		if err := e.jobs.Cancel(ctx, h); err != nil {
			return err
		}
		e.log.Debug("job cancelled", logging.JobHandle(uint32(h)))
		return nil
	})
}

// PendingJobs returns the number of jobs created but not yet submitted or
// cancelled.
func (e *Engine) PendingJobs() int {
	return e.jobs.Pending()
}

// record tracks one submission from start to finish.
type record struct {
	id        string
	kind      string
	usage     op.Usage
	jobHandle uint32
	srcFormat string
	dstFormat string
	fence     int
	start     time.Time
}

func newRecord(kind string, usage op.Usage) *record {
	return &record{
		id:    uuid.NewString(),
		kind:  kind,
		usage: usage,
		fence: -1,
		start: time.Now(),
	}
}
