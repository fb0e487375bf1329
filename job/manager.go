// Package job batches compiled tasks into driver jobs. A job is created on
// the device, filled with tasks in user space and handed to the driver as a
// single request.
package job

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"go_rga/compile"
	"go_rga/core"
	"go_rga/device"
	"go_rga/logging"
)

// DefaultTaskMax is the number of tasks one job may hold.
const DefaultTaskMax = 100

// Handle identifies a job. The driver assigns it.
type Handle uint32

// Source hands out the open device. *session.Session satisfies it.
type Source interface {
	Device(ctx context.Context) (device.Device, error)
}

// Job is a pending batch of tasks.
type Job struct {
	handle Handle
	tasks  []*compile.Task
	count  int
}

// Manager tracks the jobs created through it. Device calls are made with
// the registry unlocked.
type Manager struct {
	mu   sync.Mutex
	jobs map[Handle]*Job
	max  int

	src Source
	log *logging.Logger
}

// NewManager returns a Manager allowing max tasks per job. max <= 0 means
// DefaultTaskMax.
func NewManager(src Source, max int, log *logging.Logger) *Manager {
	if max <= 0 {
		max = DefaultTaskMax
	}
	return &Manager{
		jobs: make(map[Handle]*Job),
		max:  max,
		src:  src,
		log:  logging.OrNop(log).Named("job"),
	}
}

// Create asks the driver for a new job.
func (m *Manager) Create(ctx context.Context, flags uint32) (Handle, error) {
	dev, err := m.src.Device(ctx)
	if err != nil {
		return 0, err
	}
	id, err := dev.CreateJob(ctx, flags)
	if err != nil {
		return 0, core.ErrDevice("request create", err)
	}
	h := Handle(id)

	m.mu.Lock()
	if existing, ok := m.jobs[h]; ok {
		count := existing.count
		m.mu.Unlock()
		m.log.Error("job registry already holds the new handle",
			logging.JobHandle(id), zap.Int("task_count", count))
		if cerr := dev.CancelJob(ctx, id); cerr != nil {
			m.log.Warn("cancel of duplicate job failed", logging.JobHandle(id), zap.Error(cerr))
		}
		return 0, core.ErrIllegal("", "job handle[%d] already exists with %d tasks", id, count)
	}
	m.jobs[h] = &Job{handle: h}
	m.mu.Unlock()

	m.log.Debug("job created", logging.JobHandle(id))
	return h, nil
}

// Append adds a compiled task to the job. A task carrying a palette upload
// takes two slots.
func (m *Manager) Append(h Handle, task *compile.Task) error {
	need := 1
	if task.LUTUpload != nil {
		need = 2
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[h]
	if !ok {
		return core.ErrJobNotFound(uint32(h))
	}
	if j.count+need > m.max {
		return core.ErrJobFull(uint32(h), j.count)
	}
	j.tasks = append(j.tasks, task)
	j.count += need
	return nil
}

// Len returns the number of task slots used by the job.
func (m *Manager) Len(h Handle) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[h]
	if !ok {
		return 0, false
	}
	return j.count, true
}

// Tasks returns a copy of the requests queued on the job, in submission
// order.
func (m *Manager) Tasks(h Handle) ([]device.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[h]
	if !ok {
		return nil, core.ErrJobNotFound(uint32(h))
	}
	return flatten(j.tasks), nil
}

func flatten(tasks []*compile.Task) []device.Request {
	reqs := make([]device.Request, 0, len(tasks))
	for _, t := range tasks {
		if t.LUTUpload != nil {
			reqs = append(reqs, *t.LUTUpload)
		}
		reqs = append(reqs, t.Request)
	}
	return reqs
}

func syncMode(async bool) uint32 {
	if async {
		return device.SyncModeAsync
	}
	return device.SyncModeSync
}

// Submit removes the job from the registry and runs it. For async jobs the
// release fence is returned; it is -1 otherwise. The handle is gone after
// Submit even when the device call fails.
func (m *Manager) Submit(ctx context.Context, h Handle, async bool, acquireFence int) (int, error) {
	dev, err := m.src.Device(ctx)
	if err != nil {
		return -1, err
	}

	m.mu.Lock()
	j, ok := m.jobs[h]
	if !ok {
		m.mu.Unlock()
		return -1, core.ErrJobNotFound(uint32(h))
	}
	delete(m.jobs, h)
	m.mu.Unlock()

	return m.run(ctx, j, async, acquireFence, "request submit", dev.SubmitJob)
}

// Config sends the job's tasks to the driver without consuming the handle.
func (m *Manager) Config(ctx context.Context, h Handle, async bool, acquireFence int) (int, error) {
	dev, err := m.src.Device(ctx)
	if err != nil {
		return -1, err
	}

	m.mu.Lock()
	j, ok := m.jobs[h]
	if !ok {
		m.mu.Unlock()
		return -1, core.ErrJobNotFound(uint32(h))
	}
	snapshot := &Job{handle: j.handle, tasks: append([]*compile.Task(nil), j.tasks...), count: j.count}
	m.mu.Unlock()

	return m.run(ctx, snapshot, async, acquireFence, "request config", dev.ConfigJob)
}

func (m *Manager) run(ctx context.Context, j *Job, async bool, acquireFence int, op string,
	call func(context.Context, *device.UserRequest) error) (int, error) {
	reqs := flatten(j.tasks)
	ureq := device.NewUserRequest(uint32(j.handle), syncMode(async), acquireFence, reqs)
	err := call(ctx, &ureq)
	runtime.KeepAlive(reqs)
	for _, t := range j.tasks {
		t.KeepAlive()
	}
	if err != nil {
		return -1, core.ErrDevice(op, err)
	}

	m.log.Debug(op,
		logging.JobHandle(uint32(j.handle)),
		zap.Int("task_count", len(reqs)),
		zap.Bool("async", async),
		logging.Fence("acquire_fence", acquireFence))
	if !async {
		return -1, nil
	}
	return int(ureq.ReleaseFenceFD), nil
}

// Cancel drops the job and tells the driver. Unknown handles are still
// passed to the driver, which owns the authoritative job list.
func (m *Manager) Cancel(ctx context.Context, h Handle) error {
	m.mu.Lock()
	delete(m.jobs, h)
	m.mu.Unlock()

	dev, err := m.src.Device(ctx)
	if err != nil {
		return err
	}
	if err := dev.CancelJob(ctx, uint32(h)); err != nil {
		return core.ErrDevice("request cancel", err)
	}
	return nil
}

// Pending returns the number of jobs created but not yet submitted or
// cancelled.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}
