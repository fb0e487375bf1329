package device

import (
	"context"
	"errors"
	"sync"
)

// ErrNoMultiCore is what Fake returns from DriverVersion when it plays a
// legacy driver.
var ErrNoMultiCore = errors.New("inappropriate ioctl for device")

// Submission is a job submit or config call seen by Fake.
type Submission struct {
	ID           uint32
	SyncMode     uint32
	AcquireFence int32
	Tasks        []Request
}

// Fake is an in-memory Device for tests. It answers like an RK3588 with a
// 1.3.2 multi-core driver unless configured otherwise. Zero-value fields
// are filled by NewFake; tests adjust them before handing it out.
type Fake struct {
	mu sync.Mutex

	// Driver is the multi-core driver version; nil makes DriverVersion fail
	// the way a legacy driver does.
	Driver *VersionInfo
	Cores  []VersionInfo
	Legacy string

	// Errs maps a method name ("Blit", "SubmitJob", ...) to the error it
	// returns.
	Errs map[string]error

	Blits        []Request
	Submitted    []Submission
	Configured   []Submission
	Created      []uint32
	Cancelled    []uint32
	Imported     []ExternalBuffer
	Released     []ExternalBuffer
	ClosedFences []int
	Closed       bool

	nextJob    uint32
	nextFence  int32
	nextHandle uint32
}

// NewFake returns a Fake reporting two RGA3 cores and one RGA2 core.
func NewFake() *Fake {
	return &Fake{
		Driver: &VersionInfo{Major: 1, Minor: 3, Revision: 2, Str: verStr("1.3.2")},
		Cores: []VersionInfo{
			{Major: 3, Minor: 0, Revision: 0x76831, Str: verStr("3.0.76831")},
			{Major: 3, Minor: 0, Revision: 0x76831, Str: verStr("3.0.76831")},
			{Major: 3, Minor: 2, Revision: 0x63318, Str: verStr("3.2.63318")},
		},
		Legacy:     "3.02",
		Errs:       map[string]error{},
		nextJob:    1,
		nextFence:  100,
		nextHandle: 1,
	}
}

// FakeVersion builds a VersionInfo with its text form filled in.
func FakeVersion(major, minor, revision uint32, str string) VersionInfo {
	return VersionInfo{Major: major, Minor: minor, Revision: revision, Str: verStr(str)}
}

// Opener returns an Opener handing out f.
func (f *Fake) Opener() Opener {
	return func(string) (Device, error) {
		if err := f.err("Open"); err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.Closed = false
		f.mu.Unlock()
		return f, nil
	}
}

func verStr(s string) [16]byte {
	var b [16]byte
	copy(b[:], s)
	return b
}

func (f *Fake) err(method string) error {
	if f.Errs == nil {
		return nil
	}
	return f.Errs[method]
}

func (f *Fake) DriverVersion(ctx context.Context) (VersionInfo, error) {
	if err := f.err("DriverVersion"); err != nil {
		return VersionInfo{}, err
	}
	if f.Driver == nil {
		return VersionInfo{}, ErrNoMultiCore
	}
	return *f.Driver, nil
}

func (f *Fake) HWVersions(ctx context.Context) (HWVersions, error) {
	if err := f.err("HWVersions"); err != nil {
		return HWVersions{}, err
	}
	var v HWVersions
	n := copy(v.Version[:], f.Cores)
	v.Size = uint32(n)
	return v, nil
}

func (f *Fake) LegacyVersion(ctx context.Context) (string, error) {
	if err := f.err("LegacyVersion"); err != nil {
		return "", err
	}
	return f.Legacy, nil
}

func (f *Fake) Blit(ctx context.Context, req *Request, async bool) error {
	if err := f.err("Blit"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if async {
		req.OutFenceFD = f.fence()
	}
	f.Blits = append(f.Blits, *req)
	return nil
}

func (f *Fake) fence() int32 {
	f.nextFence++
	return f.nextFence
}

func (f *Fake) CreateJob(ctx context.Context, flags uint32) (uint32, error) {
	if err := f.err("CreateJob"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextJob
	f.nextJob++
	f.Created = append(f.Created, id)
	return id, nil
}

// RepeatJobHandle makes the next CreateJob return the previous handle
// again.
func (f *Fake) RepeatJobHandle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextJob > 1 {
		f.nextJob--
	}
}

func (f *Fake) SubmitJob(ctx context.Context, req *UserRequest) error {
	if err := f.err("SubmitJob"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.SyncMode == SyncModeAsync {
		req.ReleaseFenceFD = f.fence()
	}
	f.Submitted = append(f.Submitted, submission(req))
	return nil
}

func (f *Fake) ConfigJob(ctx context.Context, req *UserRequest) error {
	if err := f.err("ConfigJob"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Configured = append(f.Configured, submission(req))
	return nil
}

func submission(req *UserRequest) Submission {
	return Submission{
		ID:           req.ID,
		SyncMode:     req.SyncMode,
		AcquireFence: req.AcquireFenceFD,
		Tasks:        append([]Request(nil), TasksOf(req)...),
	}
}

func (f *Fake) CancelJob(ctx context.Context, id uint32) error {
	if err := f.err("CancelJob"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cancelled = append(f.Cancelled, id)
	return nil
}

func (f *Fake) ImportBuffers(ctx context.Context, bufs []ExternalBuffer) error {
	if err := f.err("ImportBuffers"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range bufs {
		bufs[i].Handle = f.nextHandle
		f.nextHandle++
	}
	f.Imported = append(f.Imported, bufs...)
	return nil
}

func (f *Fake) ReleaseBuffers(ctx context.Context, bufs []ExternalBuffer) error {
	if err := f.err("ReleaseBuffers"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Released = append(f.Released, bufs...)
	return nil
}

func (f *Fake) CloseFence(fd int) error {
	if fd <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClosedFences = append(f.ClosedFences, fd)
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
