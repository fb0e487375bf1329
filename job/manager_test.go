package job

import (
	"context"
	"errors"
	"testing"

	"go_rga/compile"
	"go_rga/core"
	"go_rga/device"
)

type fakeSource struct {
	dev *device.Fake
	err error
}

func (s fakeSource) Device(context.Context) (device.Device, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dev, nil
}

func newManager(t *testing.T, max int) (*Manager, *device.Fake) {
	t.Helper()
	fake := device.NewFake()
	return NewManager(fakeSource{dev: fake}, max, nil), fake
}

func task(mode uint8) *compile.Task {
	t := &compile.Task{}
	t.Request.RenderMode = mode
	t.Request.FGColor = uint32(mode) + 1
	return t
}

func TestManager_CreateAppendSubmit(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)

	h, err := m.Create(ctx, 0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := m.Append(h, task(uint8(i))); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	if n, _ := m.Len(h); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}

	fence, err := m.Submit(ctx, h, false, -1)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if fence != -1 {
		t.Errorf("Submit() fence = %d, want -1 for sync", fence)
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("device saw %d submissions, want 1", len(fake.Submitted))
	}
	sub := fake.Submitted[0]
	if sub.ID != uint32(h) || sub.SyncMode != device.SyncModeSync {
		t.Errorf("submission = id %d mode 0x%x", sub.ID, sub.SyncMode)
	}
	if len(sub.Tasks) != 3 {
		t.Fatalf("submitted %d tasks, want 3", len(sub.Tasks))
	}
	for i, req := range sub.Tasks {
		if req.RenderMode != uint8(i) {
			t.Errorf("task %d RenderMode = %d, want %d", i, req.RenderMode, i)
		}
	}

	_, err = m.Submit(ctx, h, false, -1)
	if !core.IsKind(err, core.KindJobNotFound) {
		t.Errorf("second Submit() error = %v, want job not found", err)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManager_AsyncSubmitReturnsFence(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)
	h, _ := m.Create(ctx, 0)
	_ = m.Append(h, task(0))

	fence, err := m.Submit(ctx, h, true, 7)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if fence <= 0 {
		t.Errorf("Submit() fence = %d, want a release fence", fence)
	}
	if got := fake.Submitted[0].AcquireFence; got != 7 {
		t.Errorf("AcquireFence = %d, want 7", got)
	}
}

func TestManager_JobFull(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 2)
	h, _ := m.Create(ctx, 0)

	if err := m.Append(h, task(0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	withLUT := task(1)
	withLUT.LUTUpload = &device.Request{RenderMode: device.RenderUpdatePaletteTable}
	if err := m.Append(h, withLUT); !core.IsKind(err, core.KindJobFull) {
		t.Errorf("Append() with palette upload error = %v, want job full", err)
	}
	if err := m.Append(h, task(2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := m.Append(h, task(3)); !core.IsKind(err, core.KindJobFull) {
		t.Errorf("Append() past max error = %v, want job full", err)
	}

	// Rejected appends leave the job intact.
	if _, err := m.Submit(ctx, h, false, -1); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(fake.Submitted) != 1 {
		t.Fatalf("device saw %d submissions, want 1", len(fake.Submitted))
	}
	got := fake.Submitted[0].Tasks
	if len(got) != 2 {
		t.Fatalf("submitted %d tasks, want 2", len(got))
	}
	for i, want := range []uint8{0, 2} {
		if got[i].RenderMode != want {
			t.Errorf("task %d RenderMode = %d, want %d", i, got[i].RenderMode, want)
		}
	}
	if _, err := m.Submit(ctx, h, false, -1); !core.IsKind(err, core.KindJobNotFound) {
		t.Errorf("second Submit() error = %v, want job not found", err)
	}
}

func TestManager_DefaultMax(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 0)
	h, _ := m.Create(ctx, 0)
	for i := 0; i < DefaultTaskMax; i++ {
		if err := m.Append(h, task(0)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	if err := m.Append(h, task(0)); !core.IsKind(err, core.KindJobFull) {
		t.Errorf("Append() error = %v, want job full", err)
	}
}

func TestManager_AppendUnknown(t *testing.T) {
	m, _ := newManager(t, 0)
	if err := m.Append(42, task(0)); !core.IsKind(err, core.KindJobNotFound) {
		t.Errorf("Append() error = %v, want job not found", err)
	}
}

func TestManager_TasksFlattensPaletteUpload(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, 0)
	h, _ := m.Create(ctx, 0)

	pal := task(device.RenderColorPalette)
	pal.LUTUpload = &device.Request{RenderMode: device.RenderUpdatePaletteTable}
	_ = m.Append(h, pal)

	reqs, err := m.Tasks(h)
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}
	if len(reqs) != 2 || reqs[0].RenderMode != device.RenderUpdatePaletteTable || reqs[1].RenderMode != device.RenderColorPalette {
		t.Fatalf("Tasks() = %d requests, want upload then palette", len(reqs))
	}
	reqs[1].FGColor = 0xdead
	again, _ := m.Tasks(h)
	if again[1].FGColor == 0xdead {
		t.Error("Tasks() returned shared storage")
	}
}

func TestManager_ConfigKeepsJob(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)
	h, _ := m.Create(ctx, 0)
	_ = m.Append(h, task(0))

	if _, err := m.Config(ctx, h, false, -1); err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if len(fake.Configured) != 1 || len(fake.Configured[0].Tasks) != 1 {
		t.Fatalf("device saw %d config calls", len(fake.Configured))
	}
	if _, ok := m.Len(h); !ok {
		t.Error("Config() consumed the job")
	}
}

func TestManager_Cancel(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)
	h, _ := m.Create(ctx, 0)

	if err := m.Cancel(ctx, h); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if len(fake.Cancelled) != 1 || fake.Cancelled[0] != uint32(h) {
		t.Errorf("Cancelled = %v, want [%d]", fake.Cancelled, h)
	}
	if err := m.Append(h, task(0)); !core.IsKind(err, core.KindJobNotFound) {
		t.Errorf("Append() after cancel error = %v, want job not found", err)
	}
}

func TestManager_DuplicateHandle(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)
	if _, err := m.Create(ctx, 0); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	fake.RepeatJobHandle()
	if _, err := m.Create(ctx, 0); err == nil {
		t.Fatal("Create() with a reused handle succeeded")
	}
	if len(fake.Cancelled) != 1 {
		t.Errorf("Cancelled = %v, want the duplicate cancelled", fake.Cancelled)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want the first job kept", m.Pending())
	}
}

func TestManager_SubmitDeviceError(t *testing.T) {
	ctx := context.Background()
	m, fake := newManager(t, 0)
	h, _ := m.Create(ctx, 0)
	fake.Errs["SubmitJob"] = errors.New("boom")

	if _, err := m.Submit(ctx, h, false, -1); !core.IsKind(err, core.KindDevice) {
		t.Errorf("Submit() error = %v, want device error", err)
	}
	if m.Pending() != 0 {
		t.Error("a failed submit should still consume the job")
	}
}
