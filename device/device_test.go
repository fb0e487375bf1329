package device

import (
	"context"
	"errors"
	"testing"
	"unsafe"
)

func TestIOC_Numbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"get driver version", IOCGetDriverVersion, 0x801c7201},
		{"request create", IOCRequestCreate, 0x80047205},
		{"request cancel", IOCRequestCancel, 0xc0047208},
		{"release buffer", IOCReleaseBuffer, 0x40107204},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = 0x%x, want 0x%x", tt.name, tt.got, tt.want)
		}
	}
}

func TestABI_Sizes(t *testing.T) {
	if got := unsafe.Sizeof(VersionInfo{}); got != 28 {
		t.Errorf("sizeof(VersionInfo) = %d, want 28", got)
	}
	if got := unsafe.Sizeof(HWVersions{}); got != 228 {
		t.Errorf("sizeof(HWVersions) = %d, want 228", got)
	}
	if got := unsafe.Sizeof(BufferPool{}); got != 16 {
		t.Errorf("sizeof(BufferPool) = %d, want 16", got)
	}
	if got := unsafe.Sizeof(ImageInfo{}); got != 56 {
		t.Errorf("sizeof(ImageInfo) = %d, want 56", got)
	}
}

func TestVersionInfo_String(t *testing.T) {
	v := FakeVersion(1, 3, 2, "1.3.2")
	if got := v.String(); got != "1.3.2" {
		t.Errorf("String() = %q, want %q", got, "1.3.2")
	}
	if got := (VersionInfo{}).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestUserRequest_Tasks(t *testing.T) {
	tasks := []Request{{RenderMode: 1}, {RenderMode: 5}}
	req := NewUserRequest(7, SyncModeAsync, 3, tasks)
	if req.TaskNum != 2 || req.ID != 7 || req.AcquireFenceFD != 3 {
		t.Fatalf("NewUserRequest() = %+v", req)
	}
	got := TasksOf(&req)
	if len(got) != 2 || got[1].RenderMode != 5 {
		t.Errorf("TasksOf() = %v", got)
	}

	empty := NewUserRequest(1, SyncModeSync, 0, nil)
	if TasksOf(&empty) != nil {
		t.Error("TasksOf(empty) should be nil")
	}
}

func TestGaussConfig_Coefficients(t *testing.T) {
	coe := []uint32{10, 20, 30}
	var g GaussConfig
	g.SetCoefficients(coe)
	if g.Size != 3 {
		t.Fatalf("Size = %d, want 3", g.Size)
	}
	if got := g.Coefficients(); got[2] != 30 {
		t.Errorf("Coefficients() = %v", got)
	}
	g.SetCoefficients(nil)
	if g.CoePtr != 0 || g.Coefficients() != nil {
		t.Error("SetCoefficients(nil) should clear the pointer")
	}
}

func TestFake_Jobs(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	id, err := f.CreateJob(ctx, 0)
	if err != nil || id != 1 {
		t.Fatalf("CreateJob() = %d, %v", id, err)
	}

	tasks := []Request{{RenderMode: 5}}
	req := NewUserRequest(id, SyncModeAsync, 9, tasks)
	if err := f.SubmitJob(ctx, &req); err != nil {
		t.Fatalf("SubmitJob() error = %v", err)
	}
	if req.ReleaseFenceFD <= 0 {
		t.Errorf("ReleaseFenceFD = %d, want a fence", req.ReleaseFenceFD)
	}
	if len(f.Submitted) != 1 || len(f.Submitted[0].Tasks) != 1 || f.Submitted[0].AcquireFence != 9 {
		t.Errorf("Submitted = %+v", f.Submitted)
	}

	f.RepeatJobHandle()
	again, _ := f.CreateJob(ctx, 0)
	if again != id {
		t.Errorf("CreateJob() after RepeatJobHandle = %d, want %d", again, id)
	}
}

func TestFake_Errors(t *testing.T) {
	ctx := context.Background()
	f := NewFake()
	boom := errors.New("boom")
	f.Errs["Blit"] = boom

	if err := f.Blit(ctx, &Request{}, false); !errors.Is(err, boom) {
		t.Errorf("Blit() error = %v, want boom", err)
	}

	f.Driver = nil
	if _, err := f.DriverVersion(ctx); !errors.Is(err, ErrNoMultiCore) {
		t.Errorf("DriverVersion() error = %v, want ErrNoMultiCore", err)
	}
}

func TestFake_ImportBuffers(t *testing.T) {
	f := NewFake()
	bufs := []ExternalBuffer{{Memory: 5, Type: MemoryDMABuf}, {Memory: 6, Type: MemoryDMABuf}}
	if err := f.ImportBuffers(context.Background(), bufs); err != nil {
		t.Fatalf("ImportBuffers() error = %v", err)
	}
	if bufs[0].Handle == 0 || bufs[0].Handle == bufs[1].Handle {
		t.Errorf("handles = %d, %d", bufs[0].Handle, bufs[1].Handle)
	}
}

func TestFake_CloseFence(t *testing.T) {
	f := NewFake()
	_ = f.CloseFence(-1)
	_ = f.CloseFence(0)
	_ = f.CloseFence(12)
	if len(f.ClosedFences) != 1 || f.ClosedFences[0] != 12 {
		t.Errorf("ClosedFences = %v, want [12]", f.ClosedFences)
	}
}
