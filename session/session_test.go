package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go_rga/capability"
	"go_rga/core"
	"go_rga/device"
	"go_rga/version"
)

func countingOpener(f *device.Fake, n *int32) device.Opener {
	open := f.Opener()
	return func(path string) (device.Device, error) {
		atomic.AddInt32(n, 1)
		return open(path)
	}
}

func TestInit_MultiCore(t *testing.T) {
	f := device.NewFake()
	s := New(f.Opener(), WithDefaults(2, 4))

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	info, ok := s.Info()
	if !ok {
		t.Fatal("Info() not ready after Init")
	}
	if info.DriverType != DriverMulti {
		t.Errorf("DriverType = %v, want MULTI_RGA", info.DriverType)
	}
	if info.DriverVersion != version.New(1, 3, 2) {
		t.Errorf("DriverVersion = %v, want 1.3.2", info.DriverVersion)
	}
	if len(info.HWVersions) != 3 {
		t.Errorf("len(HWVersions) = %d, want 3", len(info.HWVersions))
	}
	if !info.Row.IsRGA3() || info.Row.Version&capability.RGA2Enhance == 0 {
		t.Errorf("Row.Version = %v, want RGA3 and RGA2 Enhance merged", info.Row.Version)
	}
	if !info.Features.UserCloseFence {
		t.Error("UserCloseFence should be set for driver 1.3.2")
	}
	if info.Core != 2 || info.Priority != 4 {
		t.Errorf("defaults = %d/%d, want 2/4", info.Core, info.Priority)
	}
}

func TestInit_Legacy(t *testing.T) {
	tests := []struct {
		legacy string
		want   DriverType
		family capability.HWVersion
	}{
		{"3.02", DriverRGA2, capability.RGA2Enhance},
		{"1.3", DriverRGA1, capability.RGA1},
	}
	for _, tt := range tests {
		t.Run(tt.legacy, func(t *testing.T) {
			f := device.NewFake()
			f.Driver = nil
			f.Legacy = tt.legacy
			s := New(f.Opener())
			if err := s.Init(context.Background()); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			info, _ := s.Info()
			if info.DriverType != tt.want {
				t.Errorf("DriverType = %v, want %v", info.DriverType, tt.want)
			}
			if info.Row.Version != tt.family {
				t.Errorf("Row.Version = %v, want %v", info.Row.Version, tt.family)
			}
			if info.Features.UserCloseFence {
				t.Error("legacy drivers never set UserCloseFence")
			}
		})
	}
}

func TestInit_Idempotent(t *testing.T) {
	f := device.NewFake()
	var opens int32
	s := New(countingOpener(f, &opens))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Init(context.Background()); err != nil {
				t.Errorf("Init() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if opens != 1 {
		t.Errorf("device opened %d times, want 1", opens)
	}
}

func TestInit_UnsupportedHardware(t *testing.T) {
	f := device.NewFake()
	f.Cores = []device.VersionInfo{device.FakeVersion(9, 9, 9, "9.9.9")}
	s := New(f.Opener())

	err := s.Init(context.Background())
	if !core.IsKind(err, core.KindUnsupportedHardware) {
		t.Fatalf("Init() error = %v, want unsupported hardware", err)
	}
	if s.Ready() {
		t.Error("session should not be ready after a failed Init")
	}
	if !f.Closed {
		t.Error("device should be closed after a failed Init")
	}
}

func TestInit_DriverVersion(t *testing.T) {
	t.Run("too new for library", func(t *testing.T) {
		f := device.NewFake()
		v := device.FakeVersion(1, 3, 0, "1.3.0")
		f.Driver = &v
		s := New(f.Opener(), WithLibraryVersion(version.New(1, 7, 2)))
		if err := s.Init(context.Background()); !core.IsKind(err, core.KindVersion) {
			t.Errorf("Init() error = %v, want version error", err)
		}
	})

	t.Run("older than recommended", func(t *testing.T) {
		f := device.NewFake()
		v := device.FakeVersion(1, 1, 0, "1.1.0")
		f.Driver = &v
		s := New(f.Opener())
		if err := s.Init(context.Background()); err != nil {
			t.Fatalf("Init() error = %v, want advisory only", err)
		}
		info, _ := s.Info()
		if info.Features.UserCloseFence {
			t.Error("UserCloseFence should be clear below 1.3.0")
		}
	})
}

func TestInit_OpenError(t *testing.T) {
	f := device.NewFake()
	f.Errs["Open"] = errors.New("no such device")
	s := New(f.Opener())
	if err := s.Init(context.Background()); !core.IsKind(err, core.KindDevice) {
		t.Errorf("Init() error = %v, want device error", err)
	}
}

func TestClose_Reinit(t *testing.T) {
	f := device.NewFake()
	var opens int32
	s := New(countingOpener(f, &opens))
	ctx := context.Background()

	if _, err := s.Device(ctx); err != nil {
		t.Fatalf("Device() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok := s.Info(); ok {
		t.Error("Info() should not be ready after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init() after Close error = %v", err)
	}
	if opens != 2 {
		t.Errorf("device opened %d times, want 2", opens)
	}
}

func TestDriverType_String(t *testing.T) {
	if DriverMulti.String() != "MULTI_RGA" || DriverUnknown.String() != "unknown" {
		t.Error("DriverType.String() mismatch")
	}
}
