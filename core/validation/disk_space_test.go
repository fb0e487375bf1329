//go:build unix

package validation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDiskSpace(t *testing.T) {
	dir := t.TempDir()
	info, err := GetDiskSpace(dir)
	if err != nil {
		t.Fatalf("GetDiskSpace() error = %v", err)
	}
	if info.Total <= 0 || info.Free < 0 || info.Free > info.Total {
		t.Errorf("GetDiskSpace() = %+v", info)
	}
	if info.Used != info.Total-info.Free {
		t.Errorf("Used = %d, want %d", info.Used, info.Total-info.Free)
	}
}

func TestGetDiskSpace_MissingPath(t *testing.T) {
	dir := t.TempDir()
	info, err := GetDiskSpace(filepath.Join(dir, "a", "b", "audit.db"))
	if err != nil {
		t.Fatalf("GetDiskSpace() error = %v", err)
	}
	if info.Path != dir {
		t.Errorf("Path = %q, want nearest parent %q", info.Path, dir)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()
	if err := CheckDiskSpace(dir, 1); err != nil {
		t.Errorf("CheckDiskSpace(1 byte) = %v", err)
	}

	err := CheckDiskSpace(dir, 1<<62)
	var spaceErr *DiskSpaceError
	if !errors.As(err, &spaceErr) {
		t.Fatalf("CheckDiskSpace(huge) = %v, want *DiskSpaceError", err)
	}
	if !strings.Contains(err.Error(), "insufficient disk space") {
		t.Errorf("Error() = %q", err.Error())
	}
}
