package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"go_rga/core"
)

// DiskSpaceInfo is the space on the filesystem holding a path.
type DiskSpaceInfo struct {
	Path  string
	Total int64
	Free  int64
	Used  int64

	UsedPercent float64
}

// DiskSpaceError reports too little free space.
type DiskSpaceError struct {
	Path      string
	Required  int64
	Available int64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space at %s: need %s, have %s free",
		e.Path, core.FormatBytes(e.Required), core.FormatBytes(e.Available))
}

// MinAuditFreeBytes is the free space below which the audit store check
// warns.
const MinAuditFreeBytes = 64 * core.BytesPerMB

// GetDiskSpace reports space for the filesystem holding path. A path that
// does not exist yet is resolved through its nearest existing parent.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	dir := path
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				dir = filepath.Dir(dir)
			}
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot access path %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("no existing parent for %s", path)
		}
		dir = parent
	}

	total, free, err := getDiskSpace(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space for %s: %w", dir, err)
	}
	used := total - free
	var pct float64
	if total > 0 {
		pct = float64(used) / float64(total) * 100
	}
	return &DiskSpaceInfo{Path: dir, Total: total, Free: free, Used: used, UsedPercent: pct}, nil
}

// CheckDiskSpace returns a *DiskSpaceError when less than required bytes
// are free at path.
func CheckDiskSpace(path string, required int64) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return err
	}
	if info.Free < required {
		return &DiskSpaceError{Path: info.Path, Required: required, Available: info.Free}
	}
	return nil
}
