//go:build !linux

package device

import (
	"fmt"
	"runtime"
)

// Open is only available on Linux, where the driver lives.
func Open(path string) (Device, error) {
	return nil, fmt.Errorf("open %s: RGA devices are not available on %s", path, runtime.GOOS)
}
