package validation

import (
	"fmt"
	"os"
)

// DeviceNodeError describes why a device node cannot be used.
type DeviceNodeError struct {
	Path    string
	Message string
}

func (e *DeviceNodeError) Error() string {
	return e.Message
}

// CheckDeviceNode requires path to exist and be a character device.
func CheckDeviceNode(path string) error {
	if path == "" {
		return &DeviceNodeError{Path: path, Message: "device path cannot be empty"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DeviceNodeError{Path: path, Message: fmt.Sprintf("device node not found: %s", path)}
		}
		return &DeviceNodeError{Path: path, Message: fmt.Sprintf("cannot access %s: %v", path, err)}
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return &DeviceNodeError{Path: path, Message: fmt.Sprintf("%s is not a character device (mode %s)", path, info.Mode())}
	}
	return nil
}
