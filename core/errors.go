package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to react without
// parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindVersion
	KindIllegalParameter
	KindInvalidParameter
	KindNotSupported
	KindUnsupportedColorspacePair
	KindDevice
	KindJobNotFound
	KindJobFull
	KindUnsupportedHardware
	KindBufferResolution
	KindOutOfMemory
	KindConfig
)

var kindNames = map[Kind]string{
	KindUnknown:                   "unknown",
	KindVersion:                   "version_error",
	KindIllegalParameter:          "illegal_parameter",
	KindInvalidParameter:          "invalid_parameter",
	KindNotSupported:              "not_supported",
	KindUnsupportedColorspacePair: "unsupported_colorspace_pair",
	KindDevice:                    "device_error",
	KindJobNotFound:               "job_not_found",
	KindJobFull:                   "job_full",
	KindUnsupportedHardware:       "unsupported_hardware",
	KindBufferResolution:          "buffer_resolution",
	KindOutOfMemory:               "out_of_memory",
	KindConfig:                    "config",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Status codes reported to callers that speak the numeric im2d protocol.
const (
	StatusNoError      = 2
	StatusSuccess      = 1
	StatusFailed       = 0
	StatusNotSupported = -1
	StatusOutOfMemory  = -2
	StatusInvalidParam = -3
	StatusIllegalParam = -4
	StatusErrorVersion = -5
	StatusNoSession    = -6
)

// Error codes for programmatic handling.
const (
	ErrCodeVersion          = "VERSION_MISMATCH"
	ErrCodeIllegalParam     = "ILLEGAL_PARAM"
	ErrCodeInvalidParam     = "INVALID_PARAM"
	ErrCodeNotSupported     = "NOT_SUPPORTED"
	ErrCodeColorspacePair   = "UNSUPPORTED_COLORSPACE_PAIR"
	ErrCodeDevice           = "DEVICE_ERROR"
	ErrCodeJobNotFound      = "JOB_NOT_FOUND"
	ErrCodeJobFull          = "JOB_FULL"
	ErrCodeUnsupportedHW    = "UNSUPPORTED_HARDWARE"
	ErrCodeBufferResolution = "BUFFER_RESOLUTION"
	ErrCodeOutOfMemory      = "OUT_OF_MEMORY"
	ErrCodeInvalidConfig    = "INVALID_CONFIG"
	ErrCodeMissingConfig    = "MISSING_CONFIG"
)

// Error is the single error type returned by every package in this module.
// Role names the channel ("src", "dst", "pat") when the failure is tied to one.
type Error struct {
	Kind    Kind
	Code    string // Error code for programmatic handling
	Role    string
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
	Err     error  // Underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Role != "" {
		msg = e.Role + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", msg, e.Action)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to the numeric status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindVersion:
		return StatusErrorVersion
	case KindIllegalParameter, KindJobNotFound, KindJobFull:
		return StatusIllegalParam
	case KindInvalidParameter:
		return StatusInvalidParam
	case KindNotSupported, KindUnsupportedColorspacePair, KindUnsupportedHardware:
		return StatusNotSupported
	case KindOutOfMemory:
		return StatusOutOfMemory
	default:
		return StatusFailed
	}
}

func newError(kind Kind, code, role, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Role:    role,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrIllegal reports a structurally invalid buffer, rect or parameter.
func ErrIllegal(role, format string, args ...any) *Error {
	return newError(KindIllegalParameter, ErrCodeIllegalParam, role, format, args...)
}

// ErrInvalid reports internally inconsistent but well-formed input.
func ErrInvalid(role, format string, args ...any) *Error {
	return newError(KindInvalidParameter, ErrCodeInvalidParam, role, format, args...)
}

// ErrNotSupported reports a request outside the hardware envelope.
func ErrNotSupported(role, format string, args ...any) *Error {
	return newError(KindNotSupported, ErrCodeNotSupported, role, format, args...)
}

// ErrColorspacePair reports a full-CSC source/destination pair with no conversion code.
func ErrColorspacePair(src, dst string) *Error {
	e := newError(KindUnsupportedColorspacePair, ErrCodeColorspacePair, "dst",
		"unsupported full CSC mode, src %s, dst %s", src, dst)
	e.Action = "Pick a colour space pair supported by the full CSC unit"
	return e
}

// ErrVersion reports an incompatible driver or header version.
func ErrVersion(format string, args ...any) *Error {
	e := newError(KindVersion, ErrCodeVersion, "", format, args...)
	e.Action = "Update librga or the RGA kernel driver to a compatible version"
	return e
}

// ErrDevice wraps a failed device call.
func ErrDevice(op string, err error) *Error {
	return &Error{
		Kind:    KindDevice,
		Code:    ErrCodeDevice,
		Message: fmt.Sprintf("%s failed", op),
		Action:  "Run 'dmesg' to view the driver error log",
		Err:     err,
	}
}

// ErrJobNotFound reports an unknown or already consumed job handle.
func ErrJobNotFound(handle uint32) *Error {
	return newError(KindJobNotFound, ErrCodeJobNotFound, "", "job handle[%d] is illegal", handle)
}

// ErrJobFull reports a job that already holds its maximum task count.
func ErrJobFull(handle uint32, count int) *Error {
	return newError(KindJobFull, ErrCodeJobFull, "", "job[%d] add task failed, too many tasks, count = %d", handle, count)
}

// ErrUnsupportedHardware reports a hardware version that matches no known SKU.
func ErrUnsupportedHardware(version string) *Error {
	e := newError(KindUnsupportedHardware, ErrCodeUnsupportedHW, "", "unsupported hardware version %s", version)
	e.Action = "Add the SKU to RGA_SKU_FILE if the revision is known to be compatible"
	return e
}

// ErrBufferResolution wraps a failed platform buffer metadata query.
func ErrBufferResolution(role string, err error) *Error {
	return &Error{
		Kind:    KindBufferResolution,
		Code:    ErrCodeBufferResolution,
		Role:    role,
		Message: "cannot resolve buffer metadata",
		Err:     err,
	}
}

// ErrInvalidConfig returns an error for a configuration value that fails validation.
func ErrInvalidConfig(varName, reason string) *Error {
	return &Error{
		Kind:    KindConfig,
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("Invalid configuration %s: %s", varName, reason),
		Action:  fmt.Sprintf("Fix %s in your .env file", varName),
	}
}

// ErrMissingConfig returns an error for missing required configuration.
func ErrMissingConfig(varName string) *Error {
	return &Error{
		Kind:    KindConfig,
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// AsError unwraps err to an *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// GetErrorCode extracts the error code from an error if it's an *Error.
func GetErrorCode(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// StatusOf maps any error to a numeric status. nil is StatusSuccess.
func StatusOf(err error) int {
	if err == nil {
		return StatusSuccess
	}
	if e, ok := AsError(err); ok {
		return e.Status()
	}
	return StatusFailed
}
