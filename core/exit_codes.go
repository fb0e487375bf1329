package core

// Exit codes for rgactl.
// These follow Unix conventions where signal-based exits are 128 + signal number.
const (
	// ExitCodeSuccess indicates a clean run (exit code 0)
	ExitCodeSuccess = 0

	// ExitCodeError indicates an unclassified error (exit code 1)
	ExitCodeError = 1

	// ExitCodeUsage indicates bad command-line usage (exit code 2)
	ExitCodeUsage = 2

	// ExitCodeVersion indicates a driver/library version mismatch
	ExitCodeVersion = 3

	// ExitCodeNotSupported indicates the hardware cannot do what was asked
	ExitCodeNotSupported = 4

	// ExitCodeDevice indicates the device could not be opened or an ioctl failed
	ExitCodeDevice = 5

	// ExitCodeSIGINT indicates termination due to SIGINT (Ctrl+C)
	// Convention: 128 + 2 (SIGINT) = 130
	ExitCodeSIGINT = 130

	// ExitCodeSIGTERM indicates termination due to SIGTERM
	// Convention: 128 + 15 (SIGTERM) = 143
	ExitCodeSIGTERM = 143
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeUsage:
		return "usage"
	case ExitCodeVersion:
		return "version mismatch"
	case ExitCodeNotSupported:
		return "not supported"
	case ExitCodeDevice:
		return "device error"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	case ExitCodeSIGTERM:
		return "terminated (SIGTERM)"
	default:
		return "unknown"
	}
}

// ExitCodeFor picks the exit code for an error returned by a command.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	switch KindOf(err) {
	case KindVersion:
		return ExitCodeVersion
	case KindNotSupported, KindUnsupportedHardware, KindUnsupportedColorspacePair:
		return ExitCodeNotSupported
	case KindDevice:
		return ExitCodeDevice
	case KindConfig:
		return ExitCodeUsage
	default:
		return ExitCodeError
	}
}

// IsSignalExit returns true if the exit code indicates a signal-based termination.
func IsSignalExit(code int) bool {
	return code == ExitCodeSIGINT || code == ExitCodeSIGTERM
}
