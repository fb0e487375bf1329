// Package validation runs the rgactl self-check: it confirms the device
// node, initialises a session and reports what the driver and hardware
// look like, printing coloured progress as it goes.
package validation

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"go_rga/core"
	"go_rga/device"
	"go_rga/session"
	"go_rga/version"
)

// Step is one check and its outcome.
type Step struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
	Latency time.Duration
}

type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepPassed
	StepFailed
	StepWarning
	StepSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepRunning:
		return "running"
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepWarning:
		return "warning"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SuiteResult collects every step of a run.
type SuiteResult struct {
	Steps       []Step
	TotalSteps  int
	PassedSteps int
	FailedSteps int
	Warnings    int
	Duration    time.Duration
	Success     bool

	// Info is what the session detected, when it got that far.
	Info *session.Info
}

// Suite checks that this machine can drive the blitter.
type Suite struct {
	output       io.Writer
	sess         *session.Session
	cfg          *core.Config
	devicePath   string
	auditPath    string
	library      version.Version
	showProgress bool
	failFast     bool

	checkNode func(string) error
}

// NewSuite returns a suite that initialises sess.
func NewSuite(sess *session.Session) *Suite {
	return &Suite{
		output:       os.Stdout,
		sess:         sess,
		devicePath:   device.DefaultPath,
		library:      version.LibraryVersion,
		showProgress: true,
		checkNode:    CheckDeviceNode,
	}
}

func (s *Suite) WithOutput(w io.Writer) *Suite {
	s.output = w
	return s
}

// WithConfig validates cfg as the first step and takes the device and
// audit paths from it.
func (s *Suite) WithConfig(cfg *core.Config) *Suite {
	s.cfg = cfg
	if cfg != nil {
		s.devicePath = cfg.DevicePath
		s.auditPath = cfg.DBPath
	}
	return s
}

func (s *Suite) WithDevicePath(path string) *Suite {
	s.devicePath = path
	return s
}

func (s *Suite) WithShowProgress(show bool) *Suite {
	s.showProgress = show
	return s
}

// WithFailFast stops at the first failed step.
func (s *Suite) WithFailFast(failFast bool) *Suite {
	s.failFast = failFast
	return s
}

type checkFunc func() (StepStatus, string, error)

// Run executes the checks in order. Steps that depend on a failed one are
// skipped.
func (s *Suite) Run(ctx context.Context) SuiteResult {
	start := time.Now()
	var steps []Step
	var info *session.Info

	if s.showProgress {
		s.printHeader("RGA Self-Check")
	}

	stop := func(st Step) bool {
		steps = append(steps, st)
		return s.failFast && st.Status == StepFailed
	}

	if s.cfg != nil {
		if stop(s.runStep("Configuration", func() (StepStatus, string, error) {
			if err := s.cfg.Validate(); err != nil {
				return StepFailed, "", err
			}
			return StepPassed, "environment settings are valid", nil
		})) {
			return s.finish(steps, start, info)
		}
	}

	node := s.runStep("Device Node", func() (StepStatus, string, error) {
		if err := s.checkNode(s.devicePath); err != nil {
			return StepFailed, "", err
		}
		return StepPassed, s.devicePath, nil
	})
	if stop(node) {
		return s.finish(steps, start, info)
	}

	var sessionStep Step
	if node.Status == StepPassed {
		sessionStep = s.runStep("Session Init", func() (StepStatus, string, error) {
			if err := s.sess.Init(ctx); err != nil {
				return StepFailed, "", err
			}
			got, ok := s.sess.Info()
			if !ok {
				return StepFailed, "", fmt.Errorf("session closed during init")
			}
			info = &got
			return StepPassed, fmt.Sprintf("%s driver %s", got.DriverType, driverString(got)), nil
		})
	} else {
		sessionStep = s.skip("Session Init", "device node unavailable")
	}
	if stop(sessionStep) {
		return s.finish(steps, start, info)
	}

	if info == nil {
		for _, name := range []string{"Driver Version", "Hardware Detection", "Capabilities"} {
			steps = append(steps, s.skip(name, "session not initialised"))
		}
	} else {
		steps = append(steps,
			s.runStep("Driver Version", func() (StepStatus, string, error) { return s.checkDriver(*info) }),
			s.runStep("Hardware Detection", func() (StepStatus, string, error) { return checkHardware(*info) }),
			s.runStep("Capabilities", func() (StepStatus, string, error) { return summarise(*info) }),
		)
	}

	if s.auditPath == "" {
		steps = append(steps, s.skip("Audit Store", "RGA_DB_PATH not set"))
	} else {
		steps = append(steps, s.runStep("Audit Store", func() (StepStatus, string, error) {
			space, err := GetDiskSpace(s.auditPath)
			if err != nil {
				return StepWarning, "", err
			}
			msg := fmt.Sprintf("%s free at %s", core.FormatBytes(space.Free), space.Path)
			if space.Free < MinAuditFreeBytes {
				return StepWarning, msg, &DiskSpaceError{Path: space.Path, Required: MinAuditFreeBytes, Available: space.Free}
			}
			return StepPassed, msg, nil
		}))
	}

	return s.finish(steps, start, info)
}

func driverString(info session.Info) string {
	if info.DriverString != "" {
		return info.DriverString
	}
	return info.DriverVersion.String()
}

func (s *Suite) checkDriver(info session.Info) (StepStatus, string, error) {
	if info.DriverType != session.DriverMulti {
		return StepSkipped, "legacy driver does not report a comparable version", nil
	}
	res, err := version.CheckDriver(s.library, info.DriverVersion)
	if err != nil {
		return StepFailed, "", err
	}
	if res.Range == version.Below {
		return StepWarning, fmt.Sprintf("driver %s is older than the recommended %s", info.DriverVersion, res.Least), nil
	}
	return StepPassed, fmt.Sprintf("driver %s works with librga %s", info.DriverVersion, s.library), nil
}

func checkHardware(info session.Info) (StepStatus, string, error) {
	if info.Row.IsZero() {
		return StepFailed, "", core.ErrUnsupportedHardware("none")
	}
	cores := make([]string, len(info.HWVersions))
	for i, hw := range info.HWVersions {
		cores[i] = hw.String()
	}
	return StepPassed, fmt.Sprintf("%s [%s]", info.Row.Version, strings.Join(cores, ", ")), nil
}

func summarise(info session.Info) (StepStatus, string, error) {
	r := info.Row
	return StepPassed, fmt.Sprintf("input %s, output %s, scale 1/%d~%d, %d features",
		r.InputMax, r.OutputMax, r.ScaleLimit, r.ScaleLimit, len(r.Features.Names())), nil
}

func (s *Suite) runStep(name string, fn checkFunc) Step {
	step := Step{Name: name, Status: StepRunning}
	if s.showProgress {
		fmt.Fprintf(s.output, "  ◌ %s...", name)
	}
	start := time.Now()
	step.Status, step.Message, step.Error = fn()
	step.Latency = time.Since(start)
	if s.showProgress {
		s.printStep(step)
	}
	return step
}

func (s *Suite) skip(name, why string) Step {
	step := Step{Name: name, Status: StepSkipped, Message: why}
	if s.showProgress {
		s.printStep(step)
	}
	return step
}

func (s *Suite) finish(steps []Step, start time.Time, info *session.Info) SuiteResult {
	result := SuiteResult{
		Steps:      steps,
		TotalSteps: len(steps),
		Duration:   time.Since(start),
		Success:    true,
		Info:       info,
	}
	for _, step := range steps {
		switch step.Status {
		case StepPassed:
			result.PassedSteps++
		case StepFailed:
			result.FailedSteps++
			result.Success = false
		case StepWarning:
			result.Warnings++
		}
	}
	if s.showProgress {
		s.printSummary(result)
	}
	return result
}

func (s *Suite) printHeader(title string) {
	fmt.Fprintln(s.output)
	color.New(color.FgCyan, color.Bold).Fprintf(s.output, "━━━ %s ━━━\n", title)
	fmt.Fprintln(s.output)
}

func (s *Suite) printStep(step Step) {
	var icon string
	var clr *color.Color
	switch step.Status {
	case StepPassed:
		icon, clr = "✓", color.New(color.FgGreen)
	case StepFailed:
		icon, clr = "✗", color.New(color.FgRed)
	case StepWarning:
		icon, clr = "!", color.New(color.FgYellow)
	case StepSkipped:
		icon, clr = "○", color.New(color.FgHiBlack)
	default:
		icon, clr = "?", color.New(color.FgWhite)
	}

	fmt.Fprintf(s.output, "\r")
	clr.Fprintf(s.output, "  %s %s", icon, step.Name)
	if step.Message != "" {
		color.New(color.FgHiBlack).Fprintf(s.output, " - %s", step.Message)
	}
	fmt.Fprintln(s.output)
	if step.Error != nil && (step.Status == StepFailed || step.Status == StepWarning) {
		clr.Fprintf(s.output, "    └─ %s\n", step.Error.Error())
	}
}

func (s *Suite) printSummary(r SuiteResult) {
	fmt.Fprintln(s.output)
	dim := color.New(color.FgHiBlack)
	if r.Success {
		ok := color.New(color.FgGreen, color.Bold)
		ok.Fprintf(s.output, "━━━ Self-Check Passed ")
		dim.Fprintf(s.output, "(%d/%d checks passed, %d warnings, %v)",
			r.PassedSteps, r.TotalSteps, r.Warnings, r.Duration.Round(time.Millisecond))
		ok.Fprintln(s.output, " ━━━")
	} else {
		bad := color.New(color.FgRed, color.Bold)
		bad.Fprintf(s.output, "━━━ Self-Check Failed ")
		dim.Fprintf(s.output, "(%d passed, %d failed)", r.PassedSteps, r.FailedSteps)
		bad.Fprintln(s.output, " ━━━")
	}
	fmt.Fprintln(s.output)
}

// Errors returns the errors of failed steps.
func (r SuiteResult) Errors() []error {
	var errs []error
	for _, step := range r.Steps {
		if step.Status == StepFailed && step.Error != nil {
			errs = append(errs, step.Error)
		}
	}
	return errs
}

// FirstError returns the first failed step's error, or nil.
func (r SuiteResult) FirstError() error {
	if errs := r.Errors(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (r SuiteResult) Summary() string {
	var sb strings.Builder
	if r.Success {
		sb.WriteString("Self-check passed: ")
	} else {
		sb.WriteString("Self-check failed: ")
	}
	fmt.Fprintf(&sb, "%d/%d checks passed", r.PassedSteps, r.TotalSteps)
	if r.FailedSteps > 0 {
		fmt.Fprintf(&sb, ", %d failed", r.FailedSteps)
	}
	if r.Warnings > 0 {
		fmt.Fprintf(&sb, ", %d warnings", r.Warnings)
	}
	fmt.Fprintf(&sb, " (took %v)", r.Duration.Round(time.Millisecond))
	return sb.String()
}
