// Command rgactl inspects and smoke-tests the RGA 2D accelerator.
//
//	rgactl info                 print the detected driver and capabilities
//	rgactl check                run the device self-check
//	rgactl fill -fd N -w W -h H fill a dma-buf with a colour
//	rgactl history [-n N]       show recent submissions from the audit store
//	rgactl version              print build information
//
// Settings come from the environment and an optional .env file; see
// core.LoadConfig.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go_rga/capability"
	"go_rga/core"
	"go_rga/device"
	"go_rga/engine"
	"go_rga/logging"
	"go_rga/session"
	"go_rga/shutdown"
)

// openDevice is replaced by tests.
var openDevice device.Opener = device.Open

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name    string
	summary string
	run     func(a *app, args []string) error
	device  bool
}

var commands = []command{
	{"info", "print the detected driver and hardware capabilities", runInfo, true},
	{"check", "run the device self-check", runCheck, true},
	{"fill", "fill a dma-buf with a solid colour", runFill, true},
	{"history", "show recent submissions from the audit store", runHistory, false},
	{"version", "print build information", runVersion, false},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: rgactl <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

// app is what every command gets: config, logger, a signal-aware context
// and, for device commands, a session and an engine.
type app struct {
	ctx    context.Context
	cfg    *core.Config
	log    *logging.Logger
	sess   *session.Session
	eng    *engine.Engine
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return core.ExitCodeUsage
	}
	switch args[0] {
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return core.ExitCodeSuccess
	}
	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "rgactl: unknown command %q\n\n", args[0])
		usage(stderr)
		return core.ExitCodeUsage
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load .env: %v\n", err)
	}
	cfg, err := core.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "rgactl: %v\n", err)
		return core.ExitCodeFor(err)
	}
	log := newLogger(cfg, stderr)
	defer log.Sync()

	shut := shutdown.NewManager(log, shutdown.WithTimeout(cfg.ShutdownTimeout))
	ctx, stop := shut.NotifyContext(context.Background(), func() {
		fmt.Fprintln(stderr, "rgactl: forced exit")
		os.Exit(core.ExitCodeSIGINT)
	})
	defer stop()

	a := &app{ctx: ctx, cfg: cfg, log: log, stdout: stdout, stderr: stderr}
	if cmd.device {
		sess, err := newSession(cfg, log)
		if err != nil {
			fmt.Fprintf(stderr, "rgactl: %v\n", err)
			return core.ExitCodeFor(err)
		}
		a.sess = sess
		a.eng = engine.New(sess,
			engine.WithLogger(log),
			engine.FromConfig(cfg),
			engine.WithAuditPath(cfg.DBPath))
		shut.Register("engine", 10, a.eng.Close)
	}

	err = cmd.run(a, args[1:])
	if cerr := shut.Shutdown(context.Background()); cerr != nil {
		log.Warn("cleanup failed", zap.Error(cerr))
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			return core.ExitCodeUsage
		}
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, "rgactl: interrupted")
			return core.ExitCodeSIGINT
		}
		fmt.Fprintf(stderr, "rgactl %s: %v\n", cmd.name, err)
		return core.ExitCodeFor(err)
	}
	return core.ExitCodeSuccess
}

// newLogger logs to stderr and the rotated log file. Commands print their
// results on stdout, so the console side stays quiet unless asked.
func newLogger(cfg *core.Config, stderr io.Writer) *logging.Logger {
	level := logging.ParseLogLevelString(cfg.LogLevel, logging.WarnLevel)
	if cfg.DevMode || cfg.DebugLog {
		level = logging.DebugLevel
	}
	c := logging.NewMultiCoreWithWriters(level,
		zapcore.Lock(zapcore.AddSync(stderr)),
		logging.NewFileWriter(cfg.LogFile),
		cfg.DevMode)
	return logging.NewFromCore(c).Named("rgactl")
}

func newSession(cfg *core.Config, log *logging.Logger) (*session.Session, error) {
	opts := []session.Option{
		session.WithLogger(log),
		session.WithPath(cfg.DevicePath),
		session.WithDefaults(cfg.DefaultCore, cfg.DefaultPriority),
	}
	if cfg.SKUFile != "" {
		skus, err := capability.LoadSKUFile(cfg.SKUFile)
		if err != nil {
			return nil, err
		}
		table := capability.DefaultTable()
		table.Extend(skus)
		log.Debug("loaded extra SKUs", zap.String("file", cfg.SKUFile), zap.Int("count", len(skus)))
		opts = append(opts, session.WithSKUTable(table))
	}
	return session.New(openDevice, opts...), nil
}
