// Package session owns the connection to the RGA driver. A Session opens
// the device once, works out which driver generation answers and which
// hardware sits behind it, and caches that for every later request.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go_rga/capability"
	"go_rga/core"
	"go_rga/device"
	"go_rga/logging"
	"go_rga/version"
)

// DriverType is the driver generation the session talks to.
type DriverType int

const (
	DriverUnknown DriverType = iota
	DriverRGA1
	DriverRGA2
	DriverMulti
)

func (t DriverType) String() string {
	switch t {
	case DriverRGA1:
		return "RGA1"
	case DriverRGA2:
		return "RGA2"
	case DriverMulti:
		return "MULTI_RGA"
	}
	return "unknown"
}

// Features are driver behaviours the request compiler must honour.
type Features struct {
	// UserCloseFence is set when the driver expects user space to leave
	// the acquire fence to it.
	UserCloseFence bool
}

var userCloseFenceVersion = version.New(1, 3, 0)

// Info is the cached result of Init.
type Info struct {
	DriverType    DriverType
	DriverVersion version.Version
	DriverString  string
	HWVersions    []capability.HWTuple
	Row           capability.Row
	Features      Features

	// Defaults for requests that leave core or priority at zero.
	Core     int
	Priority int
}

// Session is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	open  device.Opener
	path  string
	dev   device.Device
	info  Info
	ready bool

	log      *logging.Logger
	table    *capability.Table
	library  version.Version
	core     int
	priority int
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.log = logging.OrNop(l) }
}

func WithPath(path string) Option {
	return func(s *Session) { s.path = path }
}

// WithSKUTable replaces the built-in hardware table, e.g. one extended from
// an SKU file.
func WithSKUTable(t *capability.Table) Option {
	return func(s *Session) { s.table = t }
}

// WithDefaults sets the core and priority used when a request asks for none.
func WithDefaults(coreID, priority int) Option {
	return func(s *Session) {
		s.core = coreID
		s.priority = priority
	}
}

// WithLibraryVersion overrides the library version checked against the
// driver binding table.
func WithLibraryVersion(v version.Version) Option {
	return func(s *Session) { s.library = v }
}

// New returns an unopened session. open is called by the first Init.
func New(open device.Opener, opts ...Option) *Session {
	s := &Session{
		open:    open,
		path:    device.DefaultPath,
		log:     logging.NewNop(),
		library: version.LibraryVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		s.table = capability.DefaultTable()
	}
	return s
}

// Init opens the device and detects the hardware. It is idempotent: once
// it has succeeded, later calls return immediately until Close.
func (s *Session) Init(ctx context.Context) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	dev, err := s.open(s.path)
	if err != nil {
		return core.ErrDevice("open "+s.path, err)
	}
	info, err := s.detect(ctx, dev)
	if err != nil {
		_ = dev.Close()
		return err
	}

	s.dev = dev
	s.info = info
	s.ready = true
	s.log.Info("rga session ready",
		logging.DriverType(info.DriverType.String()),
		zap.String("driver_version", info.DriverVersion.String()),
		logging.HWVersion(info.Row.Version.String()))
	return nil
}

func (s *Session) detect(ctx context.Context, dev device.Device) (Info, error) {
	info := Info{Core: s.core, Priority: s.priority}

	if v, err := dev.DriverVersion(ctx); err == nil {
		info.DriverType = DriverMulti
		info.DriverVersion = version.New(v.Major, v.Minor, v.Revision)
		info.DriverString = v.String()

		hw, err := dev.HWVersions(ctx)
		if err != nil {
			return Info{}, core.ErrDevice("get hardware versions", err)
		}
		n := min(int(hw.Size), len(hw.Version))
		for _, hv := range hw.Version[:n] {
			info.HWVersions = append(info.HWVersions, capability.HWTuple{
				Major:    hv.Major,
				Minor:    hv.Minor,
				Revision: hv.Revision,
				Str:      hv.String(),
			})
		}
	} else {
		s.log.Debug("multi-core version query failed, trying legacy driver", zap.Error(err))
		str, err := dev.LegacyVersion(ctx)
		if err != nil {
			return Info{}, core.ErrDevice("get legacy driver version", err)
		}
		v, err := version.ParseHex(str)
		if err != nil {
			return Info{}, err
		}
		info.DriverType = DriverRGA2
		if v.Major < 2 {
			info.DriverType = DriverRGA1
		}
		info.DriverString = str
		info.HWVersions = []capability.HWTuple{{Major: v.Major, Minor: v.Minor, Revision: v.Revision, Str: str}}
	}

	row, err := s.table.Detect(info.HWVersions)
	if err != nil {
		return Info{}, err
	}
	info.Row = row

	if info.DriverType == DriverMulti {
		res, err := version.CheckDriver(s.library, info.DriverVersion)
		if err != nil {
			return Info{}, err
		}
		if res.Range == version.Below {
			s.log.Warn("driver is older than recommended, some features may be unavailable",
				zap.String("driver", info.DriverVersion.String()),
				zap.String("recommended", res.Least.String()))
		}
		info.Features.UserCloseFence = info.DriverVersion.AtLeast(userCloseFenceVersion)
	}
	return info, nil
}

// Info returns the cached detection result. ok is false before Init.
func (s *Session) Info() (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return Info{}, false
	}
	info := s.info
	info.HWVersions = append([]capability.HWTuple(nil), s.info.HWVersions...)
	return info, true
}

// Device returns the open device, initialising the session if needed.
func (s *Session) Device(ctx context.Context) (device.Device, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dev == nil {
		return nil, core.ErrDevice("session", device.ErrClosed)
	}
	return s.dev, nil
}

// Ready reports whether Init has succeeded and Close has not run since.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Close releases the device. A later Init opens it again.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	s.ready = false
	s.info = Info{}
	if err != nil {
		return fmt.Errorf("close device: %w", err)
	}
	return nil
}
