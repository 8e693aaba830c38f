// Package telemetry provides Pyroscope continuous profiling integration.
package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled           bool   // Enable continuous profiling
	ServerAddress     string // Pyroscope server address (e.g., "http://pyroscope:4040")
	ApplicationName   string // Application name for profiles
	BasicAuthUser     string // Optional: Basic auth username (for Grafana Cloud)
	BasicAuthPassword string // Optional: Basic auth password (for Grafana Cloud)
}

// defaultProfileTypes is the fixed set of profiles collected when profiling
// is enabled. CPU and memory cover the anticipation workflow hot paths;
// goroutine profiles catch leaks in the HTTP and event dispatch layers.
// Mutex and block profiling are left off so enabling the profiler never
// changes runtime sampling rates.
var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler creates and starts a new Pyroscope profiler.
// If profiling is disabled, it returns a no-op profiler.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled, using no-op profiler")
		return p, nil
	}

	// Validate required fields
	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, fmt.Errorf("profiler application name is required when profiling is enabled")
	}

	// Build tags (labels) for profiles
	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}
	if podName := os.Getenv("POD_NAME"); podName != "" {
		tags["pod"] = podName
	}

	pyroscopeCfg := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          newPyroscopeLogger(logger),
		Tags:            tags,
		ProfileTypes:    defaultProfileTypes,
	}

	// Add basic auth if configured (for Grafana Cloud)
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		pyroscopeCfg.BasicAuthUser = cfg.BasicAuthUser
		pyroscopeCfg.BasicAuthPassword = cfg.BasicAuthPassword
	}

	profiler, err := pyroscope.Start(pyroscopeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}

	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Int("profile_types", len(defaultProfileTypes)),
	)

	return p, nil
}

// Stop gracefully stops the profiler, flushing any pending profiles.
// It is safe to call Stop multiple times.
//
// Note: Unlike TracerProvider.Shutdown() and MeterProvider.Shutdown() which accept
// a context with timeout, the Pyroscope SDK's Stop() method does not support
// context-based cancellation. This means Stop() could potentially block if the
// Pyroscope server is unresponsive. In practice, the SDK implements internal
// timeouts to prevent indefinite blocking.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.logger.Debug("Profiler already stopped")
		return nil
	}

	p.stopped = true

	if p.profiler == nil {
		p.logger.Debug("No profiler to stop (profiling disabled)")
		return nil
	}

	p.logger.Info("Stopping Pyroscope profiler...")

	if err := p.profiler.Stop(); err != nil {
		p.logger.Error("Error stopping profiler", zap.Error(err))
		return fmt.Errorf("failed to stop profiler: %w", err)
	}

	p.logger.Info("Pyroscope profiler stopped successfully")
	return nil
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.config.Enabled && p.profiler != nil
}

// GetConfig returns a copy of the profiler configuration.
func (p *Profiler) GetConfig() ProfilerConfig {
	return p.config
}

// pyroscopeLogger adapts zap.Logger to pyroscope.Logger interface.
type pyroscopeLogger struct {
	logger *zap.Logger
}

// newPyroscopeLogger creates a new pyroscope logger adapter.
func newPyroscopeLogger(logger *zap.Logger) pyroscope.Logger {
	return &pyroscopeLogger{logger: logger.Named("pyroscope")}
}

// Infof logs an info message.
func (l *pyroscopeLogger) Infof(format string, args ...any) {
	l.logger.Sugar().Infof(format, args...)
}

// Debugf logs a debug message.
func (l *pyroscopeLogger) Debugf(format string, args ...any) {
	l.logger.Sugar().Debugf(format, args...)
}

// Errorf logs an error message.
func (l *pyroscopeLogger) Errorf(format string, args ...any) {
	l.logger.Sugar().Errorf(format, args...)
}
