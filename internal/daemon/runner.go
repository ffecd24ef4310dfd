// Package daemon provides the lifecycle runner for the nodoff daemon.
// It manages start, stop and graceful shutdown of the serving loop.
package daemon

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors for the daemon runner.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// Service name constants for Windows service registration.
const (
	// DefaultServiceName is the default Windows service name.
	DefaultServiceName = "nodoffd"

	// DefaultDisplayName is the default Windows service display name.
	DefaultDisplayName = "Nodoff Power Scheduler"

	// DefaultDescription is the default Windows service description.
	DefaultDescription = "Schedules a single hibernate, sleep or shutdown transition"
)

// Config holds the configuration for the daemon runner.
type Config struct {
	// ServiceName is the Windows service name.
	ServiceName string

	// DisplayName is the Windows service display name.
	DisplayName string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// A zero value means no timeout.
	ShutdownTimeout time.Duration
}

// Dependencies holds the external dependencies for the daemon runner.
// This enables dependency injection for testing.
type Dependencies struct {
	// Serve runs the daemon's serving loop and must return when the
	// context is cancelled. If nil, the runner just waits for
	// cancellation.
	Serve func(ctx context.Context) error

	// ShutdownFunc is called during shutdown to clean up resources.
	// If nil, no cleanup function is called.
	ShutdownFunc func() error
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config  *Config
	deps    *Dependencies
	running bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

// New creates a new daemon runner with the given configuration and
// dependencies. Nil config or deps select defaults.
func New(config *Config, deps *Dependencies) *Runner {
	return &Runner{
		config: applyConfigDefaults(config),
		deps:   applyDependencyDefaults(deps),
	}
}

func applyConfigDefaults(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.DisplayName == "" {
		config.DisplayName = DefaultDisplayName
	}
	return config
}

func applyDependencyDefaults(deps *Dependencies) *Dependencies {
	if deps == nil {
		deps = &Dependencies{}
	}
	return deps
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// Start runs the daemon and blocks until the context is cancelled or
// the serving loop exits on its own. Returns ErrAlreadyRunning if the
// daemon is already started.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.running = true
	r.mu.Unlock()

	serveErr := make(chan error, 1)
	if r.deps.Serve != nil {
		go func() { serveErr <- r.deps.Serve(ctx) }()
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-serveErr:
	}

	r.cleanupOnStop()
	return err
}

// cleanupOnStop marks the runner stopped and releases the derived
// context when the serving loop exited on its own.
func (r *Runner) cleanupOnStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
}

// Shutdown gracefully stops the daemon.
// Returns ErrNotRunning if the daemon is not running.
// Returns ErrShutdownTimeout if the shutdown function exceeds the configured timeout.
func (r *Runner) Shutdown() error {
	if err := r.validateRunning(); err != nil {
		return err
	}

	if err := r.executeShutdownFunc(); err != nil {
		return err
	}

	r.performShutdown()

	return nil
}

func (r *Runner) validateRunning() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return ErrNotRunning
	}
	return nil
}

// executeShutdownFunc runs the shutdown function with a timeout if one
// is configured.
func (r *Runner) executeShutdownFunc() error {
	if r.deps.ShutdownFunc == nil {
		return nil
	}

	if r.config.ShutdownTimeout > 0 {
		return r.executeWithTimeout(r.deps.ShutdownFunc, r.config.ShutdownTimeout)
	}

	return r.deps.ShutdownFunc()
}

// executeWithTimeout runs fn, returning ErrShutdownTimeout if it does
// not complete in time.
func (r *Runner) executeWithTimeout(fn func() error, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		r.forceStop()
		return ErrShutdownTimeout
	}
}

// forceStop stops the daemon without waiting for cleanup.
func (r *Runner) forceStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Runner) performShutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
}

// IsRunning returns true if the daemon is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
