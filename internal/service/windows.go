//go:build windows

// Package service provides Windows service integration for nodoff.
// It implements the Windows Service Control Manager (SCM) interface
// so the daemon can run as a Windows service.
package service

import (
	"context"
	"time"

	"golang.org/x/sys/windows/svc"

	"github.com/nodoff/nodoff/pkg/logger"
)

// acceptedCommands defines which SCM commands the service handles.
const acceptedCommands = svc.AcceptStop | svc.AcceptShutdown

// RunnerInterface is the slice of the daemon runner the service
// handler needs. It allows mocking in tests.
type RunnerInterface interface {
	// Start begins the daemon with the given context. Returns an error
	// if already running.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the daemon.
	Shutdown() error

	// IsRunning returns true if the daemon is currently running.
	IsRunning() bool
}

// WindowsHandler implements svc.Handler for Windows service control.
// It bridges the Windows SCM with the nodoff daemon runner.
type WindowsHandler struct {
	runner RunnerInterface
	log    logger.Logger
}

// NewWindowsHandler creates a Windows service handler. A nil logger
// discards service lifecycle messages.
func NewWindowsHandler(runner RunnerInterface, l logger.Logger) *WindowsHandler {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &WindowsHandler{
		runner: runner,
		log:    l,
	}
}

// Execute implements svc.Handler.Execute for Windows service control.
//
// The args parameter is ignored: the daemon reads its configuration
// from files and environment variables, not from service start
// arguments.
//
// The state machine follows the Windows service model:
//
//	StartPending -> Running -> StopPending -> Stopped
//
// exitCode is 0 on clean shutdown, non-zero on error.
func (h *WindowsHandler) Execute(args []string, requests <-chan svc.ChangeRequest, status chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	_ = args

	status <- svc.Status{State: svc.StartPending}
	h.log.Info("nodoff service starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startErrCh := make(chan error, 1)
	go func() {
		startErrCh <- h.runner.Start(ctx)
	}()

	// A short wait instead of a non-blocking select, so the runner
	// goroutine has had a chance to report an immediate failure.
	select {
	case err := <-startErrCh:
		if err != nil {
			h.log.Error("nodoff service failed to start: %s", err.Error())
			status <- svc.Status{State: svc.Stopped}
			return false, 1
		}
	case <-time.After(50 * time.Millisecond):
	}

	status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}
	h.log.Info("nodoff service started")

	return h.processControlRequests(requests, status, cancel)
}

// processControlRequests handles incoming service control requests
// until a stop or shutdown command arrives.
func (h *WindowsHandler) processControlRequests(requests <-chan svc.ChangeRequest, status chan<- svc.Status, cancel context.CancelFunc) (svcSpecificEC bool, exitCode uint32) {
	for req := range requests {
		switch req.Cmd {
		case svc.Interrogate:
			status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}

		case svc.Stop, svc.Shutdown:
			return h.handleStopRequest(status, cancel)
		}
	}

	// Request channel closed without a stop command.
	return false, 0
}

// handleStopRequest shuts the runner down and reports the stopped
// state. The service stops regardless of cleanup errors.
func (h *WindowsHandler) handleStopRequest(status chan<- svc.Status, cancel context.CancelFunc) (svcSpecificEC bool, exitCode uint32) {
	h.log.Info("nodoff service stopping")
	status <- svc.Status{State: svc.StopPending}

	cancel()

	if err := h.runner.Shutdown(); err != nil {
		h.log.Error("error during service shutdown: %s", err.Error())
		status <- svc.Status{State: svc.Stopped}
		return false, 1
	}

	h.log.Info("nodoff service stopped")
	status <- svc.Status{State: svc.Stopped}
	return false, 0
}

// AcceptedCommands returns the service commands this handler accepts.
func (h *WindowsHandler) AcceptedCommands() svc.Accepted {
	return acceptedCommands
}
