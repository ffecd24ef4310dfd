//go:build windows

package cmd

import (
	"log"

	"github.com/urfave/cli"
	daemonpkg "github.com/nodoff/nodoff/internal/daemon"
	"github.com/nodoff/nodoff/internal/service"
	"github.com/nodoff/nodoff/pkg/logger"
	"golang.org/x/sys/windows/svc"
)

// getDaemonAction returns the platform-specific daemon action.
// On Windows, this detects service mode and uses Event Log.
func getDaemonAction() cli.ActionFunc {
	return daemonWindows
}

// daemonWindows detects if running under the service control manager and
// picks the matching mode. Console invocations behave like on Unix.
func daemonWindows(ctx *cli.Context) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return err
	}
	if !isService {
		return daemon(ctx)
	}
	return RunWindowsService(currentBuildArgs)
}

// RunWindowsService runs the daemon under the Windows service control
// manager with Event Log integration.
func RunWindowsService(bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	stdLogger := logger.NewStandardLogger(log.Default())

	eventLogger, err := logger.NewEventLogger(daemonpkg.DefaultServiceName)
	if err != nil {
		// Event Log unavailable (not registered, permissions issue),
		// keep console-only logging.
		return runServiceWithLogger(stdLogger)
	}
	defer eventLogger.Close()

	multiLogger := logger.NewMultiLogger(stdLogger, eventLogger)
	return runServiceWithLogger(multiLogger)
}

// runServiceWithLogger runs the Windows service handler with the given logger.
func runServiceWithLogger(svcLog logger.Logger) error {
	comps, err := initDaemonComponents(svcLog)
	if err != nil {
		svcLog.Error("daemon init failed: %v", err)
		return err
	}
	defer comps.Close()

	handler := service.NewWindowsHandler(comps.Runner, svcLog)

	// svc.Run blocks until service stops
	return svc.Run(daemonpkg.DefaultServiceName, handler)
}
