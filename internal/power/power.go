// Package power performs the machine's power-state transitions. On
// Linux it talks to logind over the system bus and falls back to
// systemctl when no bus is available; on Windows and macOS it shells
// out to the native tooling. Configuration may override the command
// used for any action.
package power

import (
	"context"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Dispatcher executes power-state transitions and reports which
// actions the host supports.
type Dispatcher interface {
	// Dispatch performs the transition. It returns once the request has
	// been handed to the operating system or has failed.
	Dispatch(ctx context.Context, action common.Action) error

	// Supported returns nil when the host can perform the action, or an
	// error describing why it cannot.
	Supported(action common.Action) error

	// Close releases any resources held by the dispatcher.
	Close() error
}

// New selects the dispatcher for the current platform. Commands in
// overrides replace the platform mechanism for their action; actions
// without an override keep the platform default.
func New(l logger.Logger, overrides map[common.Action][]string) Dispatcher {
	base := newPlatformDispatcher(l)
	if len(overrides) == 0 {
		return base
	}
	l.Info("power: %d dispatch command override(s) configured", len(overrides))
	return &overrideDispatcher{cmd: newCommandDispatcher(l, overrides, nil), base: base}
}

// overrideDispatcher routes actions with a configured command to the
// command dispatcher and everything else to the platform one.
type overrideDispatcher struct {
	cmd  *commandDispatcher
	base Dispatcher
}

func (d *overrideDispatcher) Dispatch(ctx context.Context, action common.Action) error {
	if _, ok := d.cmd.commands[action]; ok {
		return d.cmd.Dispatch(ctx, action)
	}
	return d.base.Dispatch(ctx, action)
}

func (d *overrideDispatcher) Supported(action common.Action) error {
	if _, ok := d.cmd.commands[action]; ok {
		return nil
	}
	return d.base.Supported(action)
}

func (d *overrideDispatcher) Close() error {
	return d.base.Close()
}
