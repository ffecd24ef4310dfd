package power

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Runner executes one external command. It exists so tests can verify
// dispatch behaviour without touching the machine's power state.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}
	return nil
}

// commandDispatcher shells out to a fixed argv per action.
type commandDispatcher struct {
	log      logger.Logger
	run      Runner
	commands map[common.Action][]string
}

func newCommandDispatcher(l logger.Logger, commands map[common.Action][]string, run Runner) *commandDispatcher {
	if run == nil {
		run = execRunner
	}
	return &commandDispatcher{log: l, run: run, commands: commands}
}

func (d *commandDispatcher) Dispatch(ctx context.Context, action common.Action) error {
	argv, ok := d.commands[action]
	if !ok || len(argv) == 0 {
		return &DispatchError{Action: string(action), Err: d.Supported(action)}
	}
	d.log.Info("dispatching %s: %s", action, strings.Join(argv, " "))
	if err := d.run(ctx, argv[0], argv[1:]...); err != nil {
		return &DispatchError{Action: string(action), Err: err}
	}
	return nil
}

func (d *commandDispatcher) Supported(action common.Action) error {
	if argv, ok := d.commands[action]; ok && len(argv) > 0 {
		return nil
	}
	return fmt.Errorf("no dispatch command for %s on %s", action, runtime.GOOS)
}

func (d *commandDispatcher) Close() error {
	return nil
}
