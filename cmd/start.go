package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"
	cmdCommon "github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/config"
	"github.com/nodoff/nodoff/pkg/logger"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func start(ctx *cli.Context) (err error) {
	arg := strings.TrimSpace(ctx.Args().First())
	if arg == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if err := validateStartExclusion(startIn, startAt); err != nil {
		return cmdCommon.PrintErrWithCmdHelp(ctx, err)
	}
	cfg, err := config.Load(logger.NewNopLogger())
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "load_config", err)
		return nil
	}
	action := cfg.Defaults.Action
	if arg != "" {
		action, err = common.ParseAction(arg)
		if err != nil {
			return cmdCommon.PrintErrWithCmdHelp(ctx, fmt.Errorf("error: %s", err))
		}
	}
	mode, opts, err := resolveTarget(ctx, cfg)
	if err != nil {
		return cmdCommon.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "new_client", err)
		return nil
	}
	defer client.Close()
	client.CheckVersionMismatch(currentBuildArgs.Version)
	d, err := client.Schedule(string(action), string(mode), opts)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "schedule", err)
		return nil
	}
	printScheduleInfo(d)
	if watchAfter {
		a, err := client.Attach()
		if err != nil {
			cmdCommon.PrintRuntimeErr(ctx, "start", "attach", err)
			return nil
		}
		return watchDetail(ctx, client, a)
	}
	return nil
}

// resolveTarget turns the --in/--at flags (or the configured defaults)
// into the wire mode and options of a schedule request.
func resolveTarget(ctx *cli.Context, cfg *config.Config) (common.Mode, *nodoffcli.ScheduleOpts, error) {
	if startAt != "" || ctx.IsSet("at") {
		at := startAt
		if at == "" {
			at = cfg.Defaults.At
		}
		if err := validateClock(at); err != nil {
			return "", nil, err
		}
		return common.ModeScheduled, &nodoffcli.ScheduleOpts{At: at}, nil
	}
	d := cfg.Defaults.Duration
	if startIn != "" {
		var err error
		d, err = parseCountdown(startIn)
		if err != nil {
			return "", nil, err
		}
	}
	return common.ModeCountdown, &nodoffcli.ScheduleOpts{DurationSec: int64(d / time.Second)}, nil
}

func printScheduleInfo(d *common.StatusDetail) {
	fires := time.Unix(d.TargetUnix, 0).Local()
	txt := fmt.Sprintf(`
Schedule Armed
Action`+"\t\t"+`: %s
Mode`+"\t\t"+`: %s
Fires At`+"\t"+`: %s
Remaining`+"\t"+`: %s
`,
		d.Action,
		d.Mode,
		fires.Format("Mon 15:04:05"),
		common.FormatRemaining(time.Duration(d.RemainingSec)*time.Second),
	)
	fmt.Println(txt)
	fmt.Println("The countdown keeps running in the background, `nodoff cancel` to stop it.")
}
