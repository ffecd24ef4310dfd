package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"
	cmdCommon "github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func status(ctx *cli.Context) error {
	arg := strings.TrimSpace(ctx.Args().First())
	if ctx.Command.Name == "" && arg != "" {
		// Reached as the app default action with an unrecognized
		// first argument.
		return cmdCommon.PrintErrWithHelp(ctx, fmt.Errorf("unknown command %q", arg))
	}
	if arg == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "status", "new_client", err)
		return nil
	}
	defer client.Close()
	client.CheckVersionMismatch(currentBuildArgs.Version)
	d, err := client.Status()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "status", "get_status", err)
		return nil
	}
	printStatusDetail(d)
	return nil
}

func printStatusDetail(d *common.StatusDetail) {
	fmt.Println(d.Text)
	if d.State == common.StateIdle {
		return
	}
	txt := fmt.Sprintf(`
State`+"\t\t"+`: %s
Action`+"\t\t"+`: %s
Mode`+"\t\t"+`: %s
`,
		d.State,
		d.Action,
		d.Mode,
	)
	if d.TargetUnix != 0 {
		txt += fmt.Sprintf("Fires At\t: %s\n", time.Unix(d.TargetUnix, 0).Local().Format("Mon 15:04:05"))
	}
	if d.DispatchError != "" {
		txt += fmt.Sprintf("Dispatch Error\t: %s\n", d.DispatchError)
	}
	fmt.Println(txt)
}
