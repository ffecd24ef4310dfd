package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func daemon(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if detach {
		return daemonDetached(ctx)
	}
	if err := RunDaemon(currentBuildArgs); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}

// daemonDetached starts a background daemon through the client's
// on-demand spawn path and returns once it is reachable.
func daemonDetached(ctx *cli.Context) error {
	if nodoffcli.DaemonRunning() {
		fmt.Println("Daemon is already running.")
		return nil
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "spawn", err)
		return nil
	}
	defer client.Close()
	fmt.Println("Daemon started in the background.")
	return nil
}
