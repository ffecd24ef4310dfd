package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func actions(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "actions", "new_client", err)
		return nil
	}
	defer client.Close()
	resp, err := client.Actions()
	if err != nil {
		common.PrintRuntimeErr(ctx, "actions", "get_actions", err)
		return nil
	}
	for _, a := range resp.Actions {
		if a.Supported {
			fmt.Printf("%-10s supported\n", a.Action)
			continue
		}
		reason := a.Reason
		if reason == "" {
			reason = "unavailable"
		}
		fmt.Printf("%-10s unavailable (%s)\n", a.Action, reason)
	}
	return nil
}
