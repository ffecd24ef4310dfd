package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func cancel(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "cancel", "new_client", err)
		return nil
	}
	defer client.Close()
	d, err := client.Cancel()
	if err != nil {
		common.PrintRuntimeErr(ctx, "cancel", "cancel", err)
		return nil
	}
	fmt.Println("Schedule cancelled.")
	fmt.Println(d.Text)
	return nil
}
