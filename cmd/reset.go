package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func reset(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "reset", "new_client", err)
		return nil
	}
	defer client.Close()
	_, err = client.Reset()
	if err != nil {
		common.PrintRuntimeErr(ctx, "reset", "reset", err)
		return nil
	}
	fmt.Println("Schedule cleared.")
	return nil
}
