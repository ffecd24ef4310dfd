package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli"
	cmdCommon "github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

func watch(ctx *cli.Context) (err error) {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := nodoffcli.NewClientWithURI(daemonURI)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "watch", "new_client", err)
		return nil
	}
	client.CheckVersionMismatch(currentBuildArgs.Version)
	d, err := client.Attach()
	if err != nil {
		_ = client.Close()
		cmdCommon.PrintRuntimeErr(ctx, "watch", "attach", err)
		return nil
	}
	return watchDetail(ctx, client, d)
}

// watchDetail renders a live countdown for an already attached client
// until the schedule reaches a terminal state. An interrupt detaches the
// watcher and leaves the schedule running.
func watchDetail(ctx *cli.Context, client *nodoffcli.Client, d *common.StatusDetail) error {
	if d.State != common.StateRunning {
		fmt.Println(d.Text)
		return client.Close()
	}
	interrupted := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		signal.Stop(sigChan)
		close(interrupted)
		client.Disconnect()
	}()
	res, p := registerWatchHandlers(client, d)
	err := client.Listen()
	select {
	case <-interrupted:
		fmt.Println("\nDetached. The schedule keeps running, `nodoff cancel` to stop it.")
		return nil
	default:
	}
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "watch", "listen", err)
		return nil
	}
	p.Wait()
	if res.text != "" {
		fmt.Println(res.text)
	}
	return nil
}
