package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

// version prints the client build and, when a daemon is already
// reachable, the daemon build too. It never starts a daemon.
func version(ctx *cli.Context) error {
	_ = common.GetVersion(ctx)
	if !nodoffcli.DaemonRunning() {
		return nil
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		return nil
	}
	defer client.Close()
	v, err := client.GetDaemonVersion()
	if err != nil {
		return nil
	}
	fmt.Printf("Daemon: %s-%s (%s)\n", v.Version, v.BuildType, v.Commit)
	return nil
}
