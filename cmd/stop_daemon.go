package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/pkg/nodoffcli"
)

const (
	shutdownTimeout = 5 * time.Second
	pollInterval    = 100 * time.Millisecond
)

func stopDaemon(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if stopViaRPC() {
		fmt.Println("Daemon stopped.")
		return nil
	}
	pid, err := ReadPidFile()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Daemon is not running (no pidfile)")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error reading PID file: %v\n", err)
		return nil
	}
	if !isProcessRunning(pid) {
		fmt.Println("Daemon is not running (stale pidfile)")
		return RemovePidFile()
	}

	fmt.Printf("Stopping daemon (PID %d)...\n", pid)

	if err := killDaemon(pid); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping daemon: %v\n", err)
		return nil
	}

	// Note: PID file is removed by daemon's deferred cleanup
	fmt.Println("Daemon stopped successfully")
	return nil
}

// stopViaRPC asks a reachable daemon to quit and waits for it to go
// away. Returns false when no daemon answers, leaving the signal path
// to deal with stragglers.
func stopViaRPC() bool {
	if !nodoffcli.DaemonRunning() {
		return false
	}
	client, err := nodoffcli.NewClient()
	if err != nil {
		return false
	}
	ok, err := client.StopDaemon()
	client.Close()
	if err != nil || !ok {
		return false
	}
	deadline := time.Now().Add(shutdownTimeout)
	for time.Now().Before(deadline) {
		if !nodoffcli.DaemonRunning() {
			return true
		}
		time.Sleep(pollInterval)
	}
	return false
}
