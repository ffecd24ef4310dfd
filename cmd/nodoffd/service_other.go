//go:build !windows

package main

import "github.com/nodoff/nodoff/cmd"

func run(bArgs cmd.BuildArgs) error {
	return cmd.RunDaemon(bArgs)
}
