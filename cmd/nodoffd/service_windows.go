//go:build windows

package main

import (
	"github.com/nodoff/nodoff/cmd"
	"golang.org/x/sys/windows/svc"
)

// run picks service mode when started by the service control manager,
// console mode otherwise.
func run(bArgs cmd.BuildArgs) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return err
	}
	if isService {
		return cmd.RunWindowsService(bArgs)
	}
	return cmd.RunDaemon(bArgs)
}
