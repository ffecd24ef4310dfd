package main

import (
	"fmt"
	"os"

	"github.com/nodoff/nodoff/cmd"
)

var (
	version   string
	commit    string
	date      string
	buildType string = "unclassified"
)

var osExit = os.Exit

// runMain executes the CLI and maps the result to a process exit code.
func runMain(args []string, run func([]string) error) int {
	if err := run(args); err != nil {
		fmt.Printf("nodoff: %s\n", err.Error())
		return 1
	}
	return 0
}

func main() {
	osExit(runMain(os.Args, func(args []string) error {
		return cmd.Execute(args, cmd.BuildArgs{
			Version:   version,
			Commit:    commit,
			Date:      date,
			BuildType: buildType,
		})
	}))
}
