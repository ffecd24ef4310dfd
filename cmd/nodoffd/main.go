// Command nodoffd runs the nodoff scheduling daemon without the CLI
// wrapper, for init systems and the Windows service control manager.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nodoff/nodoff/cmd"
	"github.com/nodoff/nodoff/common"
)

var (
	version   string
	commit    string
	date      string
	buildType string = "unclassified"
)

func main() {
	socket := flag.String("socket", "", "listen on this unix socket (named pipe on Windows)")
	rpcPort := flag.Int("rpc-port", 0, "enable the localhost JSON-RPC surface on this port")
	logFile := flag.String("log-file", "", "append daemon logs to this file")
	tick := flag.Duration("tick", 0, "countdown tick interval")
	flag.Parse()

	// Flags override the config file the same way environment variables
	// do, so they funnel through the env layer.
	if *socket != "" {
		os.Setenv(common.SocketPathEnv, *socket)
	}
	if *rpcPort != 0 {
		os.Setenv("NODOFF_RPC_PORT", strconv.Itoa(*rpcPort))
		os.Setenv("NODOFF_RPC_ENABLED", "true")
	}
	if *logFile != "" {
		os.Setenv("NODOFF_LOG_FILE", *logFile)
	}
	if *tick > time.Duration(0) {
		os.Setenv("NODOFF_TICK_INTERVAL", tick.String())
	}

	err := run(cmd.BuildArgs{
		Version:   version,
		Commit:    commit,
		Date:      date,
		BuildType: buildType,
	})
	if err != nil {
		fmt.Println("nodoffd:", err.Error())
		os.Exit(1)
	}
}
