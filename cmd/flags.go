package cmd

import (
	"github.com/urfave/cli"
)

var (
	startIn    string
	startAt    string
	watchAfter bool
	daemonURI  string
	detach     bool

	startFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "in, i",
			Usage:       "fire after this countdown, bare minutes or a Go duration like 1h30m",
			Destination: &startIn,
		},
		cli.StringFlag{
			Name:        "at, a",
			Usage:       "fire at this 24h clock time (HH:MM), rolling over to tomorrow if already past",
			Destination: &startAt,
		},
		cli.BoolFlag{
			Name:        "watch, w",
			Usage:       "attach a live countdown after arming the schedule",
			Destination: &watchAfter,
		},
	}

	watchFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "daemon-uri",
			Usage:       "connect to the daemon at this address instead of the default transport",
			EnvVar:      "NODOFF_DAEMON_URI",
			Destination: &daemonURI,
		},
	}

	daemonFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "detach, d",
			Usage:       "run the daemon detached from the current terminal",
			Destination: &detach,
		},
	}
)
