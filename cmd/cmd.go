package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/nodoff/nodoff/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "nodoff",
		HelpName:              "nodoff",
		Usage:                 "Schedule a hibernate, sleep or shutdown.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "nodoff <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: append([]cli.Command{
			{
				Name:                   "start",
				Aliases:                []string{"s"},
				Usage:                  "arm a power-off schedule",
				Description:            StartDescription,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Action:                 start,
				UseShortOptionHandling: true,
				Flags:                  startFlags,
			},
			{
				Name:               "cancel",
				Aliases:            []string{"c"},
				Usage:              "cancel the armed schedule",
				Description:        CancelDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             cancel,
			},
			{
				Name:               "status",
				Usage:              "show the current schedule",
				Description:        StatusDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             status,
			},
			{
				Name:                   "watch",
				Aliases:                []string{"w"},
				Usage:                  "follow the countdown live",
				Description:            WatchDescription,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Action:                 watch,
				UseShortOptionHandling: true,
				Flags:                  watchFlags,
			},
			{
				Name:               "reset",
				Usage:              "clear a finished schedule",
				Description:        ResetDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             reset,
			},
			{
				Name:               "actions",
				Aliases:            []string{"a"},
				Usage:              "list supported power actions",
				Description:        ActionsDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             actions,
			},
			{
				Name:                   "daemon",
				Usage:                  "run the scheduling daemon",
				Description:            DaemonDescription,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Action:                 getDaemonAction(),
				UseShortOptionHandling: true,
				Flags:                  daemonFlags,
			},
			{
				Name:               "stop-daemon",
				Usage:              "stop a running daemon",
				Description:        StopDaemonDescription,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             stopDaemon,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of nodoff",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             version,
			},
		}, getPlatformCommands()...),
		Action:                 status,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
