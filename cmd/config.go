package cmd

const DESCRIPTION = `
Nodoff is a small utility that puts your machine to sleep,
hibernates it or shuts it down after a countdown or at a clock
time. A single schedule is armed at a time and it keeps running
in a background daemon, so you can close the terminal and walk
away.
`

const (
	StartDescription = `The start command arms a power-off schedule. The action
fires after a countdown (--in) or at a clock time (--at);
with neither flag the configured defaults apply.

Durations accept Go notation (90s, 1h30m) or bare minutes,
clock times use 24h HH:MM and roll over to tomorrow when the
time has already passed today.

Example:
        nodoff start -i 45 hibernate
        nodoff start -a 23:30 shutdown

`
	CancelDescription = `The cancel command revokes the armed schedule. The daemon
keeps running and the schedule stays visible as cancelled
until a new one is started or reset is issued.

Example:
        nodoff cancel

`
	StatusDescription = `The status command prints the current schedule: the action,
how it was scheduled and the time remaining until it fires.

Example:
        nodoff status

`
	WatchDescription = `The watch command attaches to the daemon and renders a live
countdown bar until the schedule fires or is cancelled.
Interrupting watch only detaches it, the schedule keeps
running in the background.

Example:
        nodoff watch

`
	ResetDescription = `The reset command clears a finished schedule so status
reports standby again. Running schedules must be cancelled
first.

Example:
        nodoff reset

`
	ActionsDescription = `The actions command lists the power actions this machine
supports, probing the platform facilities for each one.

Example:
        nodoff actions

`
	DaemonDescription = `The daemon command runs the scheduling daemon in the
foreground, or detached from the terminal with --detach.
The CLI starts a daemon on demand, so running this by hand
is only needed for custom setups.

Example:
        nodoff daemon -d

`
	StopDaemonDescription = `The stop-daemon command stops a running daemon, cancelling
any armed schedule first. It asks the daemon to quit over
RPC and falls back to signalling the recorded process.

Example:
        nodoff stop-daemon

`
)
