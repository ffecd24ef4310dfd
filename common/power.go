package common

import (
	"fmt"
	"time"
)

// Action is the power-state transition a schedule triggers when it fires.
type Action string

const (
	ActionHibernate Action = "hibernate"
	ActionSleep     Action = "sleep"
	ActionShutdown  Action = "shutdown"
)

// Actions lists every supported action in display order.
func Actions() []Action {
	return []Action{ActionHibernate, ActionSleep, ActionShutdown}
}

// ParseAction validates a user- or wire-provided action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionHibernate, ActionSleep, ActionShutdown:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q (expected hibernate, sleep or shutdown)", s)
}

// Mode selects how a schedule's fire time is derived.
type Mode string

const (
	// ModeCountdown fires after a relative duration.
	ModeCountdown Mode = "countdown"
	// ModeScheduled fires at the next wall-clock occurrence of HH:MM.
	ModeScheduled Mode = "scheduled"
)

// ParseMode validates a user- or wire-provided mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCountdown, ModeScheduled:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (expected countdown or scheduled)", s)
}

// State is the lifecycle state of a schedule. Transitions are monotonic:
// idle -> running, running -> cancelled, running -> fired.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCancelled State = "cancelled"
	StateFired     State = "fired"
)

// Terminal reports whether the state is an end state of a schedule.
func (s State) Terminal() bool {
	return s == StateCancelled || s == StateFired
}

// FormatRemaining renders a non-negative duration as zero-padded hh:mm:ss.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}

// StatusText renders the one-line human status for a schedule state.
func StatusText(state State, action Action, remaining time.Duration) string {
	switch state {
	case StateRunning:
		if remaining <= 0 {
			return fmt.Sprintf("%s imminent", action)
		}
		return fmt.Sprintf("%s in %s", action, FormatRemaining(remaining))
	case StateFired:
		return fmt.Sprintf("fired (%s)", action)
	case StateCancelled:
		return fmt.Sprintf("cancelled (%s)", action)
	default:
		return "standby"
	}
}
