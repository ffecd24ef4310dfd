package sched

import (
	"time"

	"github.com/nodoff/nodoff/common"
)

// Event is emitted once per tick while a schedule is running and on
// every terminal transition. Events are in-memory only; observers that
// fall behind lose ticks, never terminal transitions ordering.
type Event struct {
	Kind      common.TickingEvent
	State     common.State
	Action    common.Action
	Mode      common.Mode
	Target    time.Time
	Remaining time.Duration
	Err       string
}

// Snapshot is an immutable copy of the engine state at one instant.
type Snapshot struct {
	State         common.State
	Action        common.Action
	Mode          common.Mode
	Target        time.Time
	Remaining     time.Duration
	DispatchError string
}

// Text renders the one-line human status for the snapshot.
func (s Snapshot) Text() string {
	return common.StatusText(s.State, s.Action, s.Remaining)
}

// schedule is the single in-flight request. It is created by Start and
// discarded when a new schedule replaces a terminal one.
type schedule struct {
	action      common.Action
	mode        common.Mode
	target      time.Time
	state       common.State
	dispatchErr string

	// cancelled wakes the ticking goroutine early on Cancel/Close so it
	// exits without waiting for the next tick.
	cancelled chan struct{}
}
