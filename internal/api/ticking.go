package api

import (
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/sched"
)

// TickingUpdate shapes an engine event for the wire.
func TickingUpdate(ev sched.Event) *common.TickingUpdate {
	u := &common.TickingUpdate{
		Event:        ev.Kind,
		State:        ev.State,
		Action:       ev.Action,
		RemainingSec: int64(ev.Remaining / time.Second),
		Text:         common.StatusText(ev.State, ev.Action, ev.Remaining),
		Error:        ev.Err,
	}
	if !ev.Target.IsZero() {
		u.TargetUnix = ev.Target.Unix()
	}
	return u
}
