package api

import (
	"encoding/json"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/internal/server"
)

// Status returns the current schedule snapshot. It never fails; an
// idle engine reports standby.
func (s *Api) Status() *common.StatusDetail {
	return statusDetail(s.engine.Status())
}

func statusDetail(snap sched.Snapshot) *common.StatusDetail {
	d := &common.StatusDetail{
		State:         snap.State,
		Action:        snap.Action,
		Mode:          snap.Mode,
		RemainingSec:  int64(snap.Remaining / time.Second),
		Text:          snap.Text(),
		DispatchError: snap.DispatchError,
	}
	if !snap.Target.IsZero() {
		d.TargetUnix = snap.Target.Unix()
	}
	return d
}

func (s *Api) statusHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_STATUS, s.Status(), nil
}
