package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/internal/server"
)

// Schedule validates the params, resolves the fire time and starts the
// engine. It rejects actions the platform cannot perform so the user
// learns at schedule time, not when the timer fires.
func (s *Api) Schedule(p *common.ScheduleParams) (*common.StatusDetail, error) {
	action, err := common.ParseAction(p.Action)
	if err != nil {
		return nil, err
	}
	mode, err := common.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	if err := s.power.Supported(action); err != nil {
		return nil, err
	}
	target, err := resolveTarget(mode, p, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.engine.Start(action, mode, target); err != nil {
		return nil, err
	}
	return s.Status(), nil
}

func resolveTarget(mode common.Mode, p *common.ScheduleParams, now time.Time) (time.Time, error) {
	switch mode {
	case common.ModeCountdown:
		return sched.CountdownTarget(now, time.Duration(p.DurationSec)*time.Second)
	case common.ModeScheduled:
		hour, minute, err := sched.ParseClock(p.At)
		if err != nil {
			return time.Time{}, err
		}
		return sched.NextAt(now, hour, minute)
	}
	return time.Time{}, fmt.Errorf("unknown mode %q", mode)
}

func (s *Api) scheduleHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.ScheduleParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_SCHEDULE, nil, err
	}
	detail, err := s.Schedule(&m)
	if err != nil {
		return common.UPDATE_SCHEDULE, nil, err
	}
	return common.UPDATE_SCHEDULE, detail, nil
}
