package api

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/server"
)

// Actions reports platform support for every action, with the reason
// an unsupported one cannot run.
func (s *Api) Actions() *common.ActionsResponse {
	resp := &common.ActionsResponse{}
	for _, a := range common.Actions() {
		info := common.ActionInfo{Action: a, Supported: true}
		if err := s.power.Supported(a); err != nil {
			info.Supported = false
			info.Reason = err.Error()
		}
		resp.Actions = append(resp.Actions, info)
	}
	return resp
}

func (s *Api) actionsHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_ACTIONS, s.Actions(), nil
}
