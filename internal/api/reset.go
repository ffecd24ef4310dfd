package api

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/server"
)

// Reset clears a terminal schedule back to standby.
func (s *Api) Reset() (*common.StatusDetail, error) {
	if err := s.engine.Reset(); err != nil {
		return nil, err
	}
	return s.Status(), nil
}

func (s *Api) resetHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	detail, err := s.Reset()
	if err != nil {
		return common.UPDATE_RESET, nil, err
	}
	return common.UPDATE_RESET, detail, nil
}
