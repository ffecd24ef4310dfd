package api

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/server"
)

// Cancel aborts the running schedule and returns the resulting snapshot.
func (s *Api) Cancel() (*common.StatusDetail, error) {
	if err := s.engine.Cancel(); err != nil {
		return nil, err
	}
	return s.Status(), nil
}

func (s *Api) cancelHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	detail, err := s.Cancel()
	if err != nil {
		return common.UPDATE_CANCEL, nil, err
	}
	return common.UPDATE_CANCEL, detail, nil
}
