package api

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/server"
)

// attachHandler registers the calling connection for ticking updates.
// The reply carries the current snapshot so the watcher can render
// immediately instead of waiting for the first tick.
func (s *Api) attachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	pool.Attach(sconn)
	return common.UPDATE_ATTACH, s.Status(), nil
}

func (s *Api) detachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	pool.Detach(sconn)
	return common.UPDATE_DETACH, nil, nil
}
