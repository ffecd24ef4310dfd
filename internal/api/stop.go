package api

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/server"
)

// stopHandler asks the daemon to exit. The reply is written before the
// shutdown callback runs so the client sees an acknowledgement instead
// of a dropped connection.
func (s *Api) stopHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	s.log.Info("stop requested over socket")
	if s.shutdown != nil {
		go s.shutdown()
	}
	return common.UPDATE_STOP, nil, nil
}
