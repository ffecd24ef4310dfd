package server

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
)

// HandlerFunc handles one framed request. It receives the calling
// connection (for attach-style handlers that need to register it), the
// pool, and the raw message body. It returns the update type for the
// reply, the reply payload, and any error.
type HandlerFunc func(
	conn *SyncConn,
	pool *Pool,
	body json.RawMessage,
) (
	common.UpdateType,
	any,
	error,
)
