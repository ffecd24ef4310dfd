package common

import "time"

type UpdateType string

const (
	UPDATE_SCHEDULE UpdateType = "schedule"
	UPDATE_CANCEL   UpdateType = "cancel"
	UPDATE_STATUS   UpdateType = "status"
	UPDATE_RESET    UpdateType = "reset"
	UPDATE_ATTACH   UpdateType = "attach"
	UPDATE_DETACH   UpdateType = "detach"
	UPDATE_ACTIONS  UpdateType = "actions"
	UPDATE_VERSION  UpdateType = "version"
	UPDATE_STOP     UpdateType = "stop"
	UPDATE_TICKING  UpdateType = "ticking"
)

// TickingEvent distinguishes the sub-events carried by UPDATE_TICKING
// pushes while a schedule is active.
type TickingEvent string

const (
	TickProgress      TickingEvent = "tick"
	TickFired         TickingEvent = "fired"
	TickCancelled     TickingEvent = "cancelled"
	TickDispatchError TickingEvent = "dispatch_error"
)

// Network defaults shared by the daemon listeners and the client dialers.
const (
	// DefaultTCPPort is the fallback TCP port used when the Unix socket
	// (or named pipe on Windows) is unavailable.
	DefaultTCPPort = 3941

	// TCPHost is the host the TCP fallback binds and dials. The daemon
	// never listens on non-loopback addresses.
	TCPHost = "localhost"

	// MaxMessageSize bounds a single framed message on the wire.
	MaxMessageSize = 1 << 20 // 1 MiB

	// DefaultDialTimeout bounds a single client dial attempt.
	DefaultDialTimeout = 2 * time.Second
)
