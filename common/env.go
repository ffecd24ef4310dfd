// Package common provides shared types and constants used across the nodoff
// client-daemon communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for custom socket path.
	SocketPathEnv = "NODOFF_SOCKET_PATH"

	// TCPPortEnv is the environment variable for custom TCP port.
	TCPPortEnv = "NODOFF_TCP_PORT"

	// ForceTCPEnv is the environment variable to force TCP connections.
	ForceTCPEnv = "NODOFF_FORCE_TCP"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "NODOFF_DEBUG"

	// PipeNameEnv is the environment variable for a custom Windows pipe name.
	PipeNameEnv = "NODOFF_PIPE_NAME"

	// DaemonTimeoutEnv is the environment variable bounding how long the
	// client waits for a freshly spawned daemon to come up.
	DaemonTimeoutEnv = "NODOFF_DAEMON_TIMEOUT"

	// PidFileEnv is the environment variable for a custom daemon pidfile path.
	PidFileEnv = "NODOFF_PID_FILE"
)
