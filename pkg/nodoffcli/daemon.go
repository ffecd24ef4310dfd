package nodoffcli

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/nodoff/nodoff/common"
)

const (
	defaultDaemonStartTimeout = 10 * time.Second
	socketPollInterval        = 50 * time.Millisecond
	socketDialTimeout         = 100 * time.Millisecond
)

// getDaemonStartTimeout returns how long to wait for a spawned daemon
// to come up. Overridable via NODOFF_DAEMON_TIMEOUT (a Go duration).
func getDaemonStartTimeout() time.Duration {
	if v := os.Getenv(common.DaemonTimeoutEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		debugLog("invalid daemon timeout %q, using default %v", v, defaultDaemonStartTimeout)
	}
	return defaultDaemonStartTimeout
}

// ensureDaemon checks if the daemon is running and spawns it if not.
// Returns nil if daemon is running or was successfully started.
func ensureDaemon() error {
	path := getConnectionPath()

	// Quick check: can we connect?
	if isDaemonRunning(path) {
		return nil
	}

	// Spawn daemon
	if err := spawnDaemon(); err != nil {
		return err
	}

	// Wait for socket to become available
	return waitForSocket(path, getDaemonStartTimeout())
}

// waitForSocket polls until the socket/pipe becomes available or timeout expires.
func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if isDaemonRunning(path) {
			return nil
		}
		time.Sleep(socketPollInterval)
	}
	return fmt.Errorf("daemon failed to start within %v", timeout)
}

// DaemonRunning reports whether a daemon is reachable on any local
// transport. Unlike NewClient it never spawns one.
func DaemonRunning() bool {
	return isDaemonRunning(getConnectionPath())
}

// isDaemonRunning probes the primary transport, then the TCP fallback.
func isDaemonRunning(path string) bool {
	if probeTransport(path) {
		return true
	}
	conn, err := net.DialTimeout("tcp", tcpAddress(), socketDialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
