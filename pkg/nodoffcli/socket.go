//go:build !windows

package nodoffcli

import (
	"os"
	"path/filepath"

	"github.com/nodoff/nodoff/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "nodoff.sock")
}

// getConnectionPath returns the primary transport endpoint for probing
// a running daemon.
func getConnectionPath() string {
	return socketPath()
}
