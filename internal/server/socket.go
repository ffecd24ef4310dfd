package server

import (
	"os"
	"path/filepath"

	"github.com/nodoff/nodoff/common"
)

// socketPath resolves the socket location: explicit override first,
// then the environment, then a file in the temp directory.
func socketPath(override string) string {
	if override != "" {
		return override
	}
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "nodoff.sock")
}

func forceTCP() bool {
	return os.Getenv(common.ForceTCPEnv) == "1"
}
