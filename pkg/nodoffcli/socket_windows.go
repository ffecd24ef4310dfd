//go:build windows

package nodoffcli

import (
	"github.com/nodoff/nodoff/common"
)

func pipePath() string {
	return common.PipePath()
}

// getConnectionPath returns the primary transport endpoint for probing
// a running daemon.
func getConnectionPath() string {
	return pipePath()
}
