//go:build windows

package server

import (
	"github.com/nodoff/nodoff/common"
)

// pipePath returns the Windows named pipe path, honouring the
// environment override.
func pipePath() string {
	return common.PipePath()
}
