package power

import (
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Hibernate has no mapping on macOS. Supported reports it so the CLI
// can explain instead of failing at fire time.
func newPlatformDispatcher(l logger.Logger) Dispatcher {
	return newCommandDispatcher(l, map[common.Action][]string{
		common.ActionSleep:    {"pmset", "sleepnow"},
		common.ActionShutdown: {"shutdown", "-h", "now"},
	}, nil)
}
