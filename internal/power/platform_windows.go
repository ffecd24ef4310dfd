package power

import (
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

func newPlatformDispatcher(l logger.Logger) Dispatcher {
	return newCommandDispatcher(l, map[common.Action][]string{
		common.ActionHibernate: {"shutdown", "/h"},
		common.ActionSleep:     {"rundll32.exe", "powrprof.dll,SetSuspendState", "0,1,0"},
		common.ActionShutdown:  {"shutdown", "/s", "/t", "0"},
	}, nil)
}
