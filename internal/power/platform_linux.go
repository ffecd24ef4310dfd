package power

import (
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

func newPlatformDispatcher(l logger.Logger) Dispatcher {
	d, err := newLogin1Dispatcher(l)
	if err == nil {
		l.Info("power: using logind over the system bus")
		return d
	}
	l.Warning("power: system bus unavailable (%s), falling back to systemctl", err.Error())
	return newCommandDispatcher(l, map[common.Action][]string{
		common.ActionHibernate: {"systemctl", "hibernate"},
		common.ActionSleep:     {"systemctl", "suspend"},
		common.ActionShutdown:  {"systemctl", "poweroff"},
	}, nil)
}
