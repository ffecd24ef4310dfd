//go:build !linux && !windows && !darwin

package power

import "github.com/nodoff/nodoff/pkg/logger"

func newPlatformDispatcher(l logger.Logger) Dispatcher {
	l.Warning("power: no dispatch commands for this platform")
	return newCommandDispatcher(l, nil, nil)
}
