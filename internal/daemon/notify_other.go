//go:build !linux

package daemon

// NotifyReady is a no-op on platforms without a service notification
// socket.
func NotifyReady() error { return nil }

// NotifyStopping is a no-op on platforms without a service
// notification socket.
func NotifyStopping() error { return nil }
