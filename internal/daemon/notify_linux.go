package daemon

import (
	sdnotify "github.com/coreos/go-systemd/v22/daemon"
)

// NotifyReady tells the service manager the daemon is serving. Running
// outside systemd is not an error; the notification socket is simply
// absent and the call is a no-op.
func NotifyReady() error {
	_, err := sdnotify.SdNotify(false, sdnotify.SdNotifyReady)
	return err
}

// NotifyStopping tells the service manager a shutdown is in progress.
func NotifyStopping() error {
	_, err := sdnotify.SdNotify(false, sdnotify.SdNotifyStopping)
	return err
}
