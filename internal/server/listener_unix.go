//go:build !windows

package server

import (
	"net"
	"os"
)

// createListener prefers a Unix socket and falls back to TCP on the
// loopback port when the socket cannot be created.
func (s *Server) createListener() (net.Listener, error) {
	if forceTCP() {
		s.log.Info("force TCP mode enabled")
		return s.tcpListener()
	}
	path := socketPath(s.socketPath)
	_ = os.Remove(path)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: path,
		Net:  "unix",
	})
	if err != nil {
		s.log.Warning("unix socket unavailable: %s", err.Error())
		s.log.Warning("falling back to tcp")
		return s.tcpListener()
	}
	setSocketPermissions(path)
	return l, nil
}
