//go:build windows

package server

import (
	"net"

	"github.com/Microsoft/go-winio"
)

// pipeSecurityDescriptor restricts pipe access to SYSTEM, the built-in
// Administrators group and the creating user.
const pipeSecurityDescriptor = "D:(A;;GA;;;SY)(A;;GA;;;BA)(A;;GA;;;CO)"

// createListener prefers a named pipe and falls back to TCP on the
// loopback port when the pipe cannot be created.
func (s *Server) createListener() (net.Listener, error) {
	if forceTCP() {
		s.log.Info("force TCP mode enabled")
		return s.tcpListener()
	}
	cfg := &winio.PipeConfig{
		SecurityDescriptor: pipeSecurityDescriptor,
	}
	l, err := winio.ListenPipe(pipePath(), cfg)
	if err != nil {
		s.log.Warning("named pipe creation failed: %s", err.Error())
		s.log.Warning("falling back to tcp (firewall prompts may occur)")
		return s.tcpListener()
	}
	return l, nil
}
