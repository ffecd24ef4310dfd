//go:build windows

package nodoffcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Microsoft/go-winio"
	"github.com/nodoff/nodoff/common"
)

// TestDialPipe_ConnectionRefused verifies that dialing a nonexistent
// pipe fails instead of hanging.
func TestDialPipe_ConnectionRefused(t *testing.T) {
	nonexistentPipe := `\\.\pipe\nodoff-does-not-exist`

	timeout := 200 * time.Millisecond
	conn, err := dialPipeFunc(nonexistentPipe, &timeout)
	if err == nil {
		conn.Close()
		t.Fatal("dialPipeFunc() succeeded on nonexistent pipe; want error")
	}
}

// TestNewClient_DialsPipeFirst verifies that the client tries the named
// pipe before any TCP fallback.
func TestNewClient_DialsPipeFirst(t *testing.T) {
	pipeName := fmt.Sprintf(`\\.\pipe\nodoff-test-client-%d`, time.Now().UnixNano())
	t.Setenv(common.PipeNameEnv, pipeName)
	t.Setenv(common.ForceTCPEnv, "")

	// Mock ensureDaemon to avoid spawning actual daemon
	originalEnsureDaemon := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = originalEnsureDaemon }()

	// Track dial attempts by mocking dialPipeFunc
	pipeCalled := false
	var pipeMu sync.Mutex

	originalDialPipeFunc := dialPipeFunc
	dialPipeFunc = func(path string, timeout *time.Duration) (net.Conn, error) {
		pipeMu.Lock()
		pipeCalled = true
		pipeMu.Unlock()

		listener, err := winio.ListenPipe(pipeName, nil)
		if err != nil {
			return nil, err
		}

		connChan := make(chan net.Conn, 1)
		go func() {
			conn, _ := listener.Accept()
			connChan <- conn
		}()

		clientConn, err := winio.DialPipe(pipeName, nil)
		if err != nil {
			listener.Close()
			return nil, err
		}

		go func() {
			serverConn := <-connChan
			serverConn.Close()
			listener.Close()
		}()

		return clientConn, nil
	}
	defer func() { dialPipeFunc = originalDialPipeFunc }()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	defer client.Close()

	pipeMu.Lock()
	defer pipeMu.Unlock()
	if !pipeCalled {
		t.Fatal("NewClient() did not attempt pipe dial")
	}
}

// TestNewClient_FallsBackToTCPWhenPipeFails verifies that when pipe dial fails,
// NewClient falls back to TCP.
func TestNewClient_FallsBackToTCPWhenPipeFails(t *testing.T) {
	t.Setenv(common.ForceTCPEnv, "")

	originalEnsureDaemon := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = originalEnsureDaemon }()

	originalDialPipeFunc := dialPipeFunc
	dialPipeFunc = func(path string, timeout *time.Duration) (net.Conn, error) {
		return nil, errors.New("pipe unavailable")
	}
	defer func() { dialPipeFunc = originalDialPipeFunc }()

	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	tcpCalled := false
	originalDial := dialFunc
	dialFunc = func(network, address string) (net.Conn, error) {
		if network == "tcp" {
			tcpCalled = true
			return c1, nil
		}
		return nil, errors.New("unexpected network")
	}
	defer func() { dialFunc = originalDial }()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("expected successful fallback to TCP, got error: %v", err)
	}
	defer client.Close()

	if !tcpCalled {
		t.Fatal("NewClient() did not fall back to TCP")
	}
}

// TestNewClient_ForceTCPSkipsPipe verifies that NODOFF_FORCE_TCP=1
// bypasses the named pipe entirely.
func TestNewClient_ForceTCPSkipsPipe(t *testing.T) {
	t.Setenv(common.ForceTCPEnv, "1")

	originalEnsureDaemon := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = originalEnsureDaemon }()

	originalDialPipeFunc := dialPipeFunc
	dialPipeFunc = func(path string, timeout *time.Duration) (net.Conn, error) {
		t.Error("pipe dial should not be attempted when TCP is forced")
		return nil, errors.New("unexpected pipe dial")
	}
	defer func() { dialPipeFunc = originalDialPipeFunc }()

	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	originalDial := dialFunc
	dialFunc = func(network, address string) (net.Conn, error) {
		if network != "tcp" {
			return nil, errors.New("unexpected network")
		}
		return c1, nil
	}
	defer func() { dialFunc = originalDial }()

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	defer client.Close()
}

// TestNewClient_BothTransportsFailWindows verifies the combined error
// when both the pipe and TCP dials fail.
func TestNewClient_BothTransportsFailWindows(t *testing.T) {
	t.Setenv(common.ForceTCPEnv, "")

	originalEnsureDaemon := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = originalEnsureDaemon }()

	originalDialPipeFunc := dialPipeFunc
	dialPipeFunc = func(path string, timeout *time.Duration) (net.Conn, error) {
		return nil, errors.New("pipe unavailable")
	}
	defer func() { dialPipeFunc = originalDialPipeFunc }()

	originalDial := dialFunc
	dialFunc = func(network, address string) (net.Conn, error) {
		return nil, errors.New("tcp refused")
	}
	defer func() { dialFunc = originalDial }()

	client, err := NewClient()
	if err == nil {
		t.Fatal("expected error when both transports fail")
	}
	if client != nil {
		t.Fatal("expected nil client on error")
	}
	if !strings.Contains(err.Error(), "failed to connect") {
		t.Fatalf("expected 'failed to connect' error, got: %v", err)
	}
}

// TestClientServer_PipeRoundtrip exercises a full request cycle over a
// real named pipe.
func TestClientServer_PipeRoundtrip(t *testing.T) {
	pipeName := fmt.Sprintf(`\\.\pipe\nodoff-test-rt-%d`, time.Now().UnixNano())

	listener, err := winio.ListenPipe(pipeName, nil)
	if err != nil {
		t.Fatalf("ListenPipe: %v", err)
	}
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reqBytes, err := read(conn)
		if err != nil {
			return
		}
		var req Request
		_ = json.Unmarshal(reqBytes, &req)
		respMsg, _ := json.Marshal(common.StatusDetail{State: common.StateIdle, Text: "standby"})
		respBytes, _ := json.Marshal(Response{Ok: true, Update: &Update{Type: req.Method, Message: respMsg}})
		_ = write(conn, respBytes)
	}()

	conn, err := winio.DialPipe(pipeName, nil)
	if err != nil {
		t.Fatalf("DialPipe: %v", err)
	}
	client := NewClientForTesting(conn)
	defer client.Close()

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status() over pipe failed: %v", err)
	}
	if status.Text != "standby" {
		t.Errorf("Text = %q, want standby", status.Text)
	}
}
