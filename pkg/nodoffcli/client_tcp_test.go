package nodoffcli

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/nodoff/nodoff/common"
)

// TestClientServer_TCPRoundtrip verifies full client-server communication over TCP.
// This test simulates a daemon server listening on TCP and a client connecting to it.
func TestClientServer_TCPRoundtrip(t *testing.T) {
	// Create TCP listener on dynamic port
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to create TCP listener: %v", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	t.Setenv("NODOFF_TCP_PORT", fmt.Sprintf("%d", port))
	t.Setenv("NODOFF_FORCE_TCP", "1")

	// Mock ensureDaemonFunc to skip daemon spawning
	oldEnsure := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = oldEnsure }()

	// Mock dialFunc to connect via TCP instead of Unix socket
	oldDial := dialFunc
	dialFunc = func(network, address string) (net.Conn, error) {
		if forceTCP() {
			return net.Dial("tcp", tcpAddress())
		}
		return net.Dial(network, address)
	}
	defer func() { dialFunc = oldDial }()

	serverReady := make(chan struct{})
	serverErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		close(serverReady)

		conn, err := listener.Accept()
		if err != nil {
			serverErr <- fmt.Errorf("accept failed: %w", err)
			return
		}
		defer conn.Close()

		for i := 0; i < 2; i++ {
			reqBytes, err := read(conn)
			if err != nil {
				serverErr <- fmt.Errorf("read request failed: %w", err)
				return
			}

			var req Request
			if err := json.Unmarshal(reqBytes, &req); err != nil {
				serverErr <- fmt.Errorf("unmarshal request failed: %w", err)
				return
			}

			var respMsg json.RawMessage
			switch req.Method {
			case common.UPDATE_SCHEDULE:
				respMsg, _ = json.Marshal(common.StatusDetail{
					State:        common.StateRunning,
					Action:       common.ActionShutdown,
					Mode:         common.ModeCountdown,
					RemainingSec: 300,
					Text:         "shutdown in 00:05:00",
				})
			case common.UPDATE_STATUS:
				respMsg, _ = json.Marshal(common.StatusDetail{
					State:        common.StateRunning,
					Action:       common.ActionShutdown,
					RemainingSec: 299,
					Text:         "shutdown in 00:04:59",
				})
			default:
				respMsg = json.RawMessage(`{}`)
			}

			respBytes, _ := json.Marshal(Response{
				Ok: true,
				Update: &Update{
					Type:    req.Method,
					Message: respMsg,
				},
			})
			if err := write(conn, respBytes); err != nil {
				serverErr <- fmt.Errorf("write response failed: %w", err)
				return
			}
		}
	}()

	<-serverReady

	// Create client (should connect via TCP)
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	defer client.Close()

	status, err := client.Schedule("shutdown", "countdown", &ScheduleOpts{DurationSec: 300})
	if err != nil {
		t.Fatalf("Schedule() failed: %v", err)
	}
	if status.State != common.StateRunning {
		t.Errorf("State = %q, want running", status.State)
	}
	if status.Action != common.ActionShutdown {
		t.Errorf("Action = %q, want shutdown", status.Action)
	}

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	if status.RemainingSec != 299 {
		t.Errorf("RemainingSec = %d, want 299", status.RemainingSec)
	}

	wg.Wait()
	select {
	case err := <-serverErr:
		t.Fatalf("server error: %v", err)
	default:
	}
}

// TestClientServer_TCPTickingUpdates verifies that pushed ticking updates
// arrive over a TCP connection and that handlers can end the stream.
func TestClientServer_TCPTickingUpdates(t *testing.T) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to create TCP listener: %v", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	t.Setenv("NODOFF_TCP_PORT", fmt.Sprintf("%d", port))
	t.Setenv("NODOFF_FORCE_TCP", "1")

	oldEnsure := ensureDaemonFunc
	ensureDaemonFunc = func() error { return nil }
	defer func() { ensureDaemonFunc = oldEnsure }()

	oldDial := dialFunc
	dialFunc = func(network, address string) (net.Conn, error) {
		if forceTCP() {
			return net.Dial("tcp", tcpAddress())
		}
		return net.Dial(network, address)
	}
	defer func() { dialFunc = oldDial }()

	serverReady := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		close(serverReady)

		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Send a progress tick
		resp := Response{
			Ok: true,
			Update: &Update{
				Type:    common.UPDATE_TICKING,
				Message: json.RawMessage(`{"event":"tick","state":"running","action":"hibernate","remaining_sec":2,"text":"hibernate in 00:00:02"}`),
			},
		}
		respBytes, _ := json.Marshal(resp)
		_ = write(conn, respBytes)

		// Send the fired event
		time.Sleep(100 * time.Millisecond)
		resp.Update.Message = json.RawMessage(`{"event":"fired","state":"fired","action":"hibernate","remaining_sec":0,"text":"fired (hibernate)"}`)
		respBytes, _ = json.Marshal(resp)
		_ = write(conn, respBytes)
	}()

	<-serverReady

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	tickReceived := false
	firedReceived := false

	client.AddHandler(common.UPDATE_TICKING, NewTickingHandler(common.TickProgress, func(u *common.TickingUpdate) error {
		tickReceived = true
		if u.RemainingSec != 2 {
			t.Errorf("unexpected remaining: got %d, want 2", u.RemainingSec)
		}
		return nil
	}))

	client.AddHandler(common.UPDATE_TICKING, NewTickingHandler(common.TickFired, func(u *common.TickingUpdate) error {
		firedReceived = true
		if u.State != common.StateFired {
			t.Errorf("unexpected state: got %q, want fired", u.State)
		}
		// Disconnect after the schedule fires
		return ErrDisconnect
	}))

	// Start listening (blocks until ErrDisconnect)
	if err := client.Listen(); err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}

	wg.Wait()

	if !tickReceived {
		t.Error("tick update was not received")
	}
	if !firedReceived {
		t.Error("fired update was not received")
	}
}
