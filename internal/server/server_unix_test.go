//go:build !windows

package server

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

func waitForSocketFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("socket %s never appeared", path)
}

func TestServer_EndToEndUnixSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "nodoff-test.sock")
	pool := NewPool(logger.NewNopLogger())
	s := NewServer(logger.NewNopLogger(), pool, nil, sock, 0)
	s.RegisterHandler(common.UPDATE_STATUS, func(_ *SyncConn, _ *Pool, _ json.RawMessage) (common.UpdateType, any, error) {
		return common.UPDATE_STATUS, &common.StatusDetail{State: common.StateIdle, Text: "standby"}, nil
	})
	s.RegisterHandler(common.UPDATE_ATTACH, func(conn *SyncConn, p *Pool, _ json.RawMessage) (common.UpdateType, any, error) {
		p.Attach(conn)
		return common.UPDATE_ATTACH, &common.StatusDetail{State: common.StateIdle, Text: "standby"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- s.Start(ctx)
	}()
	waitForSocketFile(t, sock)

	conn, err := net.Dial("unix", sock)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	cconn := NewSyncConn(conn)

	// Round trip a status request.
	reqBody, _ := json.Marshal(Request{Method: common.UPDATE_STATUS})
	if err := cconn.Write(reqBody); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := cconn.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Ok || resp.Update == nil || resp.Update.Type != common.UPDATE_STATUS {
		t.Fatalf("unexpected reply: %+v", resp)
	}

	// Attach, then receive a broadcast pushed through the pool.
	attachBody, _ := json.Marshal(Request{Method: common.UPDATE_ATTACH})
	if err := cconn.Write(attachBody); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := cconn.Read(); err != nil {
		t.Fatalf("read attach reply: %v", err)
	}

	pool.Broadcast(MakeResult(common.UPDATE_TICKING, &common.TickingUpdate{
		Event: common.TickProgress,
		State: common.StateRunning,
		Text:  "sleep in 00:00:10",
	}))
	raw, err = cconn.Read()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Update == nil || resp.Update.Type != common.UPDATE_TICKING {
		t.Fatalf("unexpected broadcast envelope: %+v", resp)
	}

	cancel()
	select {
	case err := <-serveDone:
		if err != nil {
			t.Errorf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop on context cancellation")
	}
	if _, err := os.Stat(sock); !os.IsNotExist(err) {
		t.Errorf("socket file should be removed on shutdown")
	}
}

func TestSocketPath_Precedence(t *testing.T) {
	if got := socketPath("/custom/path.sock"); got != "/custom/path.sock" {
		t.Errorf("override ignored: %q", got)
	}

	t.Setenv(common.SocketPathEnv, "/env/path.sock")
	if got := socketPath(""); got != "/env/path.sock" {
		t.Errorf("environment ignored: %q", got)
	}
	if got := socketPath("/custom/path.sock"); got != "/custom/path.sock" {
		t.Errorf("override should beat environment: %q", got)
	}

	t.Setenv(common.SocketPathEnv, "")
	want := filepath.Join(os.TempDir(), "nodoff.sock")
	if got := socketPath(""); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}
}
