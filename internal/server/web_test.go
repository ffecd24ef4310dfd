package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// fakeCore implements Core with canned replies for surface tests.
type fakeCore struct {
	mu           sync.Mutex
	scheduleErr  error
	cancelErr    error
	resetErr     error
	lastSchedule *common.ScheduleParams
	status       common.StatusDetail
}

func newFakeCore() *fakeCore {
	return &fakeCore{
		status: common.StatusDetail{State: common.StateIdle, Text: "standby"},
	}
}

func (f *fakeCore) Schedule(p *common.ScheduleParams) (*common.StatusDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSchedule = p
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeCore) Cancel() (*common.StatusDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeCore) Status() *common.StatusDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.status
	return &st
}

func (f *fakeCore) Reset() (*common.StatusDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeCore) Actions() *common.ActionsResponse {
	return &common.ActionsResponse{Actions: []common.ActionInfo{
		{Action: common.ActionHibernate, Supported: true},
		{Action: common.ActionSleep, Supported: true},
		{Action: common.ActionShutdown, Supported: true},
	}}
}

func (f *fakeCore) Version() *common.VersionResponse {
	return &common.VersionResponse{Version: "1.0.0", Commit: "abc123"}
}

func newTestWebServer(t *testing.T, core Core, secret string) (*WebServer, *httptest.Server) {
	t.Helper()
	ws := NewWebServer(logger.NewNopLogger(), core, &RPCConfig{
		Secret:  secret,
		Version: "1.0.0",
	}, 0)
	srv := httptest.NewServer(ws.handler())
	t.Cleanup(func() {
		srv.Close()
		ws.rpc.Close()
	})
	return ws, srv
}

func postRPC(t *testing.T, url, secret string, body string) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/jsonrpc", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding rpc response: %v", err)
	}
	return out
}

func TestWebServer_Healthz(t *testing.T) {
	core := newFakeCore()
	core.status = common.StatusDetail{
		State:        common.StateRunning,
		Action:       common.ActionSleep,
		RemainingSec: 42,
		Text:         "sleep in 00:00:42",
	}
	_, srv := newTestWebServer(t, core, "s3cret")

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Ok     bool                `json:"ok"`
		Status common.StatusDetail `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Ok {
		t.Error("health should report ok")
	}
	if body.Status.State != common.StateRunning || body.Status.Text != "sleep in 00:00:42" {
		t.Errorf("unexpected status: %+v", body.Status)
	}
}

func TestWebServer_RPCRequiresAuth(t *testing.T) {
	_, srv := newTestWebServer(t, newFakeCore(), "s3cret")

	out := postRPC(t, srv.URL, "", `{"jsonrpc":"2.0","id":1,"method":"power.status"}`)
	errObj, ok := out["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", out)
	}
	if errObj["message"] != "Unauthorized" {
		t.Errorf("unexpected message: %v", errObj["message"])
	}
}

func TestWebServer_RPCStatus(t *testing.T) {
	_, srv := newTestWebServer(t, newFakeCore(), "s3cret")

	out := postRPC(t, srv.URL, "s3cret", `{"jsonrpc":"2.0","id":1,"method":"power.status"}`)
	result, ok := out["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result, got %v", out)
	}
	if result["state"] != "idle" || result["text"] != "standby" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestWebServer_ShutdownWithoutStart(t *testing.T) {
	ws := NewWebServer(logger.NewNopLogger(), newFakeCore(), &RPCConfig{Secret: "x"}, 0)
	if err := ws.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown before start should be clean, got %v", err)
	}
}
