package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Core is the scheduling surface the HTTP layer drives. The api
// package implements it on top of the engine and the dispatcher.
type Core interface {
	Schedule(params *common.ScheduleParams) (*common.StatusDetail, error)
	Cancel() (*common.StatusDetail, error)
	Status() *common.StatusDetail
	Reset() (*common.StatusDetail, error)
	Actions() *common.ActionsResponse
	Version() *common.VersionResponse
}

// WebServer is the localhost widget surface: a JSON-RPC bridge, a
// WebSocket ticking feed and a health probe. It never binds a
// non-loopback address.
type WebServer struct {
	port   int
	l      logger.Logger
	core   Core
	rpc    *RPCServer
	server *http.Server
	mu     sync.Mutex

	feedMu sync.Mutex
	feeds  map[chan []byte]struct{}
}

func NewWebServer(l logger.Logger, core Core, cfg *RPCConfig, port int) *WebServer {
	return &WebServer{
		port:  port,
		l:     l,
		core:  core,
		rpc:   NewRPCServer(l, core, cfg),
		feeds: make(map[chan []byte]struct{}),
	}
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/jsonrpc", requireToken(s.rpc.secret, s.rpc.bridge))
	mux.HandleFunc("/jsonrpc/ws", s.handleRPCSocket)
	mux.HandleFunc("/ws", s.handleFeed)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *WebServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"status": s.core.Status(),
	})
}

// PushTicking fans one update out to the WebSocket feeds and the
// JSON-RPC notification subscribers. A feed that cannot take the write
// loses the update; terminal events arrive with the next successful
// push or reconnect.
func (s *WebServer) PushTicking(u *common.TickingUpdate) {
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.feedMu.Lock()
	for ch := range s.feeds {
		select {
		case ch <- b:
		default:
		}
	}
	s.feedMu.Unlock()
	s.rpc.notifier.Broadcast("power.ticking", u)
}

func (s *WebServer) addFeed(ch chan []byte) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	s.feeds[ch] = struct{}{}
}

func (s *WebServer) removeFeed(ch chan []byte) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	delete(s.feeds, ch)
}

func (s *WebServer) addr() string {
	return fmt.Sprintf("127.0.0.1:%d", s.port)
}

func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:     s.addr(),
		Handler:  s.handler(),
		ErrorLog: logger.ToStdLogger(s.l),
	}
	s.mu.Unlock()

	s.l.Info("widget surface listening on %s", s.addr())
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the web server and the RPC bridge.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rpc.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
