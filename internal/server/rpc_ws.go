package server

import (
	"context"
	"net/http"
	"time"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
)

// wsChannel adapts a coder/websocket.Conn to the jrpc2 Channel
// interface so one WebSocket carries full JSON-RPC with pushes.
type wsChannel struct {
	conn *cws.Conn
	ctx  context.Context
}

func (c *wsChannel) Send(data []byte) error {
	return c.conn.Write(c.ctx, cws.MessageText, data)
}

func (c *wsChannel) Recv() ([]byte, error) {
	_, data, err := c.conn.Read(c.ctx)
	return data, err
}

func (c *wsChannel) Close() error {
	return c.conn.Close(cws.StatusNormalClosure, "")
}

// handleRPCSocket upgrades to WebSocket and runs a jrpc2 server on the
// connection, registered with the notifier for ticking pushes.
func (s *WebServer) handleRPCSocket(w http.ResponseWriter, r *http.Request) {
	if !validToken(s.rpc.secret, r.Header.Get("Authorization")) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.l.Warning("websocket accept: %s", err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	srv := jrpc2.NewServer(s.rpc.methods, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(&wsChannel{conn: conn, ctx: ctx})
	s.rpc.notifier.Register(srv)
	defer s.rpc.notifier.Unregister(srv)

	srv.Wait()
}

// handleFeed streams plain ticking JSON frames. Browsers cannot set an
// Authorization header on a WebSocket dial, so a token query parameter
// is accepted as well.
func (s *WebServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		if q := r.URL.Query().Get("token"); q != "" {
			auth = "Bearer " + q
		}
	}
	if !validToken(s.rpc.secret, auth) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.l.Warning("websocket accept: %s", err.Error())
		return
	}

	ch := make(chan []byte, 16)
	s.addFeed(ch)
	defer s.removeFeed(ch)

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(cws.StatusNormalClosure, "")
			return
		case b := <-ch:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(wctx, cws.MessageText, b)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
