package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Server accepts framed connections from CLI clients on the local
// socket and dispatches requests to registered handlers. It also owns
// the optional HTTP widget surface.
type Server struct {
	log        logger.Logger
	pool       *Pool
	ws         *WebServer
	handler    map[common.UpdateType]HandlerFunc
	socketPath string
	port       int
	listener   net.Listener
	mu         sync.Mutex
}

// NewServer creates a server. ws may be nil when the HTTP surface is
// disabled. An empty socketPath keeps the platform default location.
func NewServer(l logger.Logger, pool *Pool, ws *WebServer, socketPath string, port int) *Server {
	return &Server{
		log:        l,
		pool:       pool,
		ws:         ws,
		handler:    make(map[common.UpdateType]HandlerFunc),
		socketPath: socketPath,
		port:       port,
	}
}

// RegisterHandler associates a handler with a request method.
func (s *Server) RegisterHandler(method common.UpdateType, handler HandlerFunc) {
	s.handler[method] = handler
}

// Start begins accepting connections and blocks until ctx is
// cancelled. The web surface, when configured, runs alongside.
func (s *Server) Start(ctx context.Context) error {
	if s.ws != nil {
		go func() {
			if err := s.ws.Start(); err != nil {
				s.log.Error("web server: %s", err.Error())
			}
		}()
	}

	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Error("accept: %s", err.Error())
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown closes the listener, the web surface and the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Error("closing listener: %s", err.Error())
		}
		s.listener = nil
	}

	if s.ws != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.ws.Shutdown(shutdownCtx); err != nil {
			s.log.Error("shutting down web server: %s", err.Error())
		}
	}

	if err := cleanupSocket(socketPath(s.socketPath)); err != nil {
		s.log.Error("removing socket file: %s", err.Error())
	}
	return nil
}

func (s *Server) tcpListener() (net.Listener, error) {
	l, err := net.Listen("tcp", fmt.Sprintf("%s:%d", common.TCPHost, s.port))
	if err != nil {
		return nil, fmt.Errorf("error listening: %w", err)
	}
	return l, nil
}

func (s *Server) handleConnection(conn net.Conn) {
	sconn := NewSyncConn(conn)
	defer func() {
		s.pool.Detach(sconn)
		conn.Close()
	}()
	for {
		buf, err := sconn.Read()
		if err != nil {
			if err != io.EOF {
				s.log.Warning("read: %s", err.Error())
			}
			return
		}
		if err := s.handlerWrapper(sconn, buf); err != nil {
			s.log.Warning("handle: %s", err.Error())
			return
		}
	}
}

func (s *Server) handlerWrapper(sconn *SyncConn, b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return fmt.Errorf("parsing request: %w", err)
	}
	rHandler, ok := s.handler[req.Method]
	if !ok {
		if err := sconn.Write(CreateError("unknown method: " + string(req.Method))); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
		return nil
	}
	utype, msg, err := rHandler(sconn, s.pool, req.Message)
	if err != nil {
		if werr := sconn.Write(InitError(err)); werr != nil {
			return fmt.Errorf("writing response: %w", werr)
		}
		return nil
	}
	if err := sconn.Write(MakeResult(utype, msg)); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
