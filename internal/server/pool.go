package server

import (
	"sync"

	"github.com/nodoff/nodoff/pkg/logger"
)

// Pool tracks the connections attached to the ticking feed. There is
// one topic: every attached connection gets every update.
type Pool struct {
	mu    sync.Mutex
	log   logger.Logger
	conns map[*SyncConn]struct{}
}

func NewPool(l logger.Logger) *Pool {
	return &Pool{log: l, conns: make(map[*SyncConn]struct{})}
}

// Attach registers a connection for updates.
func (p *Pool) Attach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[conn] = struct{}{}
}

// Detach removes a connection from the feed. The connection stays
// open; its request loop owns the lifetime.
func (p *Pool) Detach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, conn)
}

// Count returns the number of attached connections.
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns)
}

// Broadcast writes one frame to every attached connection. A
// connection that fails the write is detached and closed; the
// countdown must not stall on a dead client.
func (p *Pool) Broadcast(data []byte) {
	p.mu.Lock()
	conns := make([]*SyncConn, 0, len(p.conns))
	for c := range p.conns {
		conns = append(conns, c)
	}
	p.mu.Unlock()

	for _, c := range conns {
		if err := c.Write(data); err != nil {
			p.log.Warning("dropping attached connection: %s", err.Error())
			p.mu.Lock()
			delete(p.conns, c)
			p.mu.Unlock()
			_ = c.Conn.Close()
		}
	}
}
