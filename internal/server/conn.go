package server

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/nodoff/nodoff/common"
)

func intToBytes(v uint32) []byte {
	b := make([]byte, 4)
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	return b
}

func bytesToInt(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// SyncConn serializes framed reads and writes on one connection. A
// frame is a 4-byte little-endian length followed by a JSON payload.
type SyncConn struct {
	Conn     net.Conn
	rmu, wmu sync.Mutex
}

func NewSyncConn(conn net.Conn) *SyncConn {
	return &SyncConn{Conn: conn}
}

// Read returns the next frame. Oversized frames abort the connection
// instead of allocating unbounded buffers.
func (s *SyncConn) Read() ([]byte, error) {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	head := make([]byte, 4)
	if _, err := io.ReadFull(s.Conn, head); err != nil {
		return nil, err
	}
	size := bytesToInt(head)
	if size > common.MaxMessageSize {
		return nil, fmt.Errorf("message size %d exceeds limit %d", size, common.MaxMessageSize)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(s.Conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Write sends one frame.
func (s *SyncConn) Write(b []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if _, err := s.Conn.Write(intToBytes(uint32(len(b)))); err != nil {
		return err
	}
	_, err := s.Conn.Write(b)
	return err
}
