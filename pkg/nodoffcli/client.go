// Package nodoffcli implements the client side of the nodoff daemon
// protocol. It connects over a Unix socket (named pipe on Windows) with
// a TCP fallback, invokes daemon methods and listens for pushed updates.
package nodoffcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/nodoff/nodoff/common"
)

// dialFunc points to the stdlib dialer so tests can inject connections.
var dialFunc = net.Dial

// dialURIFunc points to the platform dialURI so tests can inject connections.
var dialURIFunc = dialURI

// ensureDaemonFunc points to ensureDaemon so tests can skip spawning.
var ensureDaemonFunc = ensureDaemon

type Client struct {
	mu     *sync.RWMutex
	d      *Dispatcher
	conn   net.Conn
	listen bool
}

// NewClient connects to the daemon, spawning it first if it is not
// already running.
func NewClient() (*Client, error) {
	if err := ensureDaemonFunc(); err != nil {
		return nil, fmt.Errorf("failed to start daemon: %w", err)
	}
	conn, err := dial()
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

// NewClientWithURI connects to the daemon at the given URI without
// spawning one. An empty URI falls back to NewClient.
func NewClientWithURI(rawURI string) (*Client, error) {
	if strings.TrimSpace(rawURI) == "" {
		return NewClient()
	}
	uri, err := ParseDaemonURI(rawURI)
	if err != nil {
		return nil, err
	}
	conn, err := dialURIFunc(uri)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

func newClient(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		mu:   &sync.RWMutex{},
		d: &Dispatcher{
			Handlers: make(map[common.UpdateType][]Handler),
		},
	}
}

// AddHandler registers a handler for pushed updates of the given type.
func (c *Client) AddHandler(t common.UpdateType, h Handler) {
	c.d.AddHandler(t, h)
}

// RemoveHandler drops all handlers registered for the given type.
func (c *Client) RemoveHandler(t common.UpdateType) {
	c.d.RemoveHandler(t)
}

// Listen blocks reading pushed updates and dispatching them to the
// registered handlers until a handler returns ErrDisconnect, Disconnect
// is called or the connection drops.
func (c *Client) Listen() (err error) {
	c.listen = true
	defer c.conn.Close()
	for c.listen {
		c.mu.RLock()
		var buf []byte
		buf, err = read(c.conn)
		if err != nil {
			c.mu.RUnlock()
			err = fmt.Errorf("error reading: %s", err.Error())
			return
		}
		err = c.d.process(buf)
		if err != nil {
			c.mu.RUnlock()
			if errors.Is(err, ErrDisconnect) {
				return nil
			}
			err = fmt.Errorf("error processing: %s", err.Error())
			return
		}
		c.mu.RUnlock()
	}
	return
}

// Disconnect stops a running Listen loop and closes the connection.
func (c *Client) Disconnect() error {
	c.listen = false
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Close releases the client connection.
func (c *Client) Close() error {
	return c.Disconnect()
}

func (c *Client) invoke(method common.UpdateType, message any) (json.RawMessage, error) {
	// block updates listener while invoking a method
	// to retrieve the message update here instead
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, err := json.Marshal(&Request{
		Method:  method,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	err = write(c.conn, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", method, err.Error())
	}
	var res Response
	err = json.Unmarshal(buf, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", method, err.Error())
	}
	if !res.Ok {
		return nil, errors.New(res.Error)
	}
	return res.Update.Message, nil
}
