package nodoffcli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nodoff/nodoff/common"
)

// ErrDisconnect can be returned by a handler to stop the Listen loop
// without reporting an error.
var ErrDisconnect error = errors.New("disconnect")

type Dispatcher struct {
	Handlers map[common.UpdateType][]Handler
}

// AddHandler registers a handler for the given update type. Multiple
// handlers per type run in registration order.
func (d *Dispatcher) AddHandler(t common.UpdateType, h Handler) {
	if d.Handlers == nil {
		d.Handlers = make(map[common.UpdateType][]Handler)
	}
	d.Handlers[t] = append(d.Handlers[t], h)
}

// RemoveHandler drops all handlers registered for the given type.
func (d *Dispatcher) RemoveHandler(t common.UpdateType) {
	delete(d.Handlers, t)
}

func (d *Dispatcher) process(buf []byte) error {
	var res Response
	err := json.Unmarshal(buf, &res)
	if err != nil {
		return fmt.Errorf("failed to parse (%s): '%s'", err.Error(), string(buf))
	}
	if !res.Ok {
		return errors.New(res.Error)
	}
	if res.Update == nil {
		return errors.New("update missing in response")
	}
	handlers, ok := d.Handlers[res.Update.Type]
	if !ok || len(handlers) == 0 {
		return fmt.Errorf("no handler for update type %q", res.Update.Type)
	}
	for _, h := range handlers {
		if err := h.Handle(res.Update.Message); err != nil {
			return err
		}
	}
	return nil
}
