package nodoffcli

import (
	"encoding/json"

	"github.com/nodoff/nodoff/common"
)

// Handler defines the interface for processing daemon updates.
// Implementations receive raw JSON messages and are responsible for
// unmarshaling and processing them appropriately.
type Handler interface {
	Handle(json.RawMessage) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(json.RawMessage) error

func (h HandlerFunc) Handle(b json.RawMessage) error { return h(b) }

// NewTickingHandler creates a new handler for schedule progress updates.
// The event parameter filters updates to only those matching the
// specified ticking event; pass an empty string to receive all events.
// The callback is invoked for each matching update.
func NewTickingHandler(event common.TickingEvent, callback func(*common.TickingUpdate) error) *TickingHandler {
	return &TickingHandler{
		Event:    event,
		Callback: callback,
	}
}

// TickingHandler processes schedule progress updates from the daemon.
// It filters updates by event type and invokes a callback for matching
// updates.
type TickingHandler struct {
	Event    common.TickingEvent
	Callback func(*common.TickingUpdate) error
}

// Handle processes a raw JSON ticking message. It unmarshals the
// message, checks if it matches the configured event filter, and
// invokes the callback if applicable.
func (h *TickingHandler) Handle(m json.RawMessage) error {
	var v common.TickingUpdate
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	if h.Event != "" && v.Event != h.Event {
		return nil
	}
	return h.Callback(&v)
}
