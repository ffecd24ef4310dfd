package power

import "fmt"

// DispatchError wraps any failure to execute a power-state transition.
type DispatchError struct {
	Action string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Action, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// CapabilityError indicates that logind refuses the action on this host.
type CapabilityError struct {
	Required string
}

func (e *CapabilityError) Error() string {
	return "action not allowed (requires " + e.Required + ")"
}

var (
	_ error = (*DispatchError)(nil)
	_ error = (*CapabilityError)(nil)
)
