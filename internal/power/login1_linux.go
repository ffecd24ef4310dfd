package power

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

const (
	login1Dest  = "org.freedesktop.login1"
	login1Path  = "/org/freedesktop/login1"
	login1Iface = login1Dest + ".Manager"

	capabilityYes       = "yes"
	capabilityChallenge = "challenge"
)

// capabilityTimeout bounds the Can* probes; Dispatch uses the
// caller's context instead.
var capabilityTimeout = 5 * time.Second

// login1Call pairs a manager method with the capability probe that
// gates it.
type login1Call struct {
	method     string
	capability string
}

var login1Calls = map[common.Action]login1Call{
	common.ActionHibernate: {login1Iface + ".Hibernate", login1Iface + ".CanHibernate"},
	common.ActionSleep:     {login1Iface + ".Suspend", login1Iface + ".CanSuspend"},
	common.ActionShutdown:  {login1Iface + ".PowerOff", login1Iface + ".CanPowerOff"},
}

// login1Dispatcher drives logind over the system bus. Calls pass
// interactive=false so a missing polkit grant fails instead of
// prompting a session that nobody is watching.
type login1Dispatcher struct {
	conn *dbus.Conn
	log  logger.Logger
}

func newLogin1Dispatcher(l logger.Logger) (*login1Dispatcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return &login1Dispatcher{conn: conn, log: l}, nil
}

func (d *login1Dispatcher) obj() dbus.BusObject {
	return d.conn.Object(login1Dest, dbus.ObjectPath(login1Path))
}

func (d *login1Dispatcher) Dispatch(ctx context.Context, action common.Action) error {
	call, ok := login1Calls[action]
	if !ok {
		return &DispatchError{Action: string(action), Err: fmt.Errorf("unknown action")}
	}
	if err := d.Supported(action); err != nil {
		return &DispatchError{Action: string(action), Err: err}
	}
	d.log.Info("login1: calling %s", call.method)
	if c := d.obj().CallWithContext(ctx, call.method, 0, false); c.Err != nil {
		return &DispatchError{Action: string(action), Err: c.Err}
	}
	return nil
}

func (d *login1Dispatcher) Supported(action common.Action) error {
	call, ok := login1Calls[action]
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	result, err := d.checkCapability(call.capability)
	if err != nil {
		return fmt.Errorf("%s check failed: %w", call.capability, err)
	}
	if result != capabilityYes && result != capabilityChallenge {
		return &CapabilityError{Required: call.capability + " (got " + result + ")"}
	}
	return nil
}

func (d *login1Dispatcher) checkCapability(method string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), capabilityTimeout)
	defer cancel()
	call := d.obj().CallWithContext(ctx, method, 0)
	if call.Err != nil {
		return "", call.Err
	}
	var result string
	if err := call.Store(&result); err != nil {
		return "", err
	}
	return result, nil
}

func (d *login1Dispatcher) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
