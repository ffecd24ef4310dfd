package server

import (
	"context"
	"errors"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/pkg/logger"
)

// JSON-RPC error codes for scheduling failures.
const (
	codeAlreadyRunning = jrpc2.Code(-32001)
	codeNotRunning     = jrpc2.Code(-32002)
	codeInvalidTarget  = jrpc2.Code(-32003)
	codeNoSchedule     = jrpc2.Code(-32004)
	codeInvalidParams  = jrpc2.Code(-32602)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC rejects everything)
	Version   string // Daemon version
	Commit    string // Git commit
	BuildType string // Build type
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers.
type RPCServer struct {
	bridge   jhttp.Bridge
	methods  handler.Map
	notifier *RPCNotifier
	secret   string
	core     Core
}

// NewRPCServer wires the method handlers and the HTTP bridge.
func NewRPCServer(l logger.Logger, core Core, cfg *RPCConfig) *RPCServer {
	rs := &RPCServer{
		secret:   cfg.Secret,
		core:     core,
		notifier: NewRPCNotifier(l),
	}
	rs.methods = handler.Map{
		"power.schedule":    handler.New(rs.powerSchedule),
		"power.cancel":      handler.New(rs.powerCancel),
		"power.status":      handler.New(rs.powerStatus),
		"power.reset":       handler.New(rs.powerReset),
		"power.actions":     handler.New(rs.powerActions),
		"system.getVersion": handler.New(rs.systemGetVersion),
	}
	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResponse, error) {
	return rs.core.Version(), nil
}

func (rs *RPCServer) powerSchedule(_ context.Context, p *common.ScheduleParams) (*common.StatusDetail, error) {
	detail, err := rs.core.Schedule(p)
	if err != nil {
		return nil, rpcError(err)
	}
	return detail, nil
}

func (rs *RPCServer) powerCancel(_ context.Context) (*common.StatusDetail, error) {
	detail, err := rs.core.Cancel()
	if err != nil {
		return nil, rpcError(err)
	}
	return detail, nil
}

func (rs *RPCServer) powerStatus(_ context.Context) (*common.StatusDetail, error) {
	return rs.core.Status(), nil
}

func (rs *RPCServer) powerReset(_ context.Context) (*common.StatusDetail, error) {
	detail, err := rs.core.Reset()
	if err != nil {
		return nil, rpcError(err)
	}
	return detail, nil
}

func (rs *RPCServer) powerActions(_ context.Context) (*common.ActionsResponse, error) {
	return rs.core.Actions(), nil
}

// rpcError maps engine errors onto wire codes. Anything unmapped is a
// parameter problem.
func rpcError(err error) error {
	var code jrpc2.Code
	switch {
	case errors.Is(err, sched.ErrAlreadyRunning):
		code = codeAlreadyRunning
	case errors.Is(err, sched.ErrNotRunning):
		code = codeNotRunning
	case errors.Is(err, sched.ErrInvalidTarget):
		code = codeInvalidTarget
	case errors.Is(err, sched.ErrNoSchedule):
		code = codeNoSchedule
	default:
		code = codeInvalidParams
	}
	return &jrpc2.Error{Code: code, Message: err.Error()}
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
