package sched

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/pkg/logger"
)

var (
	// ErrAlreadyRunning is returned by Start while a schedule is live.
	ErrAlreadyRunning = errors.New("a schedule is already running")
	// ErrNotRunning is returned by Cancel when no schedule is live.
	ErrNotRunning = errors.New("no schedule is running")
	// ErrInvalidTarget is returned by Start for targets at or before now.
	ErrInvalidTarget = errors.New("target time is not in the future")
	// ErrNoSchedule is returned by Reset when there is nothing to clear.
	ErrNoSchedule = errors.New("no schedule to reset")
	// ErrClosed is returned once the engine has shut down.
	ErrClosed = errors.New("engine is closed")
)

const (
	// DefaultTick is the countdown granularity.
	DefaultTick = time.Second

	// dispatchTimeout bounds a single power-state dispatch. The action
	// either lands or fails within this window; the engine never retries.
	dispatchTimeout = 30 * time.Second

	eventBuffer = 64
)

// Dispatcher performs the actual power-state transition once the
// countdown reaches zero.
type Dispatcher interface {
	Dispatch(ctx context.Context, action common.Action) error
}

// Options tune the engine. The zero value uses defaults.
type Options struct {
	// Tick overrides the countdown granularity. Values <= 0 mean
	// DefaultTick. Tests shrink this to milliseconds.
	Tick time.Duration
}

// Engine owns the single pending schedule. All exported methods are
// safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	log    logger.Logger
	disp   Dispatcher
	tick   time.Duration
	cur    *schedule
	events chan Event
	closed bool
}

// New creates an idle engine. opts may be nil.
func New(l logger.Logger, d Dispatcher, opts *Options) *Engine {
	tick := DefaultTick
	if opts != nil && opts.Tick > 0 {
		tick = opts.Tick
	}
	return &Engine{
		log:    l,
		disp:   d,
		tick:   tick,
		events: make(chan Event, eventBuffer),
	}
}

// Events exposes the tick stream. The channel is closed by Close.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Start arms a schedule for action with the given target time. mode
// records how the target was derived and is echoed back in status.
// Exactly one schedule may be live; terminal schedules are replaced.
func (e *Engine) Start(action common.Action, mode common.Mode, target time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.cur != nil && e.cur.state == common.StateRunning {
		return ErrAlreadyRunning
	}
	if !target.After(time.Now()) {
		return ErrInvalidTarget
	}
	sc := &schedule{
		action:    action,
		mode:      mode,
		target:    target,
		state:     common.StateRunning,
		cancelled: make(chan struct{}),
	}
	e.cur = sc
	e.log.Info("schedule started: %s at %s (%s)", action, target.Format(time.RFC3339), mode)
	e.emitLocked(Event{
		Kind:      common.TickProgress,
		State:     sc.state,
		Action:    sc.action,
		Mode:      sc.mode,
		Target:    sc.target,
		Remaining: time.Until(sc.target),
	})
	go e.run(sc)
	return nil
}

// Cancel stops the live schedule. The losing tick, if one is already
// waiting on the lock, observes the cancelled state and stands down.
func (e *Engine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil || e.cur.state != common.StateRunning {
		return ErrNotRunning
	}
	sc := e.cur
	sc.state = common.StateCancelled
	close(sc.cancelled)
	e.log.Info("schedule cancelled: %s", sc.action)
	e.emitLocked(Event{
		Kind:   common.TickCancelled,
		State:  sc.state,
		Action: sc.action,
		Mode:   sc.mode,
		Target: sc.target,
	})
	return nil
}

// Reset clears a terminal schedule so status reports standby again.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil {
		return ErrNoSchedule
	}
	if e.cur.state == common.StateRunning {
		return ErrAlreadyRunning
	}
	e.cur = nil
	return nil
}

// Status returns a point-in-time copy of the engine state.
func (e *Engine) Status() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil {
		return Snapshot{State: common.StateIdle}
	}
	sc := e.cur
	var remaining time.Duration
	if sc.state == common.StateRunning {
		remaining = time.Until(sc.target)
		if remaining < 0 {
			remaining = 0
		}
	}
	return Snapshot{
		State:         sc.state,
		Action:        sc.action,
		Mode:          sc.mode,
		Target:        sc.target,
		Remaining:     remaining,
		DispatchError: sc.dispatchErr,
	}
}

// Close cancels any live schedule and closes the event stream. The
// engine cannot be restarted.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	if e.cur != nil && e.cur.state == common.StateRunning {
		e.cur.state = common.StateCancelled
		close(e.cur.cancelled)
	}
	e.closed = true
	close(e.events)
	return nil
}

// run drives one schedule to a terminal state. It re-checks the state
// under the lock on every wakeup so a concurrent Cancel always wins
// over a tick that was about to fire.
func (e *Engine) run(sc *schedule) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-sc.cancelled:
			return
		case <-ticker.C:
		}

		e.mu.Lock()
		if e.cur != sc || sc.state != common.StateRunning {
			e.mu.Unlock()
			return
		}
		remaining := time.Until(sc.target)
		if remaining > 0 {
			e.emitLocked(Event{
				Kind:      common.TickProgress,
				State:     sc.state,
				Action:    sc.action,
				Mode:      sc.mode,
				Target:    sc.target,
				Remaining: remaining,
			})
			e.mu.Unlock()
			continue
		}
		sc.state = common.StateFired
		e.log.Info("schedule fired: %s", sc.action)
		e.emitLocked(Event{
			Kind:   common.TickFired,
			State:  sc.state,
			Action: sc.action,
			Mode:   sc.mode,
			Target: sc.target,
		})
		e.mu.Unlock()

		e.dispatch(sc)
		return
	}
}

// dispatch hands the fired action to the dispatcher. Failure is
// recorded on the schedule and surfaced through status; the state
// stays fired and nothing is retried.
func (e *Engine) dispatch(sc *schedule) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	err := e.disp.Dispatch(ctx, sc.action)
	if err == nil {
		return
	}
	e.log.Error("dispatch failed for %s: %s", sc.action, err.Error())
	e.mu.Lock()
	sc.dispatchErr = err.Error()
	e.emitLocked(Event{
		Kind:   common.TickDispatchError,
		State:  sc.state,
		Action: sc.action,
		Mode:   sc.mode,
		Target: sc.target,
		Err:    sc.dispatchErr,
	})
	e.mu.Unlock()
}

// emitLocked pushes an event without blocking the engine. Callers hold
// e.mu. A full channel drops the event; a slow observer must not stall
// the countdown.
func (e *Engine) emitLocked(ev Event) {
	if e.closed {
		return
	}
	select {
	case e.events <- ev:
	default:
		e.log.Warning("event channel full, dropping %s event", string(ev.Kind))
	}
}
