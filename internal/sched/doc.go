// Package sched owns the single pending power-state schedule for the
// nodoff daemon. The Engine is a one-slot state machine: at most one
// schedule exists at a time, ticking once per second on its own
// goroutine until it fires or is cancelled. Terminal outcomes are kept
// for status reporting until the next schedule or an explicit reset.
//
// The engine does not persist state. A daemon restart starts idle.
package sched
