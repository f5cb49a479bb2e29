package server

import (
	"time"

	"github.com/coder/quartz"
)

// RoundTimer bounds how long a round may stay active. Each Arm starts a new
// generation for the room; an expiry only counts if its generation is still
// current when the hub processes it.
//
// Arm, Disarm and Current must be called from the hub goroutine. The expire
// callback runs on the clock's goroutine and must hand off to the hub.
type RoundTimer struct {
	clock       quartz.Clock
	timeout     time.Duration
	expire      func(room string, generation uint64)
	timers      map[string]*quartz.Timer
	generations map[string]uint64
}

// NewRoundTimer creates a timer; a zero timeout disables it
func NewRoundTimer(clock quartz.Clock, timeout time.Duration, expire func(room string, generation uint64)) *RoundTimer {
	return &RoundTimer{
		clock:       clock,
		timeout:     timeout,
		expire:      expire,
		timers:      make(map[string]*quartz.Timer),
		generations: make(map[string]uint64),
	}
}

// Enabled reports whether rounds are bounded at all
func (t *RoundTimer) Enabled() bool {
	return t != nil && t.timeout > 0
}

// Arm (re)starts the room's countdown
func (t *RoundTimer) Arm(room string) {
	if !t.Enabled() {
		return
	}
	t.Disarm(room)

	t.generations[room]++
	generation := t.generations[room]
	t.timers[room] = t.clock.AfterFunc(t.timeout, func() {
		t.expire(room, generation)
	}, "round", room)
}

// Disarm stops the room's countdown, if any
func (t *RoundTimer) Disarm(room string) {
	if !t.Enabled() {
		return
	}
	if timer, ok := t.timers[room]; ok {
		timer.Stop()
		delete(t.timers, room)
	}
}

// Current reports whether generation is the room's live countdown
func (t *RoundTimer) Current(room string, generation uint64) bool {
	if !t.Enabled() {
		return false
	}
	_, armed := t.timers[room]
	return armed && t.generations[room] == generation
}
