package countdown

import (
	"errors"
	"fmt"
)

// ErrInvalidDuration is returned when a timer is bound to a non-positive duration.
var ErrInvalidDuration = errors.New("countdown: duration must be a positive number of seconds")

// Status is the variant tag of a State.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is an immutable countdown snapshot. Its fields can only change through
// the transition methods, which keep remaining within [0, total] and tie
// remaining == 0 to StatusCompleted.
type State struct {
	status    Status
	total     int
	remaining int
}

// NewState returns Idle(total).
func NewState(total int) (State, error) {
	if total <= 0 {
		return State{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, total)
	}
	return State{status: StatusIdle, total: total, remaining: total}, nil
}

func (s State) Status() Status  { return s.status }
func (s State) Total() int      { return s.total }
func (s State) Remaining() int  { return s.remaining }
func (s State) IsRunning() bool { return s.status == StatusRunning }

// Start moves Idle(total) and Paused(r) to Running. Running and Completed are
// unchanged; only Reset leaves Completed.
func (s State) Start() State {
	switch s.status {
	case StatusIdle, StatusPaused:
		s.status = StatusRunning
	}
	return s
}

// Pause freezes a running countdown.
func (s State) Pause() State {
	if s.status == StatusRunning {
		s.status = StatusPaused
	}
	return s
}

// Reset returns Idle(total) from any state.
func (s State) Reset() State {
	return State{status: StatusIdle, total: s.total, remaining: s.total}
}

// Tick consumes one time unit. completed is true only for the Running(1) ->
// Completed transition; ticks outside Running change nothing.
func (s State) Tick() (next State, completed bool) {
	if s.status != StatusRunning {
		return s, false
	}
	s.remaining--
	if s.remaining > 0 {
		return s, false
	}
	s.remaining = 0
	s.status = StatusCompleted
	return s, true
}

// Progress is (total-remaining)/total: 0 when idle, 1 when completed.
func (s State) Progress() float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(s.total-s.remaining) / float64(s.total)
}

func (s State) String() string {
	switch s.status {
	case StatusIdle:
		return fmt.Sprintf("Idle(%d)", s.total)
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("%s(%d)", s.status, s.remaining)
	}
}
