package countdown

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/events"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
)

// DefaultTickInterval is the real-time length of one countdown unit.
const DefaultTickInterval = time.Second

// Alerter plays the completion cue. A returned error is logged and ignored.
type Alerter interface {
	Play() error
}

type noAlert struct{}

func (noAlert) Play() error { return nil }

// TimerArgs holds the arguments for creating a new Timer
type TimerArgs struct {
	Title     string
	Duration  int           // seconds, must be positive
	Interval  time.Duration // defaults to DefaultTickInterval
	Scheduler Scheduler     // defaults to a TickerScheduler
	Alerter   Alerter       // defaults to silence
	Logger    logrus.FieldLogger
}

// Timer is a live countdown bound to one exercise line. It owns at most one
// tick subscription at a time; every transition out of Running cancels it.
type Timer struct {
	title     string
	interval  time.Duration
	scheduler Scheduler
	alerter   Alerter
	logger    logrus.FieldLogger

	// protected by mu
	mu         sync.Mutex
	state      State
	cancelTick func()
	generation uint64 // bumped on every cancel; ticks carrying an older value are dropped
	closed     bool

	stateEvent     *events.ChannelEvent[State]
	completedEvent *events.CallbackEvent[State]
}

// NewTimer creates an Idle timer. A non-positive duration is rejected.
func NewTimer(args TimerArgs) (*Timer, error) {
	if args.Logger == nil {
		panic("Timer: logger cannot be nil")
	}
	state, err := NewState(args.Duration)
	if err != nil {
		return nil, err
	}
	if args.Interval <= 0 {
		args.Interval = DefaultTickInterval
	}
	if args.Scheduler == nil {
		args.Scheduler = NewTickerScheduler(args.Logger)
	}
	if args.Alerter == nil {
		args.Alerter = noAlert{}
	}

	return &Timer{
		title:          args.Title,
		interval:       args.Interval,
		scheduler:      args.Scheduler,
		alerter:        args.Alerter,
		logger:         args.Logger.WithField("timer", args.Title),
		state:          state,
		stateEvent:     events.NewChannelEvent[State](true),
		completedEvent: events.NewCallbackEvent[State](false),
	}, nil
}

// Title returns the exercise label the timer was opened for
func (t *Timer) Title() string {
	return t.title
}

// State returns the current snapshot
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ListenToState registers a channel to receive state snapshots
// Returns a deregistration function that can be called to remove the listener
func (t *Timer) ListenToState(ch chan<- State) func() {
	return t.stateEvent.Listen(ch)
}

// ListenToCompletion registers a callback run once per run-to-zero, after the alert
// Returns a deregistration function that can be called to remove the listener
func (t *Timer) ListenToCompletion(callback func(State)) func() {
	return t.completedEvent.Listen(callback)
}

// Start begins or resumes the countdown.
func (t *Timer) Start() State {
	return t.transition("start", State.Start)
}

// Pause freezes a running countdown.
func (t *Timer) Pause() State {
	return t.transition("pause", State.Pause)
}

// Reset returns to Idle(total) from any state.
func (t *Timer) Reset() State {
	return t.transition("reset", State.Reset)
}

// Toggle pauses a running countdown and starts it otherwise.
func (t *Timer) Toggle() State {
	return t.transition("toggle", func(s State) State {
		if s.IsRunning() {
			return s.Pause()
		}
		return s.Start()
	})
}

// SetDuration rebinds the timer to a new total and forces Idle(total).
func (t *Timer) SetDuration(total int) error {
	next, err := NewState(total)
	if err != nil {
		return err
	}
	t.transition("set duration", func(State) State { return next })
	return nil
}

// Close tears the timer down from any state. Later commands are ignored.
func (t *Timer) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.stopTickLocked()
	t.closed = true
	state := t.state
	t.mu.Unlock()

	t.logger.Debugf("Timer: closed in %s", state)
}

func (t *Timer) transition(op string, apply func(State) State) State {
	t.mu.Lock()
	if t.closed {
		state := t.state
		t.mu.Unlock()
		t.logger.Debugf("Timer: %s ignored, timer closed", op)
		return state
	}

	prev := t.state
	next := apply(prev)
	switch {
	case next.IsRunning() && !prev.IsRunning():
		t.startTickLocked()
	case !next.IsRunning():
		t.stopTickLocked()
	}
	t.state = next
	t.mu.Unlock()

	if next != prev {
		t.logger.Debugf("Timer: %s %s -> %s", op, prev, next)
		t.stateEvent.Notify(next)
	}
	return next
}

// startTickLocked must be called with mu held
func (t *Timer) startTickLocked() {
	t.stopTickLocked()
	generation := t.generation
	t.cancelTick = t.scheduler.Every(t.interval, func() { t.onTick(generation) })
}

// stopTickLocked must be called with mu held
func (t *Timer) stopTickLocked() {
	t.generation++
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
}

func (t *Timer) onTick(generation uint64) {
	t.mu.Lock()
	if t.closed || generation != t.generation {
		t.mu.Unlock()
		return
	}
	next, completed := t.state.Tick()
	t.state = next
	if completed {
		t.stopTickLocked()
	}
	t.mu.Unlock()

	t.stateEvent.Notify(next)
	if completed {
		t.logger.Infof("Timer: %q complete", t.title)
		t.playAlert()
		t.completedEvent.Notify(next)
	}
}

// playAlert never fails the caller: the state is already Completed.
func (t *Timer) playAlert() {
	go_func_utils.Recover(t.logger, "Timer: alert", func() {
		if err := t.alerter.Play(); err != nil {
			t.logger.Warnf("Timer: alert unavailable: %v", err)
		}
	})
}
