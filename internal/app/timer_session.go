package app

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/countdown"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
)

// TimerSettings configures the countdowns opened from the workout view
type TimerSettings struct {
	Interval  time.Duration       // length of one countdown second
	Scheduler countdown.Scheduler // nil for real tickers
	Alerter   countdown.Alerter   // completion cue
}

// timerSession binds one open countdown to the model's timer overlay. The
// countdown lives until close, whatever state it is in.
type timerSession struct {
	timer      *countdown.Timer
	unregister func()
	stopChan   chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

func openTimerSession(model *UIModel, title string, seconds int, settings TimerSettings, logger logrus.FieldLogger) (*timerSession, error) {
	timer, err := countdown.NewTimer(countdown.TimerArgs{
		Title:     title,
		Duration:  seconds,
		Interval:  settings.Interval,
		Scheduler: settings.Scheduler,
		Alerter:   settings.Alerter,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	s := &timerSession{
		timer:    timer,
		stopChan: make(chan struct{}),
	}

	stateChan := make(chan countdown.State, 1)
	s.unregister = timer.ListenToState(stateChan)
	model.SetTimer(TimerOverlay{Open: true, Title: title, State: timer.State()})

	s.wg.Add(1)
	go_func_utils.SafeGo(logger, func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.stopChan:
				return
			case <-stateChan:
				// the channel only signals; the timer holds the latest state
				model.SetTimer(TimerOverlay{Open: true, Title: title, State: timer.State()})
			}
		}
	})
	return s, nil
}

// close tears the countdown down and waits for the forwarding goroutine
func (s *timerSession) close() {
	s.closeOnce.Do(func() {
		s.timer.Close()
		s.unregister()
		close(s.stopChan)
		s.wg.Wait()
	})
}
