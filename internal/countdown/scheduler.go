package countdown

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
)

// Scheduler runs fn repeatedly every interval until the returned cancel
// function is called. cancel must be safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler drives callbacks from a time.Ticker on its own goroutine.
type TickerScheduler struct {
	logger logrus.FieldLogger
}

// NewTickerScheduler creates a TickerScheduler
func NewTickerScheduler(logger logrus.FieldLogger) *TickerScheduler {
	if logger == nil {
		panic("TickerScheduler: logger cannot be nil")
	}
	return &TickerScheduler{logger: logger}
}

// Every implements Scheduler. The goroutine exits as soon as cancel is called;
// a callback already running is allowed to finish.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) func() {
	done := make(chan struct{})
	var once sync.Once

	go_func_utils.SafeGo(s.logger, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// a cancel that raced the tick wins
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	})

	return func() {
		once.Do(func() { close(done) })
	}
}
