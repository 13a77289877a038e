package go_func_utils

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// SafeGo runs fn on a new goroutine. The terminal UI owns stdout, so a panic
// is written to the logger with its stack before being re-raised.
func SafeGo(logger logrus.FieldLogger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithField("stack", string(debug.Stack())).Errorf("PANIC: %v", r)
				panic(r)
			}
		}()
		fn()
	}()
}

// Recover calls fn and converts a panic into a logged error. It returns true
// when fn completed normally.
func Recover(logger logrus.FieldLogger, what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("stack", string(debug.Stack())).Errorf("%s: recovered panic: %v", what, r)
			ok = false
		}
	}()
	fn()
	return true
}
