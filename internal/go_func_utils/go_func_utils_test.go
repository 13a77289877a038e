package go_func_utils

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestSafeGo_RunsFunction(t *testing.T) {
	logger, _ := test.NewNullLogger()
	done := make(chan struct{})
	SafeGo(logger, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("function did not run")
	}
}

func TestRecover_SwallowsPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()

	ok := Recover(logger, "alert", func() { panic("no audio device") })

	assert.False(t, ok)
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		assert.Contains(t, hook.LastEntry().Message, "no audio device")
	}
}

func TestRecover_NormalReturn(t *testing.T) {
	logger, hook := test.NewNullLogger()
	called := false

	ok := Recover(logger, "alert", func() { called = true })

	assert.True(t, ok)
	assert.True(t, called)
	assert.Empty(t, hook.AllEntries())
}
