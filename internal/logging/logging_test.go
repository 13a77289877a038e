package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := New(Options{File: path, Level: "debug", MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	logger.WithField("id", 7).Debug("hello")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "msg=hello")
	assert.Contains(t, string(raw), "id=7")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "a.log"), Level: "chatty"})
	assert.Error(t, err)

	_, _, err = New(Options{Level: "info"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	logger := logrus.New()
	require.NoError(t, SetLevel(logger, "warn"))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Error(t, SetLevel(logger, "nope"))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestLineHook(t *testing.T) {
	var lines []string
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(NewLineHook(logrus.InfoLevel, func(s string) { lines = append(lines, s) }))

	logger.Debug("hidden")
	logger.WithFields(logrus.Fields{"b": 2, "a": 1}).Warn("Timer: alert failed")
	logger.Info("shown")

	require.Len(t, lines, 2)
	assert.Regexp(t, `^\d\d:\d\d:\d\d WARN  Timer: alert failed a=1 b=2$`, lines[0])
	assert.Regexp(t, `INFO  shown$`, lines[1])
}

func TestFormatLine(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 5, 31, 2, 0, time.UTC),
		Level:   logrus.ErrorLevel,
		Message: "boom",
		Data:    logrus.Fields{},
	}
	assert.Equal(t, "05:31:02 ERROR boom", FormatLine(entry))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
