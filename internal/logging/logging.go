// Package logging builds the application logger. The terminal belongs to the
// UI, so records go to a rotating file and, through a hook, to the log pane.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New
type Options struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger writing to a rotating file. The returned closer
// flushes and closes the file.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if opts.File == "" {
		return nil, nil, fmt.Errorf("log file not set")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}

	out := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		DisableColors:   true,
	})
	return logger, out, nil
}

// SetLevel changes the level of logger from its text name
func SetLevel(logger *logrus.Logger, name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// LineHook forwards every record at or above its level to a sink as one
// short line, e.g. "05:31:02 WARN  Timer: alert failed".
type LineHook struct {
	mu    sync.Mutex
	level logrus.Level
	sink  func(string)
}

func NewLineHook(level logrus.Level, sink func(string)) *LineHook {
	if sink == nil {
		panic("sink is nil")
	}
	return &LineHook{level: level, sink: sink}
}

func (h *LineHook) Levels() []logrus.Level {
	return logrus.AllLevels[:h.level+1]
}

func (h *LineHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink(FormatLine(entry))
	return nil
}

// FormatLine renders entry as time, level, message and sorted fields
func FormatLine(entry *logrus.Entry) string {
	var b strings.Builder
	b.WriteString(entry.Time.Format("15:04:05"))
	fmt.Fprintf(&b, " %-5s ", strings.ToUpper(levelName(entry.Level)))
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	return b.String()
}

func levelName(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "warn"
	}
	return l.String()
}
