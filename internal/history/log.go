package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

const DefaultCapacity = 10

// ErrStoreUnavailable is returned by Append when the store could not be read
// at load time. The log then keeps entries in memory only, so data it never
// saw is not overwritten.
var ErrStoreUnavailable = errors.New("history store unavailable")

// Log is a bounded, most-recent-first list of entries backed by a Store.
// It is safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	store    Store
	capacity int
	entries  []Entry
	logger   logrus.FieldLogger
	now      func() time.Time
	detached bool // store unreadable at load; writes are skipped until Clear
}

// NewLog loads the entries already in store. Corrupt data is dropped and the
// store cleared. Any other read failure leaves the store untouched and the
// log runs in memory only.
func NewLog(store Store, capacity int, logger logrus.FieldLogger) *Log {
	if store == nil {
		panic("store is nil")
	}
	if logger == nil {
		panic("logger is nil")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	l := &Log{
		store:    store,
		capacity: capacity,
		logger:   logger,
		now:      time.Now,
	}

	entries, err := store.ReadAll()
	switch {
	case errors.Is(err, ErrCorrupt):
		logger.WithError(err).Warn("History: discarding corrupt history")
		if err := store.Clear(); err != nil {
			logger.WithError(err).Error("History: clear after load failure")
		}
		return l
	case err != nil:
		logger.WithError(err).Error("History: store unreadable, history will not be saved this session")
		l.detached = true
		return l
	}
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	l.entries = entries
	logger.WithField("count", len(entries)).Debug("History: loaded")
	return l
}

// Append records a new workout at the front and drops the oldest entries
// beyond capacity. The entry is kept in memory even if saving fails.
func (l *Log) Append(types []workout.FocusType, text string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := newEntry(types, text, l.now())
	next := make([]Entry, 0, min(len(l.entries)+1, l.capacity))
	next = append(next, entry)
	for _, e := range l.entries {
		if len(next) == l.capacity {
			break
		}
		next = append(next, e)
	}
	l.entries = next

	if l.detached {
		return entry, fmt.Errorf("history: save: %w", ErrStoreUnavailable)
	}
	if err := l.store.WriteAll(next); err != nil {
		return entry, fmt.Errorf("history: save: %w", err)
	}
	l.logger.WithFields(logrus.Fields{"id": entry.ID, "count": len(next)}).Debug("History: appended")
	return entry, nil
}

// Entries returns a copy of the entries, most recent first
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Get returns the entry with the given id
func (l *Log) Get(id string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clear empties the log and the store
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	if err := l.store.Clear(); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	// the store is now known to be empty, so it is safe to write again
	l.detached = false
	return nil
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Log) Capacity() int {
	return l.capacity
}
