// Package history keeps the last generated workouts.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// ErrCorrupt is returned by a Store whose saved data cannot be decoded
var ErrCorrupt = errors.New("history data is corrupt")

// Entry is one generated workout
type Entry struct {
	ID        string              `json:"id"`
	Timestamp int64               `json:"timestamp"` // Unix milliseconds
	Types     []workout.FocusType `json:"types"`
	Workout   string              `json:"workout"`
}

func newEntry(types []workout.FocusType, text string, now time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: now.UnixMilli(),
		Types:     append([]workout.FocusType(nil), types...),
		Workout:   text,
	}
}

// Time returns the creation time of the entry
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Label is the one-line description used in lists
func (e Entry) Label() string {
	return e.Time().Format("2006-01-02 15:04") + "  " + workout.DisplayNames(e.Types)
}

// Store persists the whole history as one list, most recent first
type Store interface {
	ReadAll() ([]Entry, error)
	WriteAll(entries []Entry) error
	Clear() error
}
