package app

import (
	"github.com/lowaak/f3-workout/f3-workout-app/internal/countdown"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeFocusSelection UIMode = iota // Pick focus types and generate
	UIModeWorkout                      // Read the workout, run timers, export
	UIModeHistory                      // Browse and reopen past workouts
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeFocusSelection, DisplayName: "Focus Selection", KeyBinding: '1'},
	{Mode: UIModeWorkout, DisplayName: "Workout", KeyBinding: '2'},
	{Mode: UIModeHistory, DisplayName: "History", KeyBinding: '3'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// NoFocusSelectedMessage is shown when generation is requested with nothing selected
const NoFocusSelectedMessage = "Please select at least one workout type."

// GenerationStatus is the state of the workout request
type GenerationStatus int

const (
	GenerationIdle      GenerationStatus = iota // Nothing requested yet
	GenerationLoading                           // Request in flight
	GenerationSucceeded                         // Last request produced a workout
	GenerationFailed                            // Last request or attempt failed, see Error
)

func (s GenerationStatus) String() string {
	switch s {
	case GenerationLoading:
		return "Loading"
	case GenerationSucceeded:
		return "Succeeded"
	case GenerationFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

// GenerationState is what the focus screen shows about the request
type GenerationState struct {
	Status GenerationStatus
	Error  string // user-visible message, only when Failed
}

// Loading reports whether a request is in flight
func (g GenerationState) Loading() bool {
	return g.Status == GenerationLoading
}

// WorkoutView is the workout currently on screen
type WorkoutView struct {
	Text        string
	Document    workout.Document
	Types       []workout.FocusType
	EntryID     string // history entry the text belongs to, if any
	FromHistory bool   // reopened from history rather than just generated
}

// Empty reports whether there is nothing to show
func (w WorkoutView) Empty() bool {
	return w.Text == ""
}

func newWorkoutView(text string, types []workout.FocusType, entryID string, fromHistory bool) WorkoutView {
	return WorkoutView{
		Text:        text,
		Document:    workout.ParseDocument(text),
		Types:       append([]workout.FocusType(nil), types...),
		EntryID:     entryID,
		FromHistory: fromHistory,
	}
}

// TimerOverlay is the countdown panel shown above the workout
type TimerOverlay struct {
	Open  bool
	Title string
	State countdown.State
}
