package app

import (
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Focus Selection Mode ---

	// SetSelection marks the selected focus types
	SetSelection(sel workout.Selection)

	// SetGenerationState shows the loading indicator or inline error
	SetGenerationState(state GenerationState)

	// --- Workout Mode ---

	// SetWorkout renders the workout document
	SetWorkout(view WorkoutView)

	// SetTimerOverlay shows, updates or hides the countdown overlay
	SetTimerOverlay(overlay TimerOverlay)

	// --- History Mode ---

	SetHistory(entries []history.Entry)
}
