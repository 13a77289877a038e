package app

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// ErrNoWorkout is returned when an action needs a workout on screen
var ErrNoWorkout = errors.New("no workout to export")

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model             *UIModel
	generationManager *GenerationManager
	history           *history.Log
	timerSettings     TimerSettings
	exportDir         string
	logger            logrus.FieldLogger
	now               func() time.Time

	// protected by mu
	mu    sync.Mutex
	timer *timerSession
}

// NewUIControllerArg holds the arguments for creating a new UIController
type NewUIControllerArg struct {
	Model             *UIModel
	GenerationManager *GenerationManager
	History           *history.Log
	TimerSettings     TimerSettings
	ExportDir         string
	Logger            logrus.FieldLogger
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(args NewUIControllerArg) *UIController {
	if args.Model == nil {
		panic("UIController: model cannot be nil")
	}
	if args.GenerationManager == nil {
		panic("UIController: generationManager cannot be nil")
	}
	if args.History == nil {
		panic("UIController: history cannot be nil")
	}
	if args.Logger == nil {
		panic("UIController: logger cannot be nil")
	}

	c := &UIController{
		model:             args.Model,
		generationManager: args.GenerationManager,
		history:           args.History,
		timerSettings:     args.TimerSettings,
		exportDir:         args.ExportDir,
		logger:            args.Logger,
		now:               time.Now,
	}
	c.model.SetHistory(c.history.Entries())
	return c
}

// OnEscapeKey closes the timer overlay if open, otherwise the application
func (c *UIController) OnEscapeKey() {
	if c.CloseTimer() {
		return
	}
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Debugf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// --- Focus Selection ---

// ToggleFocus selects or deselects a focus type and clears a stale error
func (c *UIController) ToggleFocus(focus workout.FocusType) {
	sel := c.model.ToggleFocus(focus)
	c.model.ClearGenerationError()
	c.logger.Debugf("Focus selection: %s", workout.DisplayNames(sel.Types()))
}

// GenerateWorkout requests a workout for the current selection. It is
// refused with an inline message when nothing is selected, and ignored
// while a request is in flight.
func (c *UIController) GenerateWorkout() bool {
	sel := c.model.GetSelection()
	if sel.Empty() {
		c.model.SetGeneration(GenerationState{Status: GenerationFailed, Error: NoFocusSelectedMessage})
		return false
	}
	if c.model.GetGeneration().Loading() {
		c.logger.Info("Generation already in progress")
		return false
	}
	return c.generationManager.Generate(sel.Types())
}

// --- Workout ---

// OpenTimer opens the countdown overlay for the timed line at lineIndex of
// the workout on screen. Any open countdown is torn down first.
func (c *UIController) OpenTimer(lineIndex int) bool {
	view := c.model.GetWorkout()
	if lineIndex < 0 || lineIndex >= len(view.Document.Lines) {
		c.logger.Debugf("Invalid workout line: %d", lineIndex)
		return false
	}
	line := view.Document.Lines[lineIndex]
	if !line.HasTimer() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.close()
		c.timer = nil
	}
	session, err := openTimerSession(c.model, line.TimerTitle, line.Duration, c.timerSettings, c.logger)
	if err != nil {
		c.logger.WithError(err).Warnf("Cannot open timer for %q", line.TimerTitle)
		return false
	}
	c.timer = session
	c.logger.Infof("Timer opened: %s (%d s)", line.TimerTitle, line.Duration)
	return true
}

// ToggleTimer starts or pauses the open countdown
func (c *UIController) ToggleTimer() {
	c.withTimer(func(s *timerSession) { s.timer.Toggle() })
}

// ResetTimer puts the open countdown back to its full duration
func (c *UIController) ResetTimer() {
	c.withTimer(func(s *timerSession) { s.timer.Reset() })
}

// CloseTimer tears the open countdown down. It returns false when no
// countdown was open.
func (c *UIController) CloseTimer() bool {
	c.mu.Lock()
	session := c.timer
	c.timer = nil
	c.mu.Unlock()

	if session == nil {
		return false
	}
	session.close()
	c.model.SetTimer(TimerOverlay{})
	c.logger.Debug("Timer closed")
	return true
}

func (c *UIController) withTimer(fn func(*timerSession)) {
	c.mu.Lock()
	session := c.timer
	c.mu.Unlock()
	if session == nil {
		return
	}
	fn(session)
}

// ExportWorkout writes the workout on screen to the export directory
func (c *UIController) ExportWorkout() (string, error) {
	view := c.model.GetWorkout()
	if view.Empty() {
		c.logger.Info("Nothing to export yet")
		return "", ErrNoWorkout
	}
	path, err := exportWorkout(c.exportDir, view.Text, c.now())
	if err != nil {
		c.logger.WithError(err).Error("Export failed")
		return "", err
	}
	c.logger.Infof("Workout exported to %s", path)
	return path, nil
}

// --- History ---

// ViewHistoryEntry shows a past workout in the workout view
func (c *UIController) ViewHistoryEntry(id string) bool {
	entry, ok := c.history.Get(id)
	if !ok {
		c.logger.Debugf("History entry %s not found", id)
		return false
	}
	c.CloseTimer()
	c.model.SetWorkout(newWorkoutView(entry.Workout, entry.Types, entry.ID, true))
	c.model.SetMode(UIModeWorkout)
	return true
}

// ClearHistory removes every saved workout. The workout on screen stays.
func (c *UIController) ClearHistory() {
	if err := c.history.Clear(); err != nil {
		c.logger.WithError(err).Error("Could not clear history")
	}
	c.model.SetHistory(c.history.Entries())
	c.logger.Info("History cleared")
}

// Shutdown closes the open countdown and stops the generation manager
func (c *UIController) Shutdown() {
	c.CloseTimer()
	c.generationManager.Shutdown()
}
