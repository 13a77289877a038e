package app

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/events"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// UIModel holds everything the views render. Every setter publishes a
// snapshot on the matching event.
type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	selectionEvent        *events.ChannelEvent[workout.Selection]
	selection             workout.Selection
	generationEvent       *events.ChannelEvent[GenerationState]
	generation            GenerationState
	workoutEvent          *events.ChannelEvent[WorkoutView]
	workout               WorkoutView
	historyEvent          *events.ChannelEvent[[]history.Entry]
	history               []history.Entry
	timerEvent            *events.ChannelEvent[TimerOverlay]
	timer                 TimerOverlay
	persistence           *uiModelPersistence
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                logrus.FieldLogger
}

const maxLogLines = 1000

// NewUIModelArg holds the arguments for creating a new UIModel
type NewUIModelArg struct {
	Logger    logrus.FieldLogger
	LogChan   <-chan string // lines for the log pane
	StatePath string        // preferences file, empty to disable
}

func NewUIModel(args NewUIModelArg) *UIModel {
	if args.Logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if args.LogChan == nil {
		panic("UIModel: log channel cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	persistence := newUIModelPersistence(args.StatePath, args.Logger)

	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeFocusSelection},
		selectionEvent:        events.NewChannelEvent[workout.Selection](true),
		selection:             persistence.getLastSelection(),
		generationEvent:       events.NewChannelEvent[GenerationState](true),
		workoutEvent:          events.NewChannelEvent[WorkoutView](true),
		historyEvent:          events.NewChannelEvent[[]history.Entry](true),
		timerEvent:            events.NewChannelEvent[TimerOverlay](true),
		persistence:           persistence,
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                args.Logger,
	}

	// Replayed to late listeners
	model.selectionEvent.Notify(model.selection)
	model.generationEvent.Notify(model.generation)
	model.workoutEvent.Notify(model.workout)
	model.historyEvent.Notify(nil)
	model.timerEvent.Notify(model.timer)

	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.readFromLogChannel(ctx, args.LogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Debug("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Debug("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToSelection registers a channel to receive focus selection changes
func (m *UIModel) ListenToSelection(ch chan<- workout.Selection) func() {
	return m.selectionEvent.Listen(ch)
}

// GetSelection returns the selected focus types
func (m *UIModel) GetSelection() workout.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selection
}

// ToggleFocus flips one focus type, saves the selection and notifies listeners
func (m *UIModel) ToggleFocus(focus workout.FocusType) workout.Selection {
	m.mu.Lock()
	m.selection = m.selection.Toggle(focus)
	sel := m.selection
	m.persistence.setLastSelection(sel)
	m.mu.Unlock()

	m.selectionEvent.Notify(sel)
	return sel
}

// ListenToGeneration registers a channel to receive generation state changes
func (m *UIModel) ListenToGeneration(ch chan<- GenerationState) func() {
	return m.generationEvent.Listen(ch)
}

// GetGeneration returns the current generation state
func (m *UIModel) GetGeneration() GenerationState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// SetGeneration updates the generation state and notifies listeners
func (m *UIModel) SetGeneration(state GenerationState) {
	m.mu.Lock()
	if m.generation == state {
		m.mu.Unlock()
		return
	}
	m.generation = state
	m.mu.Unlock()

	m.generationEvent.Notify(state)
}

// ClearGenerationError drops a stale error message, keeping other states
func (m *UIModel) ClearGenerationError() {
	m.mu.Lock()
	if m.generation.Status != GenerationFailed {
		m.mu.Unlock()
		return
	}
	m.generation = GenerationState{Status: GenerationIdle}
	state := m.generation
	m.mu.Unlock()

	m.generationEvent.Notify(state)
}

// ListenToWorkout registers a channel to receive the workout on screen
func (m *UIModel) ListenToWorkout(ch chan<- WorkoutView) func() {
	return m.workoutEvent.Listen(ch)
}

// GetWorkout returns the workout on screen
func (m *UIModel) GetWorkout() WorkoutView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workout
}

// SetWorkout replaces the workout on screen and notifies listeners
func (m *UIModel) SetWorkout(view WorkoutView) {
	m.mu.Lock()
	m.workout = view
	m.mu.Unlock()

	m.workoutEvent.Notify(view)
}

// ListenToHistory registers a channel to receive history snapshots
func (m *UIModel) ListenToHistory(ch chan<- []history.Entry) func() {
	return m.historyEvent.Listen(ch)
}

// GetHistory returns a copy of the history entries, most recent first
func (m *UIModel) GetHistory() []history.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]history.Entry(nil), m.history...)
}

// SetHistory replaces the history snapshot and notifies listeners
func (m *UIModel) SetHistory(entries []history.Entry) {
	entries = append([]history.Entry(nil), entries...)
	m.mu.Lock()
	m.history = entries
	m.mu.Unlock()

	m.historyEvent.Notify(entries)
}

// ListenToTimer registers a channel to receive timer overlay changes
func (m *UIModel) ListenToTimer(ch chan<- TimerOverlay) func() {
	return m.timerEvent.Listen(ch)
}

// GetTimer returns the timer overlay state
func (m *UIModel) GetTimer() TimerOverlay {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timer
}

// SetTimer updates the timer overlay and notifies listeners
func (m *UIModel) SetTimer(overlay TimerOverlay) {
	m.mu.Lock()
	if m.timer == overlay {
		m.mu.Unlock()
		return
	}
	m.timer = overlay
	m.mu.Unlock()

	m.timerEvent.Notify(overlay)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
