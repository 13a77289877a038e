package app

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// Page names for tview.Pages
const (
	pageFocusSelection = "focus_selection"
	pageWorkout        = "workout"
	pageHistory        = "history"

	pageMain  = "main"
	pageTimer = "timer"
)

const modeKeysHint = "[yellow]1[white] Focus  |  [yellow]2[white] Workout  |  [yellow]3[white] History  |  [yellow]Tab[white] Next Pane  |  [yellow]Esc[white] Quit"

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      logrus.FieldLogger
	app         *tview.Application
	currentMode UIMode
	stopped     atomic.Bool

	// root holds the main layout and the timer overlay above it
	root *tview.Pages
	// pages holds one page per mode
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView  *tview.TextView
	mainFlex *tview.Flex

	// Focus Selection mode components
	focusFlex       *tview.Flex
	focusList       *tview.List
	focusStatus     *tview.TextView
	focusTabWidgets []tview.Primitive
	lastSelection   workout.Selection
	generation      GenerationState

	// Workout mode components
	workoutFlex       *tview.Flex
	workoutList       *tview.List
	workoutDetail     *tview.TextView
	workoutTabWidgets []tview.Primitive
	workoutLines      []workout.Line

	// History mode components
	historyFlex       *tview.Flex
	historyList       *tview.List
	historyDetail     *tview.TextView
	historyTabWidgets []tview.Primitive
	historyEntries    []history.Entry

	// Timer overlay
	timerView *tview.TextView
	timerOpen bool
}

func NewCursesUIView(logger logrus.FieldLogger, app *tview.Application) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		currentMode: UIModeFocusSelection,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc with app.Draw(): BaseUIView draws after every update.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initFocusSelectionMode(controller)
	ui.initWorkoutMode(controller)
	ui.initHistoryMode(controller)
	ui.initTimerOverlay()

	ui.pages.AddPage(pageFocusSelection, ui.focusFlex, true, true)
	ui.pages.AddPage(pageWorkout, ui.workoutFlex, true, false)
	ui.pages.AddPage(pageHistory, ui.historyFlex, true, false)

	// Main layout: pages on left, logs on right
	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.root = tview.NewPages().
		AddPage(pageMain, ui.mainFlex, true, true).
		AddPage(pageTimer, centered(ui.timerView, 46, 14), true, false)

	ui.setFocusForCurrentMode()
}

func newInstructions(text string) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetText(text)
	return tv
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// initFocusSelectionMode sets up the focus type picker
func (ui *CursesUIViewImpl) initFocusSelectionMode(controller *UIController) {
	instructions := newInstructions("[yellow]Space[white]/[yellow]Enter[white] Toggle Focus  |  [yellow]G[white] Generate Workout\n" + modeKeysHint)

	ui.focusList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.toggleFocusAt(controller, index)
		})
	ui.focusList.SetBorder(true).SetTitle(" Workout Focus ")
	for _, info := range workout.AllFocusTypes {
		ui.focusList.AddItem(formatFocusItem(info, false), "", 0, nil)
	}

	ui.focusStatus = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	ui.focusStatus.SetBorder(true).SetTitle(" Status ")
	ui.focusStatus.SetText(formatGenerationStatus(GenerationState{}, workout.NewSelection()))

	ui.focusTabWidgets = append(ui.focusTabWidgets, ui.focusList)

	ui.focusFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructions, 2, 0, false).
		AddItem(ui.focusList, len(workout.AllFocusTypes)+2, 0, true).
		AddItem(ui.focusStatus, 0, 1, false)
}

func (ui *CursesUIViewImpl) toggleFocusAt(controller *UIController, index int) {
	if index < 0 || index >= len(workout.AllFocusTypes) {
		return
	}
	controller.ToggleFocus(workout.AllFocusTypes[index].Type)
}

// initWorkoutMode sets up the workout reader
func (ui *CursesUIViewImpl) initWorkoutMode(controller *UIController) {
	instructions := newInstructions("[yellow]Enter[white] Start Timer ([green]⏱[white] lines)  |  [yellow]E[white] Export\n" + modeKeysHint)

	ui.workoutList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < len(ui.workoutLines) {
				controller.OpenTimer(index)
			}
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateWorkoutDetail(index)
		})
	ui.workoutList.SetBorder(true).SetTitle(" Workout ")

	ui.workoutDetail = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	ui.workoutDetail.SetBorder(true).SetTitle(" Details ")

	ui.workoutTabWidgets = append(ui.workoutTabWidgets, ui.workoutList, ui.workoutDetail)

	ui.workoutFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructions, 2, 0, false).
		AddItem(ui.workoutList, 0, 3, true).
		AddItem(ui.workoutDetail, 7, 0, false)

	ui.renderWorkout(WorkoutView{})
}

// initHistoryMode sets up the history browser
func (ui *CursesUIViewImpl) initHistoryMode(controller *UIController) {
	instructions := newInstructions("[yellow]Enter[white] View Workout  |  [yellow]C[white] Clear History\n" + modeKeysHint)

	ui.historyList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < len(ui.historyEntries) {
				controller.ViewHistoryEntry(ui.historyEntries[index].ID)
			}
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateHistoryDetail(index)
		})
	ui.historyList.SetBorder(true).SetTitle(" Workout History ")

	ui.historyDetail = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	ui.historyDetail.SetBorder(true).SetTitle(" Details ")

	ui.historyTabWidgets = append(ui.historyTabWidgets, ui.historyList, ui.historyDetail)

	ui.historyFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructions, 2, 0, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(ui.historyList, 0, 1, true).
			AddItem(ui.historyDetail, 0, 1, false), 0, 1, true)

	ui.renderHistory(nil)
}

func (ui *CursesUIViewImpl) initTimerOverlay() {
	ui.timerView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.timerView.SetBorder(true).SetTitle(" Timer ")
}

// queue runs fn on the tview event loop
func (ui *CursesUIViewImpl) queue(fn func()) {
	if ui.stopped.Load() {
		return
	}
	ui.app.QueueUpdate(fn)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	ui.queue(func() {
		if ui.currentMode == mode {
			return
		}
		ui.currentMode = mode

		switch mode {
		case UIModeFocusSelection:
			ui.pages.SwitchToPage(pageFocusSelection)
		case UIModeWorkout:
			ui.pages.SwitchToPage(pageWorkout)
		case UIModeHistory:
			ui.pages.SwitchToPage(pageHistory)
		}

		if !ui.timerOpen {
			ui.setFocusForCurrentMode()
		}
	})
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []tview.Primitive {
	switch ui.currentMode {
	case UIModeFocusSelection:
		return ui.focusTabWidgets
	case UIModeWorkout:
		return ui.workoutTabWidgets
	case UIModeHistory:
		return ui.historyTabWidgets
	default:
		return nil
	}
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	if widgets := ui.getTabWidgetsForCurrentMode(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// The overlay takes every key while open
		if ui.timerOpen {
			switch {
			case event.Key() == tcell.KeyEscape:
				controller.CloseTimer()
			case event.Key() == tcell.KeyRune && event.Rune() == ' ':
				controller.ToggleTimer()
			case event.Key() == tcell.KeyRune && (event.Rune() == 'r' || event.Rune() == 'R'):
				controller.ResetTimer()
			}
			return nil
		}

		// Number keys for mode switching
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			for i, w := range widgets {
				if w.HasFocus() {
					ui.app.SetFocus(widgets[(i+1)%len(widgets)])
					return nil
				}
			}
			if len(widgets) > 0 {
				ui.app.SetFocus(widgets[0])
			}
			return nil
		}

		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		if event.Key() != tcell.KeyRune {
			return event
		}

		// Mode-specific key handlers
		switch ui.currentMode {
		case UIModeFocusSelection:
			switch event.Rune() {
			case ' ':
				ui.toggleFocusAt(controller, ui.focusList.GetCurrentItem())
				return nil
			case 'g', 'G':
				controller.GenerateWorkout()
				return nil
			}
		case UIModeWorkout:
			if event.Rune() == 'e' || event.Rune() == 'E' {
				_, _ = controller.ExportWorkout()
				return nil
			}
		case UIModeHistory:
			if event.Rune() == 'c' || event.Rune() == 'C' {
				controller.ClearHistory()
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// SetSelection marks the selected focus types
func (ui *CursesUIViewImpl) SetSelection(sel workout.Selection) {
	ui.queue(func() {
		for i, info := range workout.AllFocusTypes {
			ui.focusList.SetItemText(i, formatFocusItem(info, sel.Contains(info.Type)), "")
		}
		ui.lastSelection = sel
		ui.focusStatus.SetText(formatGenerationStatus(ui.generation, sel))
	})
}

// SetGenerationState shows the loading indicator or inline error
func (ui *CursesUIViewImpl) SetGenerationState(state GenerationState) {
	ui.queue(func() {
		ui.generation = state
		ui.focusStatus.SetText(formatGenerationStatus(state, ui.lastSelection))
		title := " Status "
		if state.Loading() {
			title = " Generating... "
		}
		ui.focusStatus.SetTitle(title)
	})
}

// SetWorkout renders the workout document
func (ui *CursesUIViewImpl) SetWorkout(view WorkoutView) {
	ui.queue(func() { ui.renderWorkout(view) })
}

func (ui *CursesUIViewImpl) renderWorkout(view WorkoutView) {
	ui.workoutLines = view.Document.Lines
	ui.workoutList.Clear()

	if view.Empty() {
		ui.workoutList.SetTitle(" Workout ")
		ui.workoutList.AddItem("[gray]No workout yet. Generate one in Focus Selection (press 1).[-]", "", 0, nil)
		ui.workoutDetail.SetText("")
		return
	}

	title := fmt.Sprintf(" %s ", tview.Escape(workout.DisplayNames(view.Types)))
	if view.FromHistory {
		title = " History: " + title[1:]
	}
	ui.workoutList.SetTitle(title)
	for _, line := range ui.workoutLines {
		ui.workoutList.AddItem(formatDocumentLine(line), "", 0, nil)
	}
	ui.workoutList.SetCurrentItem(0)
	ui.updateWorkoutDetail(0)
}

func (ui *CursesUIViewImpl) updateWorkoutDetail(index int) {
	if ui.workoutDetail == nil {
		return
	}
	if index < 0 || index >= len(ui.workoutLines) {
		ui.workoutDetail.SetText("")
		return
	}
	ui.workoutDetail.SetText(formatLineDetail(ui.workoutLines[index]))
}

// SetTimerOverlay shows, updates or hides the countdown overlay
func (ui *CursesUIViewImpl) SetTimerOverlay(overlay TimerOverlay) {
	ui.queue(func() {
		if !overlay.Open {
			if ui.timerOpen {
				ui.timerOpen = false
				ui.root.HidePage(pageTimer)
				ui.setFocusForCurrentMode()
			}
			return
		}
		ui.timerView.SetText(formatTimerOverlay(overlay))
		if !ui.timerOpen {
			ui.timerOpen = true
			ui.root.ShowPage(pageTimer)
			ui.app.SetFocus(ui.timerView)
		}
	})
}

// SetHistory populates the history list
func (ui *CursesUIViewImpl) SetHistory(entries []history.Entry) {
	ui.queue(func() { ui.renderHistory(entries) })
}

func (ui *CursesUIViewImpl) renderHistory(entries []history.Entry) {
	ui.historyEntries = entries
	ui.historyList.Clear()
	if len(entries) == 0 {
		ui.historyList.AddItem("[gray]No saved workouts yet.[-]", "", 0, nil)
		ui.historyDetail.SetText("")
		return
	}
	for _, e := range entries {
		ui.historyList.AddItem(tview.Escape(e.Label()), "", 0, nil)
	}
	ui.historyList.SetCurrentItem(0)
	ui.updateHistoryDetail(0)
}

func (ui *CursesUIViewImpl) updateHistoryDetail(index int) {
	if ui.historyDetail == nil {
		return
	}
	if index < 0 || index >= len(ui.historyEntries) {
		ui.historyDetail.SetText("")
		return
	}
	ui.historyDetail.SetText(formatHistoryPreview(ui.historyEntries[index]))
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	if !ui.stopped.Load() {
		ui.app.Draw()
	}
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.root, true)
	ui.setFocusForCurrentMode()
	err := ui.app.Run()
	ui.stopped.Store(true)
	return err
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.stopped.Store(true)
	ui.app.Stop()
}
