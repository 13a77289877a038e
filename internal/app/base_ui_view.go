package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
)

const logResizePollInterval = 100 * time.Millisecond

// BaseUIView keeps a UIViewImpl in sync with the UIModel. It owns one
// listener goroutine per model event plus a poller for the log pane size.
type BaseUIView struct {
	view       UIViewImpl
	model      *UIModel
	controller *UIController
	logger     logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl   UIViewImpl
	UIModel      *UIModel
	UIController *UIController
	Logger       logrus.FieldLogger
}

// NewBaseUIView initializes the view, renders the current model and starts
// the listeners.
func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	switch {
	case args.Logger == nil:
		panic("BaseUIView: logger cannot be nil")
	case args.UIViewImpl == nil:
		panic("BaseUIView: view implementation cannot be nil")
	case args.UIModel == nil:
		panic("BaseUIView: model cannot be nil")
	case args.UIController == nil:
		panic("BaseUIView: controller cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &BaseUIView{
		view:       args.UIViewImpl,
		model:      args.UIModel,
		controller: args.UIController,
		logger:     args.Logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	b.view.Initialize(b.controller)
	b.view.SetupKeyboardHandlers(b.controller)
	b.view.SetMode(b.model.GetUIState().Mode)
	b.refreshLogPane()

	b.wg.Add(1)
	go_func_utils.SafeGo(b.logger, b.pollLogPaneSize)

	b.subscribe()
	return b
}

// listen drains ch until shutdown and calls apply for every signal. The
// value received is only a wake-up; apply reads the model so a dropped
// notification never leaves the view stale.
func listen[T any](b *BaseUIView, register func(chan<- T) func(), apply func()) {
	ch := make(chan T, 1)
	unregister := register(ch)
	b.wg.Add(1)
	go_func_utils.SafeGo(b.logger, func() {
		defer b.wg.Done()
		defer unregister()
		for {
			select {
			case <-b.ctx.Done():
				return
			case <-ch:
				apply()
				b.redraw()
			}
		}
	})
}

func (b *BaseUIView) subscribe() {
	m := b.model

	listen(b, m.ListenToLog, b.refreshLogPane)
	listen(b, m.ListenToUIState, func() { b.view.SetMode(m.GetUIState().Mode) })
	listen(b, m.ListenToSelection, func() { b.view.SetSelection(m.GetSelection()) })
	listen(b, m.ListenToGeneration, func() { b.view.SetGenerationState(m.GetGeneration()) })
	listen(b, m.ListenToWorkout, func() { b.view.SetWorkout(m.GetWorkout()) })
	listen(b, m.ListenToTimer, func() { b.view.SetTimerOverlay(m.GetTimer()) })
	listen(b, m.ListenToHistory, func() { b.view.SetHistory(m.GetHistory()) })

	// One close request stops the UI; Run then returns in main
	closeChan := make(chan struct{}, 1)
	unregister := m.ListenToCloseApplication(closeChan)
	b.wg.Add(1)
	go_func_utils.SafeGo(b.logger, func() {
		defer b.wg.Done()
		defer unregister()
		select {
		case <-b.ctx.Done():
		case <-closeChan:
			b.logger.Debug("BaseUIView: close requested")
			b.view.Stop()
		}
	})
}

func (b *BaseUIView) redraw() {
	if err := b.view.Draw(); err != nil {
		b.logger.WithError(err).Warn("BaseUIView: draw failed")
	}
}

// refreshLogPane rewrites the log pane with as many recent lines as fit
func (b *BaseUIView) refreshLogPane() {
	rows := b.view.GetLogViewHeight()
	if rows <= 0 {
		return
	}
	b.view.ClearLogView()
	for _, line := range b.model.GetLogTail(rows) {
		if err := b.view.WriteLogLine(line + "\n"); err != nil {
			b.logger.WithError(err).Warn("BaseUIView: log pane write failed")
			return
		}
	}
}

// pollLogPaneSize refills the log pane whenever the terminal resize changes
// how many rows it has.
func (b *BaseUIView) pollLogPaneSize() {
	defer b.wg.Done()
	ticker := time.NewTicker(logResizePollInterval)
	defer ticker.Stop()

	rows := 0
	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			if current := b.view.GetLogViewHeight(); current > 0 && current != rows {
				rows = current
				b.refreshLogPane()
				b.redraw()
			}
		}
	}
}

// Shutdown stops the listeners and waits for them
func (b *BaseUIView) Shutdown() {
	b.logger.Debug("BaseUIView: shutting down")
	b.cancel()
	b.wg.Wait()
}

// Run blocks in the UI loop until the view stops
func (b *BaseUIView) Run() error {
	return b.view.Run()
}
