package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/gemini"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/go_func_utils"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// generationRequest is sent to the generation goroutine
type generationRequest struct {
	types []workout.FocusType
}

// GenerationManager runs workout requests one at a time and applies the
// results to the UIModel and the history log.
type GenerationManager struct {
	model     *UIModel
	generator gemini.Generator
	history   *history.Log
	timeout   time.Duration
	logger    logrus.FieldLogger

	// protected by mu
	mu       sync.Mutex
	inFlight bool

	// Goroutine management
	cmdChan      chan generationRequest
	ctx          context.Context // cancelled on shutdown, aborts the request in flight
	cancel       context.CancelFunc
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewGenerationManagerArg holds the arguments for creating a new GenerationManager
type NewGenerationManagerArg struct {
	Model     *UIModel
	Generator gemini.Generator
	History   *history.Log
	Timeout   time.Duration // per request, 0 for none
	Logger    logrus.FieldLogger
}

func NewGenerationManager(args NewGenerationManagerArg) *GenerationManager {
	if args.Model == nil {
		panic("GenerationManager: model cannot be nil")
	}
	if args.Generator == nil {
		panic("GenerationManager: generator cannot be nil")
	}
	if args.History == nil {
		panic("GenerationManager: history cannot be nil")
	}
	if args.Logger == nil {
		panic("GenerationManager: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	gm := &GenerationManager{
		model:     args.Model,
		generator: args.Generator,
		history:   args.History,
		timeout:   args.Timeout,
		logger:    args.Logger,
		cmdChan:   make(chan generationRequest, 1),
		ctx:       ctx,
		cancel:    cancel,
		doneChan:  make(chan struct{}),
	}

	gm.wg.Add(1)
	go_func_utils.SafeGo(gm.logger, func() { gm.runLoop() })

	return gm
}

// Generate queues a request for types. It returns false, changing nothing,
// when a request is already in flight or the manager is shut down.
func (gm *GenerationManager) Generate(types []workout.FocusType) bool {
	gm.mu.Lock()
	if gm.inFlight {
		gm.mu.Unlock()
		gm.logger.Info("GenerationManager: request already in flight")
		return false
	}
	select {
	case <-gm.doneChan:
		gm.mu.Unlock()
		return false
	default:
	}
	gm.inFlight = true
	gm.mu.Unlock()

	gm.model.SetGeneration(GenerationState{Status: GenerationLoading})
	gm.cmdChan <- generationRequest{types: append([]workout.FocusType(nil), types...)}
	return true
}

// InFlight reports whether a request is running
func (gm *GenerationManager) InFlight() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.inFlight
}

// Shutdown aborts the request in flight and stops the goroutine
func (gm *GenerationManager) Shutdown() {
	gm.shutdownOnce.Do(func() {
		gm.logger.Debug("GenerationManager: Shutting down")
		gm.mu.Lock()
		close(gm.doneChan)
		gm.mu.Unlock()
		gm.cancel()
		gm.wg.Wait()

		// a request queued but never picked up
		gm.mu.Lock()
		dropped := gm.inFlight
		gm.inFlight = false
		gm.mu.Unlock()
		if dropped {
			gm.model.SetGeneration(GenerationState{Status: GenerationIdle})
		}
		gm.logger.Debug("GenerationManager: Shutdown complete")
	})
}

func (gm *GenerationManager) runLoop() {
	defer gm.wg.Done()

	for {
		select {
		case <-gm.doneChan:
			return
		case req := <-gm.cmdChan:
			gm.handle(req)
		}
	}
}

func (gm *GenerationManager) handle(req generationRequest) {
	defer func() {
		gm.mu.Lock()
		gm.inFlight = false
		gm.mu.Unlock()
	}()

	ctx := gm.ctx
	if gm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gm.timeout)
		defer cancel()
	}

	text, err := gm.generator.Generate(ctx, req.types)
	if err != nil {
		gm.logger.WithError(err).Warn("GenerationManager: request failed")
		gm.model.SetGeneration(GenerationState{Status: GenerationFailed, Error: gemini.UserMessage(err)})
		return
	}

	entry, err := gm.history.Append(req.types, text)
	if err != nil {
		// the workout is still shown; only persistence failed
		gm.logger.WithError(err).Warn("GenerationManager: could not save history")
	}
	gm.model.SetHistory(gm.history.Entries())
	gm.model.SetWorkout(newWorkoutView(text, req.types, entry.ID, false))
	gm.model.SetGeneration(GenerationState{Status: GenerationSucceeded})
	gm.model.SetMode(UIModeWorkout)
	gm.logger.WithField("entry", entry.ID).Infof("Workout ready: %s", workout.DisplayNames(req.types))
}
