package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

const timedWorkout = "**Warm-Up**\n- Arm Circles 30 seconds\n- SSH x20 IC\n**The Thang**\n* **Plank** 1 minute"

// fakeGenerator returns text or err. With block set it waits for release
// or cancellation first.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   [][]workout.FocusType
	text    string
	err     error
	block   bool
	release chan struct{}
	once    sync.Once
}

func newFakeGenerator(text string, err error) *fakeGenerator {
	return &fakeGenerator{text: text, err: err, release: make(chan struct{})}
}

func (g *fakeGenerator) Generate(ctx context.Context, types []workout.FocusType) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, types)
	block := g.block
	g.mu.Unlock()

	if block {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

func (g *fakeGenerator) unblock() {
	g.once.Do(func() { close(g.release) })
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// manualScheduler fires ticks only when the test asks
type manualScheduler struct {
	mu  sync.Mutex
	fns map[int]func()
	id  int
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	s.id++
	id := s.id
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *manualScheduler) tick() {
	s.mu.Lock()
	var fns []func()
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

type countingAlerter struct {
	mu    sync.Mutex
	plays int
}

func (a *countingAlerter) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	return nil
}

func (a *countingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plays
}

type testApp struct {
	logger     *logrus.Logger
	hook       *test.Hook
	model      *UIModel
	generator  *fakeGenerator
	history    *history.Log
	manager    *GenerationManager
	controller *UIController
	scheduler  *manualScheduler
	alerter    *countingAlerter
	exportDir  string
}

func newTestApp(t *testing.T, gen *fakeGenerator) *testApp {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	model := NewUIModel(NewUIModelArg{Logger: logger, LogChan: make(chan string)})
	log := history.NewLog(history.NewMemoryStore(), history.DefaultCapacity, logger)
	manager := NewGenerationManager(NewGenerationManagerArg{
		Model:     model,
		Generator: gen,
		History:   log,
		Timeout:   5 * time.Second,
		Logger:    logger,
	})
	ta := &testApp{
		logger:    logger,
		hook:      hook,
		model:     model,
		generator: gen,
		history:   log,
		manager:   manager,
		scheduler: &manualScheduler{},
		alerter:   &countingAlerter{},
		exportDir: t.TempDir(),
	}
	ta.controller = NewUIController(NewUIControllerArg{
		Model:             model,
		GenerationManager: manager,
		History:           log,
		TimerSettings:     TimerSettings{Interval: time.Second, Scheduler: ta.scheduler, Alerter: ta.alerter},
		ExportDir:         ta.exportDir,
		Logger:            logger,
	})
	t.Cleanup(func() {
		gen.unblock()
		ta.controller.Shutdown()
		model.Shutdown()
	})
	return ta
}

// waitGeneration waits for the generation status to settle on want
func (ta *testApp) waitGeneration(t *testing.T, want GenerationStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		return ta.model.GetGeneration().Status == want && !ta.manager.InFlight()
	}, 2*time.Second, 5*time.Millisecond)
}
