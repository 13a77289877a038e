package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/app"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/config"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/gemini"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/logging"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/sound"
)

const logChanSize = 256

func main() {
	fs := config.NewFlagSet("f3-workout")
	cfg, loader, err := config.Load(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "f3-workout: %v\n", err)
		os.Exit(2)
	}

	logger, logCloser, err := logging.New(logging.Options{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	must("open log file", err)
	defer logCloser.Close()

	// Log lines for the UI log pane; dropped when the UI falls behind
	logChan := make(chan string, logChanSize)
	logger.AddHook(logging.NewLineHook(logrus.TraceLevel, func(line string) {
		select {
		case logChan <- line:
		default:
		}
	}))

	logger.WithFields(logrus.Fields{
		"data_dir": cfg.DataDir,
		"config":   loader.ConfigFile(),
	}).Info("Starting f3-workout")

	store, storeCloser, err := history.Open(cfg.History.Backend, cfg.History.Path, cfg.DataDir)
	must("open history", err)
	defer storeCloser.Close()
	workoutHistory := history.NewLog(store, cfg.History.MaxEntries, logger)
	logger.WithFields(logrus.Fields{
		"backend":  cfg.History.Backend,
		"entries":  workoutHistory.Len(),
		"capacity": workoutHistory.Capacity(),
	}).Info("History loaded")

	client := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	}, logger)
	logger.WithField("model", client.Model()).Info("Gemini client ready")
	if cfg.Gemini.APIKey == "" {
		logger.Warn("No Gemini API key set (F3_GEMINI_API_KEY or GEMINI_API_KEY); generation will fail")
	}

	beeper := sound.NewBeeper(logger, cfg.Sound.Enabled)
	beeper.SetVolume(cfg.Sound.Volume)

	uiModel := app.NewUIModel(app.NewUIModelArg{
		Logger:    logger,
		LogChan:   logChan,
		StatePath: filepath.Join(cfg.DataDir, "ui_state.json"),
	})

	generationManager := app.NewGenerationManager(app.NewGenerationManagerArg{
		Model:     uiModel,
		Generator: client,
		History:   workoutHistory,
		Timeout:   cfg.Gemini.Timeout,
		Logger:    logger,
	})

	uiController := app.NewUIController(app.NewUIControllerArg{
		Model:             uiModel,
		GenerationManager: generationManager,
		History:           workoutHistory,
		TimerSettings: app.TimerSettings{
			Interval: cfg.Timer.TickInterval,
			Alerter:  beeper,
		},
		ExportDir: filepath.Join(cfg.DataDir, "exports"),
		Logger:    logger,
	})

	cursesView := app.NewCursesUIView(logger, tview.NewApplication())
	baseView := app.NewBaseUIView(app.NewBaseUIViewArg{
		UIViewImpl:   cursesView,
		UIModel:      uiModel,
		UIController: uiController,
		Logger:       logger,
	})

	loader.Watch(logger, func(next *config.Config) {
		beeper.SetEnabled(next.Sound.Enabled)
		beeper.SetVolume(next.Sound.Volume)
		if err := logging.SetLevel(logger, next.Log.Level); err != nil {
			logger.WithError(err).Warn("Config: could not apply log level")
		}
	})

	runErr := baseView.Run()

	baseView.Shutdown()
	uiController.Shutdown()
	uiModel.Shutdown()
	logger.Info("f3-workout stopped")

	must("run UI", runErr)
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}
