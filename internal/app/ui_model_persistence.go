package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

type uiModelPersistenceData struct {
	LastFocusTypes []workout.FocusType `json:"last_focus_types"`
}

// uiModelPersistence keeps UI preferences between runs. An empty filePath
// disables it.
type uiModelPersistence struct {
	filePath string
	data     uiModelPersistenceData
	logger   logrus.FieldLogger
}

func newUIModelPersistence(filePath string, logger logrus.FieldLogger) *uiModelPersistence {
	p := &uiModelPersistence{
		filePath: filePath,
		logger:   logger,
	}
	p.load()
	return p
}

func (p *uiModelPersistence) getLastSelection() workout.Selection {
	sel := workout.NewSelection(p.data.LastFocusTypes...)
	p.logger.Debugf("UIModelPersistence: getLastSelection -> %v", sel.Types())
	return sel
}

func (p *uiModelPersistence) setLastSelection(sel workout.Selection) {
	p.data.LastFocusTypes = sel.Types()
	p.save()
}

func (p *uiModelPersistence) load() {
	p.data = uiModelPersistenceData{}
	if p.filePath == "" {
		return
	}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		p.logger.Debugf("UIModelPersistence: load %s (no existing file)", p.filePath)
		return
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		p.logger.Warnf("UIModelPersistence: load %s failed to parse: %v", p.filePath, err)
		p.data = uiModelPersistenceData{}
		return
	}
	p.logger.Debugf("UIModelPersistence: load %s -> %v", p.filePath, p.data.LastFocusTypes)
}

func (p *uiModelPersistence) save() {
	if p.filePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p.filePath), 0755); err != nil {
		p.logger.Warnf("UIModelPersistence: save mkdir failed: %v", err)
		return
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		p.logger.Warnf("UIModelPersistence: save marshal failed: %v", err)
		return
	}
	if err := os.WriteFile(p.filePath, raw, 0644); err != nil {
		p.logger.Warnf("UIModelPersistence: save %s failed: %v", p.filePath, err)
		return
	}
	p.logger.Debugf("UIModelPersistence: save %s -> %v", p.filePath, p.data.LastFocusTypes)
}
