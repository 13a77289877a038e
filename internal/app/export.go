package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// exportWorkout writes the shareable text of a workout to a new file in dir
// and returns its path.
func exportWorkout(dir string, text string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("export: mkdir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("f3-workout-%s.txt", now.Format("20060102-150405")))
	if err := os.WriteFile(path, []byte(workout.FormatForExport(text)), 0644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
