package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/countdown"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

func TestFormatDocumentLine(t *testing.T) {
	doc := workout.ParseDocument(timedWorkout + "\n### Round [1]\nRecover.")

	assert.Equal(t, "[red::b]WARM-UP[-::-]", formatDocumentLine(doc.Lines[0]))
	assert.Equal(t, "  [red]•[-] Arm Circles 30 seconds  [green]⏱ 00:30[-]", formatDocumentLine(doc.Lines[1]))
	assert.Equal(t, "  [red]•[-] SSH x20 IC", formatDocumentLine(doc.Lines[2]))
	assert.Equal(t, "  [red]•[-] [::b]Plank[::-] 1 minute  [green]⏱ 01:00[-]", formatDocumentLine(doc.Lines[4]))
	assert.Equal(t, "[yellow]Round [1[][-]", formatDocumentLine(doc.Lines[5]))
	assert.Equal(t, "[gray]Recover.[-]", formatDocumentLine(doc.Lines[6]))
}

func TestFormatLineDetail(t *testing.T) {
	doc := workout.ParseDocument(timedWorkout)
	assert.Contains(t, formatLineDetail(doc.Lines[4]), "Plank 1 minute")
	assert.Contains(t, formatLineDetail(doc.Lines[4]), "start a 01:00 timer")
	assert.NotContains(t, formatLineDetail(doc.Lines[2]), "timer")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", progressBar(0, 4))
	assert.Equal(t, "██░░", progressBar(0.5, 4))
	assert.Equal(t, "████", progressBar(1.5, 4))
	assert.Equal(t, "░░░░", progressBar(-1, 4))
}

func TestFormatTimerOverlay(t *testing.T) {
	state, err := countdown.NewState(90)
	if !assert.NoError(t, err) {
		return
	}

	idle := formatTimerOverlay(TimerOverlay{Open: true, Title: "Plank", State: state})
	assert.Contains(t, idle, "Plank")
	assert.Contains(t, idle, "01:30")
	assert.Contains(t, idle, "Ready")
	assert.Contains(t, idle, "Space[white] Start")

	running := formatTimerOverlay(TimerOverlay{Open: true, Title: "Plank", State: state.Start()})
	assert.Contains(t, running, "Running")
	assert.Contains(t, running, "Space[white] Pause")

	paused := formatTimerOverlay(TimerOverlay{Open: true, Title: "Plank", State: state.Start().Pause()})
	assert.Contains(t, paused, "Space[white] Resume")

	done := state.Start()
	for i := 0; i < 90; i++ {
		done, _ = done.Tick()
	}
	completed := formatTimerOverlay(TimerOverlay{Open: true, Title: "Plank", State: done})
	assert.Contains(t, completed, "Done!")
	assert.Contains(t, completed, "00:00")
	assert.NotContains(t, completed, "Space")
	assert.Contains(t, completed, strings.Repeat("█", progressBarWidth))
}

func TestFormatGenerationStatus(t *testing.T) {
	sel := workout.NewSelection(workout.FocusHIIT)

	assert.Contains(t, formatGenerationStatus(GenerationState{Status: GenerationLoading}, sel), "The Q is thinking...")
	assert.NotContains(t, formatGenerationStatus(GenerationState{Status: GenerationLoading}, sel), "Press [yellow]G")
	assert.Contains(t, formatGenerationStatus(GenerationState{Status: GenerationFailed, Error: "nope"}, sel), "[red]nope")
	assert.Contains(t, formatGenerationStatus(GenerationState{}, sel), "High-Intensity Interval Training (HIIT)")
	assert.Contains(t, formatGenerationStatus(GenerationState{}, workout.NewSelection()), "Select at least one focus")
}

func TestFormatFocusItem(t *testing.T) {
	info, _ := workout.GetFocusInfo(workout.FocusCardio)
	assert.Equal(t, "[green][x[][white] Cardio-Heavy", formatFocusItem(info, true))
	assert.Equal(t, "[gray][ [][white] Cardio-Heavy", formatFocusItem(info, false))
}

func TestFormatHistoryPreview(t *testing.T) {
	entry := history.Entry{
		ID:        "id",
		Timestamp: time.Date(2024, 5, 1, 5, 30, 0, 0, time.Local).UnixMilli(),
		Types:     []workout.FocusType{workout.FocusMixed},
		Workout:   timedWorkout,
	}
	preview := formatHistoryPreview(entry)
	assert.Contains(t, preview, "Wed May 1 2024, 05:30")
	assert.Contains(t, preview, "Mixed / Other")
	assert.Contains(t, preview, "Warm-Up")
	assert.Contains(t, preview, "The Thang")
	assert.Contains(t, preview, "Timed exercises:[white] 2")
}
