package app

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/countdown"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/duration"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/history"
	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

const progressBarWidth = 30

func formatFocusItem(info workout.FocusInfo, selected bool) string {
	if selected {
		return fmt.Sprintf("[green][x[][white] %s", tview.Escape(info.DisplayName))
	}
	return fmt.Sprintf("[gray][ [][white] %s", tview.Escape(info.DisplayName))
}

func formatGenerationStatus(state GenerationState, sel workout.Selection) string {
	var text string
	switch state.Status {
	case GenerationLoading:
		text = "\n  [yellow]The Q is thinking...[white]\n  Preparing a proper beatdown. Stand by, Pax!\n"
	case GenerationFailed:
		text = fmt.Sprintf("\n  [red]%s[white]\n", tview.Escape(state.Error))
	case GenerationSucceeded:
		text = "\n  [green]Workout ready.[white] Press [yellow]2[white] to view it.\n"
	default:
		text = "\n  [gray]Ready for the Gloom? Your generated workout will appear in the Workout view.[white]\n"
	}

	if sel.Empty() {
		text += "\n  [gray]Select at least one focus to generate.[white]\n"
	} else if !state.Loading() {
		text += fmt.Sprintf("\n  Selected: [yellow]%s[white]\n  Press [yellow]G[white] to generate.\n", tview.Escape(workout.DisplayNames(sel.Types())))
	}
	return text
}

// formatDocumentLine renders one workout line for the workout list
func formatDocumentLine(line workout.Line) string {
	switch line.Kind {
	case workout.LineHeading:
		return fmt.Sprintf("[red::b]%s[-::-]", tview.Escape(strings.ToUpper(line.Text)))
	case workout.LineSubHeading:
		return fmt.Sprintf("[yellow]%s[-]", tview.Escape(line.Text))
	case workout.LineListItem:
		var b strings.Builder
		b.WriteString("  [red]•[-] ")
		for _, seg := range line.Segments {
			if seg.Bold {
				b.WriteString("[::b]" + tview.Escape(seg.Text) + "[::-]")
			} else {
				b.WriteString(tview.Escape(seg.Text))
			}
		}
		if line.HasTimer() {
			fmt.Fprintf(&b, "  [green]⏱ %s[-]", duration.Format(line.Duration))
		}
		return b.String()
	default:
		return "[gray]" + tview.Escape(line.Text) + "[-]"
	}
}

// formatLineDetail is the full, wrapped text of the highlighted line
func formatLineDetail(line workout.Line) string {
	text := "\n  " + tview.Escape(workout.PlainText(line.Text)) + "\n"
	if line.HasTimer() {
		text += fmt.Sprintf("\n  [green]Enter[white] start a %s timer\n", duration.Format(line.Duration))
	}
	return text
}

func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatTimerOverlay(overlay TimerOverlay) string {
	state := overlay.State
	var status, color string
	switch state.Status() {
	case countdown.StatusRunning:
		status, color = "Running", "green"
	case countdown.StatusPaused:
		status, color = "Paused", "yellow"
	case countdown.StatusCompleted:
		status, color = "Done!", "red"
	default:
		status, color = "Ready", "white"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[::b]%s[::-]\n\n", tview.Escape(overlay.Title))
	fmt.Fprintf(&b, "[%s::b]%s[-::-]\n\n", color, duration.Format(state.Remaining()))
	fmt.Fprintf(&b, "[%s]%s[-]\n\n", color, progressBar(state.Progress(), progressBarWidth))
	fmt.Fprintf(&b, "[%s]%s[-]\n\n", color, status)

	action := "Start"
	switch state.Status() {
	case countdown.StatusRunning:
		action = "Pause"
	case countdown.StatusPaused:
		action = "Resume"
	}
	if state.Status() == countdown.StatusCompleted {
		b.WriteString("[yellow]R[white] Reset  |  [yellow]Esc[white] Close")
	} else {
		fmt.Fprintf(&b, "[yellow]Space[white] %s  |  [yellow]R[white] Reset  |  [yellow]Esc[white] Close", action)
	}
	return b.String()
}

func formatHistoryPreview(entry history.Entry) string {
	doc := workout.ParseDocument(entry.Workout)
	var b strings.Builder
	fmt.Fprintf(&b, "\n  [yellow]%s[white]\n", tview.Escape(entry.Time().Format("Mon Jan 2 2006, 15:04")))
	fmt.Fprintf(&b, "  [gray]Focus:[white] %s\n", tview.Escape(workout.DisplayNames(entry.Types)))
	if headings := doc.Headings(); len(headings) > 0 {
		b.WriteString("\n  [gray]Sections:[white]\n")
		for _, h := range headings {
			fmt.Fprintf(&b, "    %s\n", tview.Escape(h))
		}
	}
	if n := len(doc.TimedItems()); n > 0 {
		fmt.Fprintf(&b, "\n  [gray]Timed exercises:[white] %d\n", n)
	}
	b.WriteString("\n  [green]Enter[white] view this workout\n")
	return b.String()
}
