package workout

import (
	"regexp"
	"strings"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/duration"
)

// LineKind classifies one line of generated workout text
type LineKind int

const (
	LineParagraph  LineKind = iota // Plain text
	LineHeading                    // **Title**
	LineSubHeading                 // ### Title
	LineListItem                   // "* ", "- " or "➤" prefixed
)

func (k LineKind) String() string {
	switch k {
	case LineHeading:
		return "heading"
	case LineSubHeading:
		return "sub-heading"
	case LineListItem:
		return "list item"
	default:
		return "paragraph"
	}
}

// Segment is a run of inline text, bold when it was wrapped in ** **
type Segment struct {
	Text string
	Bold bool
}

// Line is one rendered line of a workout
type Line struct {
	Kind       LineKind
	Text       string    // heading title, list item content (marker removed) or paragraph
	Segments   []Segment // inline formatting of Text, list items only
	Duration   int       // seconds, 0 when the item offers no timer
	TimerTitle string    // label for the timer, bold spans removed
	SourceLine int       // zero-based index in the input text
}

// HasTimer reports whether a countdown can be started for this line
func (l Line) HasTimer() bool {
	return l.Kind == LineListItem && l.Duration > 0
}

// Document is a parsed workout
type Document struct {
	Lines []Line
}

var (
	listMarkerPattern = regexp.MustCompile(`^(\* |- |➤) ?`)
	boldSpanPattern   = regexp.MustCompile(`\*\*.*?\*\*`)
	// greedy: everything from the first to the last ** goes
	boldRunPattern = regexp.MustCompile(`\*\*.*\*\*`)
)

// ParseDocument classifies every non-blank line of text. Any input is
// accepted; lines that match no rule become paragraphs.
func ParseDocument(text string) Document {
	var doc Document
	for i, raw := range strings.Split(text, "\n") {
		line, ok := parseLine(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		line.SourceLine = i
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

func parseLine(trimmed string) (Line, bool) {
	switch {
	case trimmed == "":
		return Line{}, false

	case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**"):
		title := ""
		if len(trimmed) >= 4 {
			title = trimmed[2 : len(trimmed)-2]
		}
		return Line{Kind: LineHeading, Text: title}, true

	case strings.HasPrefix(trimmed, "###"):
		return Line{Kind: LineSubHeading, Text: strings.TrimSpace(strings.ReplaceAll(trimmed, "###", ""))}, true

	case isListItem(trimmed):
		content := listMarkerPattern.ReplaceAllString(trimmed, "")
		line := Line{
			Kind:     LineListItem,
			Text:     content,
			Segments: splitBold(content),
		}
		if seconds, ok := duration.Extract(content); ok && seconds > 0 {
			line.Duration = seconds
			line.TimerTitle = strings.TrimSpace(boldRunPattern.ReplaceAllString(content, ""))
			if line.TimerTitle == "" {
				line.TimerTitle = PlainText(content)
			}
		}
		return line, true

	default:
		return Line{Kind: LineParagraph, Text: trimmed}, true
	}
}

func isListItem(trimmed string) bool {
	return strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "➤")
}

func splitBold(content string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range boldSpanPattern.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: content[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: content[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(content) {
		segments = append(segments, Segment{Text: content[last:]})
	}
	return segments
}

// PlainText strips ** markers, keeping the text they wrap
func PlainText(s string) string {
	return strings.TrimSpace(boldSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		return m[2 : len(m)-2]
	}))
}

// TimedItems returns the list items that offer a countdown
func (d Document) TimedItems() []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.HasTimer() {
			out = append(out, l)
		}
	}
	return out
}

// Headings returns the section titles in order
func (d Document) Headings() []string {
	var out []string
	for _, l := range d.Lines {
		if l.Kind == LineHeading {
			out = append(out, l.Text)
		}
	}
	return out
}
