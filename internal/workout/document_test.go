package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWorkout = `**Disclaimer**
This is a free, peer-led workout.

**Warm-Up (5-10 minutes)**
- Side Straddle Hops x20 IC
- Arm Circles 30 seconds

**The Thang (Main Workout, 20-30 minutes)**
### Round 1
* **Merkins** 45 seconds
➤ Mosey to the flag
* 2 minutes of Burpees

**Circle of Trust (COT)**
Leave no man behind.`

func TestParseDocument_Classifies(t *testing.T) {
	doc := ParseDocument(sampleWorkout)

	kinds := make([]LineKind, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []LineKind{
		LineHeading, LineParagraph,
		LineHeading, LineListItem, LineListItem,
		LineHeading, LineSubHeading, LineListItem, LineListItem, LineListItem,
		LineHeading, LineParagraph,
	}, kinds)

	assert.Equal(t, []string{
		"Disclaimer",
		"Warm-Up (5-10 minutes)",
		"The Thang (Main Workout, 20-30 minutes)",
		"Circle of Trust (COT)",
	}, doc.Headings())
	assert.Equal(t, "Round 1", doc.Lines[6].Text)
	assert.Equal(t, 4, doc.Lines[3].SourceLine)
}

func TestParseDocument_ListItems(t *testing.T) {
	doc := ParseDocument(sampleWorkout)

	warmup := doc.Lines[3]
	assert.Equal(t, "Side Straddle Hops x20 IC", warmup.Text)
	assert.False(t, warmup.HasTimer())

	arms := doc.Lines[4]
	assert.True(t, arms.HasTimer())
	assert.Equal(t, 30, arms.Duration)
	assert.Equal(t, "Arm Circles 30 seconds", arms.TimerTitle)

	merkins := doc.Lines[7]
	assert.Equal(t, "**Merkins** 45 seconds", merkins.Text)
	assert.Equal(t, []Segment{{Text: "Merkins", Bold: true}, {Text: " 45 seconds"}}, merkins.Segments)
	assert.Equal(t, 45, merkins.Duration)
	assert.Equal(t, "45 seconds", merkins.TimerTitle)

	mosey := doc.Lines[8]
	assert.Equal(t, "Mosey to the flag", mosey.Text)
	assert.False(t, mosey.HasTimer())

	burpees := doc.Lines[9]
	assert.Equal(t, 120, burpees.Duration)
}

func TestDocument_TimedItems(t *testing.T) {
	items := ParseDocument(sampleWorkout).TimedItems()
	require.Len(t, items, 3)
	assert.Equal(t, []int{30, 45, 120}, []int{items[0].Duration, items[1].Duration, items[2].Duration})
}

func TestParseDocument_EdgeCases(t *testing.T) {
	assert.Empty(t, ParseDocument("").Lines)
	assert.Empty(t, ParseDocument("\n  \n\r\n").Lines)

	doc := ParseDocument("**\n-no space\n- 0 seconds rest\n* **Plank** only **bold**")
	require.Len(t, doc.Lines, 4)
	assert.Equal(t, LineHeading, doc.Lines[0].Kind)
	assert.Equal(t, "", doc.Lines[0].Text)
	assert.Equal(t, LineParagraph, doc.Lines[1].Kind, "a dash without a space is not a list marker")
	assert.False(t, doc.Lines[2].HasTimer(), "zero-length durations offer no timer")
	assert.Equal(t, LineListItem, doc.Lines[3].Kind)
	assert.False(t, doc.Lines[3].HasTimer())
}

func TestParseDocument_TimerTitleFallsBackToPlainText(t *testing.T) {
	doc := ParseDocument("* **Plank Hold 60 seconds**")
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, 60, doc.Lines[0].Duration)
	assert.Equal(t, "Plank Hold 60 seconds", doc.Lines[0].TimerTitle)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Merkins and LBCs", PlainText("**Merkins** and **LBCs**"))
	assert.Equal(t, "no markup", PlainText("  no markup "))
}
