package workout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFocusType(t *testing.T) {
	tests := []struct {
		in   string
		want FocusType
		ok   bool
	}{
		{"hiit", FocusHIIT, true},
		{"HIIT", FocusHIIT, true},
		{"Cardio-Heavy", FocusCardio, true},
		{" cinder_block ", FocusCinderBlock, true},
		{"yoga", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFocusType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFocusType_DisplayName(t *testing.T) {
	assert.Equal(t, "Body Weight Only", FocusBodyweight.DisplayName())
	assert.Equal(t, "unknown", FocusType("unknown").DisplayName())
	assert.Equal(t, "Cardio-Heavy, Mixed / Other", DisplayNames([]FocusType{FocusCardio, FocusMixed}))
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	assert.True(t, s.Empty())

	s = s.Toggle(FocusHIIT).Toggle(FocusCardio)
	assert.Equal(t, []FocusType{FocusHIIT, FocusCardio}, s.Types())
	assert.True(t, s.Contains(FocusCardio))

	after := s.Toggle(FocusHIIT)
	assert.Equal(t, []FocusType{FocusCardio}, after.Types())
	assert.Equal(t, []FocusType{FocusHIIT, FocusCardio}, s.Types(), "toggle returns a new selection")

	assert.Equal(t, after.Types(), after.Toggle("bogus").Types())

	types := s.Types()
	types[0] = FocusMixed
	assert.Equal(t, FocusHIIT, s.Types()[0], "Types returns a copy")
}

func TestNewSelection_DropsUnknownAndDuplicates(t *testing.T) {
	s := NewSelection(FocusMixed, "bogus", FocusMixed, FocusBodyweight)
	assert.Equal(t, []FocusType{FocusMixed, FocusBodyweight}, s.Types())
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt([]FocusType{FocusHIIT, FocusCinderBlock})

	assert.Contains(t, p, "Workout Type(s): High-Intensity Interval Training (HIIT), Cinder Block Incorporated")
	assert.Contains(t, p, Disclaimer)
	for _, section := range []string{"**Disclaimer**", "**Warm-Up", "**The Thang", "**6 Minutes of Mary", "**Circle of Trust (COT)**"} {
		assert.Contains(t, p, section)
	}
	for _, info := range AllFocusTypes {
		assert.Contains(t, p, info.Guidance)
	}
	assert.Less(t, strings.Index(p, "**Warm-Up"), strings.Index(p, "**The Thang"))
}
