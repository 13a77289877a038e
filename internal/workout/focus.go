// Package workout holds the F3 workout vocabulary: focus types, the prompt
// sent to the model, and the parsing of the text it sends back.
package workout

import "strings"

// FocusType identifies one workout focus the Q can ask for
type FocusType string

const (
	FocusBodyweight  FocusType = "bodyweight"
	FocusCinderBlock FocusType = "cinder_block"
	FocusFlexibility FocusType = "flexibility"
	FocusCardio      FocusType = "cardio"
	FocusHIIT        FocusType = "hiit"
	FocusMixed       FocusType = "mixed"
)

// FocusInfo contains display information for a focus type
type FocusInfo struct {
	Type        FocusType
	DisplayName string
	Guidance    string // per-type instruction appended to the prompt
}

// AllFocusTypes defines all selectable focus types in display order
var AllFocusTypes = []FocusInfo{
	{
		Type:        FocusBodyweight,
		DisplayName: "Body Weight Only",
		Guidance:    "Focus on exercises like Merkins, Squats, Lunges, and Planks.",
	},
	{
		Type:        FocusCinderBlock,
		DisplayName: "Cinder Block Incorporated",
		Guidance:    "Include exercises like Cinder Block Swings, Overhead Press, Goblet Squats, and carries.",
	},
	{
		Type:        FocusFlexibility,
		DisplayName: "Flexibility-Focused",
		Guidance:    "Incorporate dynamic stretches, yoga-inspired poses, and F3 exercises like Good Mornings.",
	},
	{
		Type:        FocusCardio,
		DisplayName: "Cardio-Heavy",
		Guidance:    "Emphasize running, moseys, sprints, high knees, and butt kickers between exercise stations.",
	},
	{
		Type:        FocusHIIT,
		DisplayName: "High-Intensity Interval Training (HIIT)",
		Guidance:    "Structure as timed intervals, like 45 seconds of work followed by 15 seconds of rest, using exercises like Burpees and Sprints.",
	},
	{
		Type:        FocusMixed,
		DisplayName: "Mixed / Other",
		Guidance:    "Combine bodyweight exercises with the use of common park features like benches (for dips or step-ups) and pull-up bars.",
	},
}

// GetFocusInfo returns the info for a given focus type
func GetFocusInfo(focus FocusType) (FocusInfo, bool) {
	for _, info := range AllFocusTypes {
		if info.Type == focus {
			return info, true
		}
	}
	return FocusInfo{}, false
}

// ParseFocusType accepts either the key ("hiit") or the display name,
// case-insensitively.
func ParseFocusType(s string) (FocusType, bool) {
	s = strings.TrimSpace(s)
	for _, info := range AllFocusTypes {
		if strings.EqualFold(string(info.Type), s) || strings.EqualFold(info.DisplayName, s) {
			return info.Type, true
		}
	}
	return "", false
}

// DisplayName returns the human readable name, or the raw key if unknown
func (f FocusType) DisplayName() string {
	if info, ok := GetFocusInfo(f); ok {
		return info.DisplayName
	}
	return string(f)
}

// DisplayNames joins the display names of types with ", "
func DisplayNames(types []FocusType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.DisplayName())
	}
	return strings.Join(names, ", ")
}

// Selection is the ordered set of focus types picked by the user. Types keep
// the order in which they were selected.
type Selection struct {
	types []FocusType
}

// NewSelection creates a selection from types, dropping unknown and duplicate entries
func NewSelection(types ...FocusType) Selection {
	var s Selection
	for _, t := range types {
		if _, ok := GetFocusInfo(t); ok && !s.Contains(t) {
			s.types = append(s.types, t)
		}
	}
	return s
}

// Toggle adds focus if absent and removes it otherwise
func (s Selection) Toggle(focus FocusType) Selection {
	if s.Contains(focus) {
		out := make([]FocusType, 0, len(s.types))
		for _, t := range s.types {
			if t != focus {
				out = append(out, t)
			}
		}
		return Selection{types: out}
	}
	if _, ok := GetFocusInfo(focus); !ok {
		return s
	}
	out := make([]FocusType, len(s.types), len(s.types)+1)
	copy(out, s.types)
	return Selection{types: append(out, focus)}
}

// Contains reports whether focus is selected
func (s Selection) Contains(focus FocusType) bool {
	for _, t := range s.types {
		if t == focus {
			return true
		}
	}
	return false
}

// Types returns a copy of the selected types in selection order
func (s Selection) Types() []FocusType {
	out := make([]FocusType, len(s.types))
	copy(out, s.types)
	return out
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return len(s.types) == 0
}
