// Package duration pulls an exercise duration out of free-form workout text.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Minutes are checked before seconds so the trailing "s" of "minutes" is never
// read as a seconds unit.
var (
	minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*(minutes|minute|min)\b`)
	secondsPattern = regexp.MustCompile(`(?i)(\d+)\s*(seconds|second|sec|s)\b`)
)

// Extract returns the duration in seconds described by text, e.g. "45 seconds",
// "45s", "1 minute" or "2 min". ok is false when the text names no duration.
//
// Only the first occurrence of each rule is considered. A count written with a
// decimal part ("1.5 minutes") is not a whole number and does not match.
func Extract(text string) (seconds int, ok bool) {
	if count, found := firstCount(minutesPattern, text); found {
		return count * 60, true
	}
	if count, found := firstCount(secondsPattern, text); found {
		return count, true
	}
	return 0, false
}

func firstCount(pattern *regexp.Regexp, text string) (int, bool) {
	loc := pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, false
	}
	start, end := loc[2], loc[3]
	if isFractional(text, start) {
		return 0, false
	}
	count, err := strconv.Atoi(text[start:end])
	if err != nil {
		// out of range for int
		return 0, false
	}
	// keep the result representable once scaled to seconds
	if count > maxCount {
		return 0, false
	}
	return count, true
}

// isFractional reports whether the digits starting at start are the decimal
// part of a number such as "1.5" or "2,5".
func isFractional(text string, start int) bool {
	if start < 2 {
		return false
	}
	sep := text[start-1]
	if sep != '.' && sep != ',' {
		return false
	}
	prev := text[start-2]
	return prev >= '0' && prev <= '9'
}

const maxCount = math.MaxInt / 60

// Format renders seconds as MM:SS. Minutes grow past two digits when needed.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
