package workout

import (
	"fmt"
	"strings"
)

// Disclaimer is the text the model must open every workout with
const Disclaimer = "This is a free, peer-led workout for men of all fitness levels. You are responsible for your own safety. Modify exercises as needed and consult a doctor if you have any health concerns. I am not a professional, and you are working out at your own risk."

// BuildPrompt returns the instruction sent to the model for the given focus types.
func BuildPrompt(types []FocusType) string {
	names := DisplayNames(types)

	var b strings.Builder
	b.WriteString(`You are an F3 Q, an expert in creating F3-style workouts. Your task is to generate a complete, 45-60 minute outdoor workout plan based on a specific set of types. Use F3 lingo like "Pax," "Q," "Mosey," and the motto "Leave no man behind, but leave no man where you found him." The output must be concise, actionable, and follow the exact structure below using Markdown for formatting headings. EVERY section is mandatory.`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Workout Type(s): %s\n\n", names)

	b.WriteString("**Disclaimer**\n")
	fmt.Fprintf(&b, "You MUST start with this exact text: %q\n\n", Disclaimer)

	b.WriteString("**Warm-Up (5-10 minutes)**\n")
	b.WriteString("This section is MANDATORY. List 3-5 simple warm-up exercises with repetitions in cadence (IC). Use F3 Exicon names. Example: - Side Straddle Hops x20 IC.\n\n")

	b.WriteString("**The Thang (Main Workout, 20-30 minutes)**\n")
	fmt.Fprintf(&b, "This is the main part. Create a circuit, sequence, or set of intervals that combines elements from all requested workout types: %s. ", names)
	b.WriteString("The workout must consist of AT LEAST THREE distinct sets or rounds. Use F3 Exicon names for exercises (e.g., Merkins for push-ups).\n")
	for _, info := range AllFocusTypes {
		fmt.Fprintf(&b, "- If '%s' is selected: %s\n", info.DisplayName, info.Guidance)
	}
	b.WriteString("Provide clear instructions in a list format. When an exercise is timed, write its duration in seconds or minutes (e.g., 45 seconds, 2 minutes).\n\n")

	b.WriteString("**6 Minutes of Mary (Core Finisher, 5-6 minutes)**\n")
	b.WriteString("This section is MANDATORY. List 4-6 core/ab exercises. This can be timed or rep-based. Use F3 Exicon names like LBCs (Little Baby Crunches), Flutter Kicks, American Hammers.\n\n")

	b.WriteString("**Circle of Trust (COT)**\n")
	b.WriteString("This section is MANDATORY. Provide one short, non-religious, inclusive motivational thought or quote about perseverance, community, or personal growth.\n")

	return b.String()
}
