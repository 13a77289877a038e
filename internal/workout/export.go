package workout

import "strings"

// FormatForExport rewrites generated text into Slack-flavoured plain text:
// headings become *UPPER CASE*, sub-headings _italic_, list items "• ", and
// **bold** spans *bold*. Each section is separated by one blank line.
func FormatForExport(text string) string {
	doc := ParseDocument(text)
	var b strings.Builder
	for i, line := range doc.Lines {
		if line.Kind == LineHeading && i > 0 {
			b.WriteString("\n")
		}
		switch line.Kind {
		case LineHeading:
			b.WriteString("*" + strings.ToUpper(line.Text) + "*")
		case LineSubHeading:
			b.WriteString("_" + line.Text + "_")
		case LineListItem:
			b.WriteString("• " + slackBold(line.Text))
		default:
			b.WriteString(slackBold(line.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func slackBold(s string) string {
	return boldSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSpace(m[2 : len(m)-2])
		if inner == "" {
			return ""
		}
		return "*" + inner + "*"
	})
}
