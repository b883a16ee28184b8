package summarizer

import (
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("analyzeMoodTrends").Parse(
	`You are a mood analysis expert. Analyze the following mood logs and notes to identify overall trends in the user's mood.

Mood Logs:
{{range .MoodLogs}}- Mood: {{.Mood}}, Note: {{.Note}}, Timestamp: {{.Timestamp}}
{{end}}
Based on these logs, provide a concise summary of the user's mood trends.`))

// RenderPrompt interpolates the mood logs into the instruction template.
func RenderPrompt(in Input) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}
