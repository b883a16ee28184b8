// Package summarizer turns a list of mood logs into a short natural-language
// description of the user's mood trends using a hosted text model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when no remote model is available.
var ErrNotConfigured = errors.New("summarizer not configured")

// MoodLog is one mood as sent to the model.
type MoodLog struct {
	Mood      string `json:"mood"`
	Note      string `json:"note,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Input is the summarizer request.
type Input struct {
	MoodLogs []MoodLog `json:"moodLogs"`
}

// Output is the summarizer response.
type Output struct {
	TrendSummary string `json:"trendSummary"`
}

// Summarizer produces a trend summary for a list of moods.
type Summarizer interface {
	Summarize(ctx context.Context, in Input) (Output, error)
}

// Validate checks the request shape.
func (in Input) Validate() error {
	for i, log := range in.MoodLogs {
		if strings.TrimSpace(log.Mood) == "" {
			return fmt.Errorf("moodLogs[%d]: mood is required", i)
		}
		if strings.TrimSpace(log.Timestamp) == "" {
			return fmt.Errorf("moodLogs[%d]: timestamp is required", i)
		}
	}
	return nil
}

// Validate checks the response shape.
func (out Output) Validate() error {
	if strings.TrimSpace(out.TrendSummary) == "" {
		return errors.New("trendSummary is empty")
	}
	return nil
}
