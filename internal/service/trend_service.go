package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/summarizer"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// SummaryFailureMessage is the only failure text callers ever see.
const SummaryFailureMessage = "Sorry, something went wrong while analyzing your moods."

// TrendService asks the summarizer for a narrative of the user's moods.
type TrendService struct {
	moods      *RecordStore[*domain.MoodRecord]
	summarizer summarizer.Summarizer
	minMoods   int
	timeout    time.Duration
	logger     *zap.Logger
}

// TrendDependencies bundles collaborators for the trend service.
type TrendDependencies struct {
	Moods      *RecordStore[*domain.MoodRecord]
	Summarizer summarizer.Summarizer
	MinMoods   int
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewTrendService constructs the service. A nil Summarizer makes every
// analysis fail as unavailable.
func NewTrendService(deps TrendDependencies) *TrendService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrendService{
		moods:      deps.Moods,
		summarizer: deps.Summarizer,
		minMoods:   deps.MinMoods,
		timeout:    deps.Timeout,
		logger:     logger,
	}
}

// MinMoods is the number of moods needed before analysis is offered.
func (t *TrendService) MinMoods() int {
	return t.minMoods
}

// Analyze summarizes every mood in the session's collection. There is no
// retry; a failed call surfaces as SUMMARY_UNAVAILABLE.
func (t *TrendService) Analyze(ctx context.Context, sess *Session) (string, error) {
	if !sess.Authenticated() {
		return "", ErrNoActiveSession
	}
	moods := t.moods.List(sess)
	if len(moods) < t.minMoods {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("log at least %d moods to unlock analysis", t.minMoods),
			map[string]any{"logged": len(moods), "required": t.minMoods})
	}
	if t.summarizer == nil {
		return "", apperrors.NewUnavailable("SUMMARY_UNAVAILABLE", SummaryFailureMessage, summarizer.ErrNotConfigured)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	out, err := t.summarizer.Summarize(ctx, MoodLogInput(moods))
	if err != nil {
		t.logger.Error("mood trend analysis failed", zap.String("email", sess.Email()), zap.Error(err))
		return "", apperrors.NewUnavailable("SUMMARY_UNAVAILABLE", SummaryFailureMessage, err)
	}
	return out.TrendSummary, nil
}

// MoodLogInput maps moods to the summarizer request shape.
func MoodLogInput(moods []*domain.MoodRecord) summarizer.Input {
	logs := make([]summarizer.MoodLog, 0, len(moods))
	for _, m := range moods {
		logs = append(logs, summarizer.MoodLog{
			Mood:      string(m.Mood),
			Note:      m.Note,
			Timestamp: m.Timestamp.UTC().Format(domain.TimestampLayout),
		})
	}
	return summarizer.Input{MoodLogs: logs}
}
