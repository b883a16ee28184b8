package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/summarizer"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

type stubSummarizer struct {
	out   summarizer.Output
	err   error
	calls []summarizer.Input
	wait  bool
}

func (s *stubSummarizer) Summarize(ctx context.Context, in summarizer.Input) (summarizer.Output, error) {
	s.calls = append(s.calls, in)
	if s.wait {
		<-ctx.Done()
		return summarizer.Output{}, ctx.Err()
	}
	return s.out, s.err
}

func trendHarness(t *testing.T, moods int, stub summarizer.Summarizer) (*TrendService, *Session) {
	t.Helper()
	h := newHarness(t)
	sess := h.signedIn(t, "a@x.com")
	for i := 0; i < moods; i++ {
		_, err := h.moods.Add(context.Background(), sess, &domain.MoodRecord{Mood: domain.MoodHappy, Note: "ok"})
		require.NoError(t, err)
	}
	svc := NewTrendService(TrendDependencies{
		Moods:      h.moods,
		Summarizer: stub,
		MinMoods:   3,
		Timeout:    50 * time.Millisecond,
		Logger:     zaptest.NewLogger(t),
	})
	return svc, sess
}

func TestAnalyzeReturnsSummary(t *testing.T) {
	stub := &stubSummarizer{out: summarizer.Output{TrendSummary: "You have been consistently happy."}}
	svc, sess := trendHarness(t, 3, stub)

	summary, err := svc.Analyze(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "You have been consistently happy.", summary)
	require.Len(t, stub.calls, 1)
	require.Len(t, stub.calls[0].MoodLogs, 3)
	assert.Equal(t, "happy", stub.calls[0].MoodLogs[0].Mood)
	assert.Equal(t, "ok", stub.calls[0].MoodLogs[0].Note)
	_, err = time.Parse(domain.TimestampLayout, stub.calls[0].MoodLogs[0].Timestamp)
	assert.NoError(t, err)
}

func TestAnalyzeNeedsEnoughMoods(t *testing.T) {
	stub := &stubSummarizer{}
	svc, sess := trendHarness(t, 2, stub)

	_, err := svc.Analyze(context.Background(), sess)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Empty(t, stub.calls)
	assert.Equal(t, 3, svc.MinMoods())
}

func TestAnalyzeFailuresAreGeneric(t *testing.T) {
	cases := map[string]summarizer.Summarizer{
		"remote error":   &stubSummarizer{err: errors.New("quota exceeded")},
		"timeout":        &stubSummarizer{wait: true},
		"not configured": nil,
	}
	for name, stub := range cases {
		t.Run(name, func(t *testing.T) {
			svc, sess := trendHarness(t, 4, stub)
			_, err := svc.Analyze(context.Background(), sess)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "SUMMARY_UNAVAILABLE", domainErr.Code)
			assert.Equal(t, SummaryFailureMessage, domainErr.Message)
		})
	}
}

func TestAnalyzeRequiresSession(t *testing.T) {
	h := newHarness(t)
	svc := NewTrendService(TrendDependencies{Moods: h.moods, MinMoods: 3})
	_, err := svc.Analyze(context.Background(), h.open())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}
