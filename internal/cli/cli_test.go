package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/mood-journal/internal/config"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/service"
	"github.com/spec-kit/mood-journal/internal/summarizer"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

type stubSummarizer struct {
	err error
}

func (s stubSummarizer) Summarize(_ context.Context, in summarizer.Input) (summarizer.Output, error) {
	if s.err != nil {
		return summarizer.Output{}, s.err
	}
	return summarizer.Output{TrendSummary: "You logged " + in.MoodLogs[0].Mood + " most recently."}, nil
}

type journal struct {
	t     *testing.T
	store *persistence.Memory
	trend summarizer.Summarizer
}

func newJournal(t *testing.T) *journal {
	return &journal{t: t, store: persistence.NewMemory(), trend: stubSummarizer{}}
}

func (j *journal) run(stdin string, args ...string) (string, error) {
	j.t.Helper()
	cfg := config.Config{
		Storage:    config.StorageConfig{Backend: config.StorageMemory, KeyPrefix: "moodjournal", IDStrategy: "uuid"},
		Auth:       config.AuthConfig{PasswordScheme: "plain"},
		Summarizer: config.SummarizerConfig{MinMoods: 3},
	}
	closed := false
	boot := func(context.Context) (*service.Container, func() error, error) {
		c, err := service.NewContainer(cfg, j.store, j.trend, zaptest.NewLogger(j.t))
		return c, func() error { closed = true; return nil }, err
	}

	root := NewRootCommand(boot)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		assert.True(j.t, closed, "storage must be closed after %v", args)
	}
	return out.String(), err
}

func (j *journal) mustRun(args ...string) string {
	j.t.Helper()
	out, err := j.run("", args...)
	require.NoError(j.t, err, "moodjournal %s", strings.Join(args, " "))
	return out
}

func TestScenarioFromTheTerminal(t *testing.T) {
	j := newJournal(t)

	out := j.mustRun("signup", "a@x.com", "-p", "secret1", "--name", "Ann")
	assert.Contains(t, out, "Welcome, Ann!")
	assert.Equal(t, "Ann <a@x.com>\n", j.mustRun("whoami"))

	j.mustRun("mood", "log", "happy", "--note", "feeling good")
	out = j.mustRun("mood", "list")
	assert.Contains(t, out, "happy")
	assert.Contains(t, out, "feeling good")

	assert.Contains(t, j.mustRun("logout"), "Logged out.")
	assert.Equal(t, "Not logged in.\n", j.mustRun("whoami"))

	_, err := j.run("", "login", "a@x.com", "-p", "wrongpass")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", Describe(err))
	assert.Equal(t, "Not logged in.\n", j.mustRun("whoami"))

	out, err = j.run("secret1\n", "login", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Ann!")
	assert.Contains(t, j.mustRun("mood", "list"), "feeling good")
}

func TestSignupRejectsDuplicatesAndBadInput(t *testing.T) {
	j := newJournal(t)
	j.mustRun("signup", "a@x.com", "-p", "secret1")

	_, err := j.run("", "signup", "a@x.com", "-p", "another")
	assert.ErrorContains(t, err, "already exists")

	_, err = j.run("", "signup", "nope", "-p", "123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCommandsRequireLogin(t *testing.T) {
	j := newJournal(t)
	for _, args := range [][]string{
		{"mood", "log", "happy"},
		{"mood", "list"},
		{"entry", "add", "--sleep", "8", "--stress", "2", "--symptoms", "1", "--mood", "7", "--engagement", "6"},
		{"dashboard"},
		{"analyze"},
		{"profile"},
	} {
		_, err := j.run("", args...)
		assert.ErrorContains(t, err, "not logged in", strings.Join(args, " "))
	}
}

func TestMoodCommands(t *testing.T) {
	j := newJournal(t)
	j.mustRun("signup", "a@x.com", "-p", "secret1")

	var logged struct {
		ID   string `json:"id"`
		Mood string `json:"mood"`
	}
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("mood", "log", "sad", "--json")), &logged))
	assert.Equal(t, "sad", logged.Mood)

	j.mustRun("mood", "log", "angry")
	j.mustRun("mood", "edit", logged.ID, "--mood", "excited", "--note", "turned around")

	out := j.mustRun("mood", "show", logged.ID)
	assert.Contains(t, out, "excited")
	assert.Contains(t, out, "turned around")

	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("mood", "list", "--json")), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "angry", list[0]["mood"])

	_, err := j.run("", "mood", "log", "bored")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	j.mustRun("mood", "delete", logged.ID)
	_, err = j.run("", "mood", "delete", logged.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	_, err = j.run("", "mood", "show", logged.ID)
	assert.ErrorContains(t, err, "not found")
}

func TestEntryCommands(t *testing.T) {
	j := newJournal(t)
	j.mustRun("signup", "a@x.com", "-p", "secret1")

	add := func(date string) string {
		var entry struct {
			ID string `json:"id"`
		}
		out := j.mustRun("entry", "add", "--json", "--date", date,
			"--sleep", "7.5", "--stress", "3", "--symptoms", "2", "--mood", "8", "--engagement", "6")
		require.NoError(t, json.Unmarshal([]byte(out), &entry))
		return entry.ID
	}
	older := add("2024-05-01")
	newer := add("2024-05-03")

	out := j.mustRun("entry", "list")
	assert.Less(t, strings.Index(out, newer), strings.Index(out, older))

	j.mustRun("entry", "edit", older, "--sleep", "9", "--date", "2024-05-04", "--notes", "slept in")
	out = j.mustRun("entry", "show", older)
	assert.Contains(t, out, "Sleep:       9.0 h")
	assert.Contains(t, out, "Date:        2024-05-04")
	assert.Contains(t, out, "Stress:      3/10")
	assert.Contains(t, out, "Notes:       slept in")

	out = j.mustRun("entry", "list")
	assert.Less(t, strings.Index(out, older), strings.Index(out, newer))

	_, err := j.run("", "entry", "add", "--date", "2024-05-02", "--sleep", "25",
		"--stress", "3", "--symptoms", "2", "--mood", "8", "--engagement", "6")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	j.mustRun("entry", "delete", newer)
	assert.Contains(t, j.mustRun("profile"), "Entries:  1")
}

func TestDashboardAndAnalyze(t *testing.T) {
	j := newJournal(t)
	j.mustRun("signup", "ann@x.com", "-p", "secret1")

	out := j.mustRun("dashboard")
	assert.Contains(t, out, "Welcome back, ann!")
	assert.Contains(t, out, "Last mood:      Not logged yet")
	assert.Contains(t, out, "Log 3 more mood(s)")

	_, err := j.run("", "analyze")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	j.mustRun("profile", "set-name", "Ann")
	for _, m := range []string{"happy", "sad", "stressed"} {
		j.mustRun("mood", "log", m)
	}
	out = j.mustRun("dashboard")
	assert.Contains(t, out, "Welcome back, Ann!")
	assert.Contains(t, out, "Last mood:      stressed")
	assert.NotContains(t, out, "unlock trend analysis")

	assert.Equal(t, "You logged stressed most recently.\n", j.mustRun("analyze"))

	j.trend = stubSummarizer{err: errors.New("503 from upstream")}
	_, err = j.run("", "analyze")
	require.Error(t, err)
	assert.Equal(t, service.SummaryFailureMessage, Describe(err))
}
