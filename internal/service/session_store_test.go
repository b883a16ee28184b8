package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/events"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/repository"
)

func TestScenarioSignupLoginLogMoodLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	sess := h.open()
	assert.False(t, sess.Loading())
	assert.False(t, sess.Authenticated())

	ok, err := h.sessions.Signup(ctx, sess, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.sessions.Login(ctx, sess, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = h.moods.Add(ctx, sess, &domain.MoodRecord{Mood: domain.MoodHappy, Note: "feeling good"})
	require.NoError(t, err)
	moods := h.moods.List(sess)
	require.Len(t, moods, 1)
	assert.Equal(t, domain.MoodHappy, moods[0].Mood)
	assert.Equal(t, "feeling good", moods[0].Note)

	require.NoError(t, h.sessions.Logout(ctx, sess))
	assert.False(t, sess.Authenticated())
	assert.Empty(t, h.moods.List(sess))

	ok, err = h.sessions.Login(ctx, sess, "a@x.com", "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []events.EventType{
		events.EventSignedUp, events.EventSignedIn, events.EventRecordAdded, events.EventSignedOut,
	}, h.eventTypes())
}

func TestSignupThenLoginSucceedsForFreshEmails(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	triples := []struct{ email, password, name string }{
		{"a@x.com", "secret1", "Ann"},
		{"B@x.com", "P@ssw0rd!", ""},
		{"c+tag@example.org", "      ", "Cee"},
	}
	for _, tr := range triples {
		sess := h.open()
		ok, err := h.sessions.Signup(ctx, sess, tr.email, tr.password, tr.name)
		require.NoError(t, err)
		require.True(t, ok, tr.email)

		fresh := h.open()
		require.NoError(t, h.sessions.Logout(ctx, fresh))
		ok, err = h.sessions.Login(ctx, fresh, tr.email, tr.password)
		require.NoError(t, err)
		assert.True(t, ok, tr.email)
		assert.Equal(t, tr.email, fresh.Email())
	}
}

func TestSignupDuplicateEmailDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	sess := h.open()

	ok, err := h.sessions.Signup(ctx, sess, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.sessions.Signup(ctx, h.open(), "a@x.com", "other", "Impostor")
	require.NoError(t, err)
	assert.False(t, ok)

	users, err := repository.NewUserDirectory(h.store, h.keys).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Credential{Password: "secret1", Name: "Ann"}, users["a@x.com"])

	// keys are matched exactly, so a different case is a different account
	ok, err = h.sessions.Signup(ctx, h.open(), "A@x.com", "other", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupDefaultsNameToEmailLocalPart(t *testing.T) {
	h := newHarness(t)
	sess := h.signedIn(t, "dana@x.com")

	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "dana", user.Name)
}

func TestLoginFailuresLeavePointerUnchanged(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	sess := h.signedIn(t, "a@x.com")

	for _, attempt := range []struct{ email, password string }{
		{"a@x.com", "wrongpass"},
		{"a@x.com", "SECRET1"},
		{"nobody@x.com", "secret1"},
	} {
		ok, err := h.sessions.Login(ctx, sess, attempt.email, attempt.password)
		require.NoError(t, err)
		assert.False(t, ok)

		current, _, err := h.store.Get(ctx, h.keys.CurrentUser)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", current)
		assert.Equal(t, "a@x.com", sess.Email())
	}
}

func TestOpenRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	sess := h.signedIn(t, "a@x.com")
	_, err := h.entries.Add(ctx, sess, &domain.HealthEntry{Date: day(1), Sleep: 7, Stress: 3, Symptoms: 2, Mood: 8, Engagement: 6})
	require.NoError(t, err)

	restored := h.open()
	assert.False(t, restored.Loading())
	assert.Equal(t, "a@x.com", restored.Email())
	assert.Len(t, h.entries.List(restored), 1)
	assert.Empty(t, h.moods.List(restored))
}

func TestOpenDegradesOnCorruptState(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt users blob", func(t *testing.T) {
		h := newHarness(t)
		h.signedIn(t, "a@x.com")
		require.NoError(t, h.store.Set(ctx, h.keys.Users, "{broken"))

		sess := h.open()
		assert.False(t, sess.Loading())
		assert.False(t, sess.Authenticated())

		ok, err := h.sessions.Login(ctx, sess, "a@x.com", "secret1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = h.sessions.Signup(ctx, sess, "b@x.com", "secret1", "")
		assert.ErrorIs(t, err, repository.ErrCorruptBlob)
		raw, _, _ := h.store.Get(ctx, h.keys.Users)
		assert.Equal(t, "{broken", raw)
	})

	t.Run("corrupt records blob", func(t *testing.T) {
		h := newHarness(t)
		h.signedIn(t, "a@x.com")
		require.NoError(t, h.store.Set(ctx, h.keys.Records(domain.RecordKindMood), "[[["))

		sess := h.open()
		assert.True(t, sess.Authenticated())
		assert.Empty(t, h.moods.List(sess))
	})

	t.Run("null records", func(t *testing.T) {
		h := newHarness(t)
		h.signedIn(t, "a@x.com")
		require.NoError(t, h.store.Set(ctx, h.keys.Records(domain.RecordKindMood), `{"a@x.com":[null]}`))

		sess := h.open()
		assert.True(t, sess.Authenticated())
		assert.Empty(t, h.moods.List(sess))
		_, found := h.moods.Get(sess, "x")
		assert.False(t, found)

		dash, err := NewDashboardService(h.moods, h.entries).Build(sess)
		require.NoError(t, err)
		assert.Zero(t, dash.Moods.Total)

		_, err = h.moods.Add(ctx, sess, &domain.MoodRecord{Mood: domain.MoodHappy})
		require.NoError(t, err)
		assert.Len(t, h.moods.List(sess), 1)
	})

	t.Run("pointer to unknown user", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(ctx, h.keys.CurrentUser, "ghost@x.com"))

		sess := h.open()
		assert.False(t, sess.Authenticated())
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	anon := h.open()
	assert.NotPanics(t, func() {
		assert.NoError(t, h.sessions.UpdateUser(ctx, anon, "Nobody"))
	})
	_, ok, err := h.store.Get(ctx, h.keys.Users)
	require.NoError(t, err)
	assert.False(t, ok, "no-op must not touch the directory")

	sess := h.signedIn(t, "a@x.com")
	_, err = h.moods.Add(ctx, sess, &domain.MoodRecord{Mood: domain.MoodSad})
	require.NoError(t, err)

	require.NoError(t, h.sessions.UpdateUser(ctx, sess, "Annie"))
	user, _ := sess.User()
	assert.Equal(t, "Annie", user.Name)
	assert.Len(t, h.moods.List(sess), 1)

	users, err := repository.NewUserDirectory(h.store, h.keys).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Annie", users["a@x.com"].Name)
	assert.Equal(t, "secret1", users["a@x.com"].Password)
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	one := h.sessions.Open(ctx, repository.NewEphemeralPointer(""))
	two := h.sessions.Open(ctx, repository.NewEphemeralPointer(""))

	ok, err := h.sessions.Signup(ctx, one, "a@x.com", "secret1", "")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = h.sessions.Signup(ctx, two, "b@x.com", "secret1", "")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = h.moods.Add(ctx, one, &domain.MoodRecord{Mood: domain.MoodExcited})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", one.Email())
	assert.Equal(t, "b@x.com", two.Email())
	assert.Len(t, h.moods.List(one), 1)
	assert.Empty(t, h.moods.List(two))

	_, ok, err = h.store.Get(ctx, h.keys.CurrentUser)
	require.NoError(t, err)
	assert.False(t, ok, "ephemeral pointers never persist")
}

func TestBcryptSessionStore(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.sessions = NewSessionStore(SessionDependencies{
		Users:     repository.NewUserDirectory(h.store, h.keys),
		Passwords: auth.BcryptPasswords{Cost: bcrypt.MinCost},
		Logger:    zaptest.NewLogger(t),
	})

	sess := h.open()
	ok, err := h.sessions.Signup(ctx, sess, "a@x.com", "secret1", "Ann")
	require.NoError(t, err)
	require.True(t, ok)

	users, err := repository.NewUserDirectory(h.store, h.keys).Load(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", users["a@x.com"].Password)

	ok, err = h.sessions.Login(ctx, sess, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginRejectsUnreadableStorageDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := persistence.NewFileStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	keys := repository.NewKeys("moodjournal")
	sessions := NewSessionStore(SessionDependencies{
		Users:  repository.NewUserDirectory(store, keys),
		Logger: zaptest.NewLogger(t),
	})

	sess := sessions.Open(ctx, repository.NewEphemeralPointer(""))
	assert.False(t, sess.Authenticated())

	ok, err := sessions.Login(ctx, sess, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, sess.Authenticated())
}
