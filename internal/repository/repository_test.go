package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/persistence"
)

func TestKeys(t *testing.T) {
	keys := NewKeys("moodjournal")
	assert.Equal(t, "moodjournal_currentUser", keys.CurrentUser)
	assert.Equal(t, "moodjournal_users", keys.Users)
	assert.Equal(t, "moodjournal_moods", keys.Records(domain.RecordKindMood))
	assert.Equal(t, "moodjournal_entries", keys.Records(domain.RecordKindEntry))
}

func TestUserDirectoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	dir := NewUserDirectory(store, NewKeys("mj"))

	users, err := dir.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	users["a@x.com"] = domain.Credential{Password: "secret1", Name: "Ann"}
	require.NoError(t, dir.Save(ctx, users))

	raw, ok, err := store.Get(ctx, "mj_users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a@x.com":{"password":"secret1","name":"Ann"}}`, raw)

	loaded, err := dir.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}

func TestUserDirectoryCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	require.NoError(t, store.Set(ctx, "mj_users", "{oops"))

	_, err := NewUserDirectory(store, NewKeys("mj")).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptBlob))
}

func TestUserDirectoryNullBlob(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	require.NoError(t, store.Set(ctx, "mj_users", "null"))

	users, err := NewUserDirectory(store, NewKeys("mj")).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
}

func TestRecordRepositoryPartitionsByEmail(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	repo := NewRecordRepository[*domain.MoodRecord](store, NewKeys("mj"), domain.RecordKindMood)

	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	all := map[string][]*domain.MoodRecord{
		"a@x.com": {{ID: "1", Mood: domain.MoodHappy, Note: "sun", Timestamp: ts}},
		"b@x.com": {{ID: "2", Mood: domain.MoodSad, Timestamp: ts}},
	}
	require.NoError(t, repo.SaveAll(ctx, all))

	mine, err := repo.ForUser(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "sun", mine[0].Note)

	none, err := repo.ForUser(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Equal(t, domain.RecordKindMood, repo.Kind())
}

func TestRecordRepositoryReadsBrowserTimestamps(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	require.NoError(t, store.Set(ctx, "mj_moods",
		`{"a@x.com":[{"id":"2024-05-01T09:30:00.123Z","mood":"happy","note":"ok","timestamp":"2024-05-01T09:30:00.123Z"}]}`))

	repo := NewRecordRepository[*domain.MoodRecord](store, NewKeys("mj"), domain.RecordKindMood)
	moods, err := repo.ForUser(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, moods, 1)
	assert.Equal(t, 123*time.Millisecond, time.Duration(moods[0].Timestamp.Nanosecond()))
}

func TestRecordRepositorySkipsNullRecords(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()
	require.NoError(t, store.Set(ctx, "mj_entries",
		`{"a@x.com":[null,{"id":"e1","date":"2024-05-01T00:00:00Z","sleep":7,"stress":3,"symptoms":2,"mood":6,"engagement":5,"drugNames":""},null],"b@x.com":[null]}`))

	repo := NewRecordRepository[*domain.HealthEntry](store, NewKeys("mj"), domain.RecordKindEntry)
	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all["a@x.com"], 1)
	assert.Equal(t, "e1", all["a@x.com"][0].RecordID())
	assert.Empty(t, all["b@x.com"])
}

func TestSessionPointers(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemory()

	pointers := map[string]SessionPointer{
		"substrate": NewSubstratePointer(store, NewKeys("mj")),
		"ephemeral": NewEphemeralPointer(""),
	}
	for name, pointer := range pointers {
		t.Run(name, func(t *testing.T) {
			email, err := pointer.Current(ctx)
			require.NoError(t, err)
			assert.Empty(t, email)

			require.NoError(t, pointer.Set(ctx, "a@x.com"))
			email, err = pointer.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", email)

			require.NoError(t, pointer.Clear(ctx))
			email, err = pointer.Current(ctx)
			require.NoError(t, err)
			assert.Empty(t, email)
		})
	}

	_, ok, err := store.Get(ctx, "mj_currentUser")
	require.NoError(t, err)
	assert.False(t, ok, "substrate pointer must remove its key on clear")
}
