package repository

import (
	"context"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/persistence"
)

// UserDirectory persists the email -> credential mapping as one blob.
type UserDirectory interface {
	Load(ctx context.Context) (map[string]domain.Credential, error)
	Save(ctx context.Context, users map[string]domain.Credential) error
}

type userDirectory struct {
	store persistence.Substrate
	key   string
}

// NewUserDirectory returns a substrate-backed directory stored under keys.Users.
func NewUserDirectory(store persistence.Substrate, keys Keys) UserDirectory {
	return &userDirectory{store: store, key: keys.Users}
}

func (r *userDirectory) Load(ctx context.Context) (map[string]domain.Credential, error) {
	users := make(map[string]domain.Credential)
	if err := loadBlob(ctx, r.store, r.key, &users); err != nil {
		return nil, err
	}
	if users == nil {
		// a persisted "null" decodes to a nil map
		users = make(map[string]domain.Credential)
	}
	return users, nil
}

func (r *userDirectory) Save(ctx context.Context, users map[string]domain.Credential) error {
	return saveBlob(ctx, r.store, r.key, users)
}
