package repository

import (
	"context"

	"github.com/spec-kit/mood-journal/internal/persistence"
)

// SessionPointer remembers which user is signed in.
type SessionPointer interface {
	// Current returns the signed-in email, or "" when anonymous.
	Current(ctx context.Context) (string, error)
	Set(ctx context.Context, email string) error
	Clear(ctx context.Context) error
}

type substratePointer struct {
	store persistence.Substrate
	key   string
}

// NewSubstratePointer persists the pointer under keys.CurrentUser so it
// survives restarts, the way a local client remembers its last login.
func NewSubstratePointer(store persistence.Substrate, keys Keys) SessionPointer {
	return &substratePointer{store: store, key: keys.CurrentUser}
}

func (p *substratePointer) Current(ctx context.Context) (string, error) {
	email, _, err := p.store.Get(ctx, p.key)
	return email, err
}

func (p *substratePointer) Set(ctx context.Context, email string) error {
	return p.store.Set(ctx, p.key, email)
}

func (p *substratePointer) Clear(ctx context.Context) error {
	return p.store.Remove(ctx, p.key)
}

type ephemeralPointer struct {
	email string
}

// NewEphemeralPointer keeps the pointer in memory only. Request-scoped
// sessions use it so concurrent callers never share a current user.
func NewEphemeralPointer(email string) SessionPointer {
	return &ephemeralPointer{email: email}
}

func (p *ephemeralPointer) Current(context.Context) (string, error) {
	return p.email, nil
}

func (p *ephemeralPointer) Set(_ context.Context, email string) error {
	p.email = email
	return nil
}

func (p *ephemeralPointer) Clear(context.Context) error {
	p.email = ""
	return nil
}
