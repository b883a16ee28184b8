package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spec-kit/mood-journal/internal/persistence"
)

// ErrCorruptBlob marks a persisted value that could not be decoded.
var ErrCorruptBlob = errors.New("corrupt persisted blob")

// loadBlob decodes the JSON value under key into dst. A missing key leaves
// dst untouched and is not an error.
func loadBlob(ctx context.Context, store persistence.Substrate, key string, dst any) error {
	raw, ok, err := store.Get(ctx, key)
	if errors.Is(err, persistence.ErrCorruptDocument) {
		return fmt.Errorf("%w: %s: %v", ErrCorruptBlob, key, err)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptBlob, key, err)
	}
	return nil
}

func saveBlob(ctx context.Context, store persistence.Substrate, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
