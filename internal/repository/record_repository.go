package repository

import (
	"context"
	"reflect"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/persistence"
)

// RecordRepository persists every user's collection of one record variant as
// a single email -> []R blob. Reads and writes are always whole-blob.
type RecordRepository[R domain.Record] interface {
	Kind() domain.RecordKind
	LoadAll(ctx context.Context) (map[string][]R, error)
	SaveAll(ctx context.Context, all map[string][]R) error
	ForUser(ctx context.Context, email string) ([]R, error)
}

type recordRepository[R domain.Record] struct {
	store persistence.Substrate
	kind  domain.RecordKind
	key   string
}

// NewRecordRepository returns a substrate-backed repository for kind.
func NewRecordRepository[R domain.Record](store persistence.Substrate, keys Keys, kind domain.RecordKind) RecordRepository[R] {
	return &recordRepository[R]{store: store, kind: kind, key: keys.Records(kind)}
}

func (r *recordRepository[R]) Kind() domain.RecordKind {
	return r.kind
}

func (r *recordRepository[R]) LoadAll(ctx context.Context) (map[string][]R, error) {
	all := make(map[string][]R)
	if err := loadBlob(ctx, r.store, r.key, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = make(map[string][]R)
	}
	for email, records := range all {
		all[email] = dropNil(records)
	}
	return all, nil
}

func (r *recordRepository[R]) SaveAll(ctx context.Context, all map[string][]R) error {
	return saveBlob(ctx, r.store, r.key, all)
}

func (r *recordRepository[R]) ForUser(ctx context.Context, email string) ([]R, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return all[email], nil
}

// dropNil removes null array elements, which decode to nil pointers.
func dropNil[R domain.Record](records []R) []R {
	kept := records[:0]
	for _, rec := range records {
		v := reflect.ValueOf(rec)
		if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
