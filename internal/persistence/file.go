package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const lockRetryDelay = 25 * time.Millisecond

// FileStore keeps every key in one JSON document on disk. An advisory lock
// file serializes access between processes sharing the document; the mutex
// does the same inside one process.
type FileStore struct {
	path   string
	lock   *flock.Flock
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore prepares a file-backed substrate at path, creating parent
// directories. The document itself is created on first write.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	logger.Debug("using file storage", zap.String("path", path))
	return &FileStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}, nil
}

// Path returns the location of the JSON document.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.lock.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return "", false, fmt.Errorf("acquire read lock: %w", err)
	}
	defer f.unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	val, ok := values[key]
	return val, ok, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	return f.mutate(ctx, func(values map[string]string) {
		values[key] = value
	})
}

func (f *FileStore) Remove(ctx context.Context, key string) error {
	return f.mutate(ctx, func(values map[string]string) {
		delete(values, key)
	})
}

// Ping checks that the document, if present, is readable.
func (f *FileStore) Ping(ctx context.Context) error {
	_, _, err := f.Get(ctx, "")
	return err
}

func (f *FileStore) Close() error {
	return f.lock.Close()
}

func (f *FileStore) mutate(ctx context.Context, apply func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.lock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("acquire write lock: %w", err)
	}
	defer f.unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	apply(values)
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, f.path, err)
	}
	return values, nil
}

// write replaces the document atomically via a temp file in the same directory.
func (f *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) unlock() {
	if err := f.lock.Unlock(); err != nil {
		f.logger.Warn("release storage lock", zap.Error(err))
	}
}
