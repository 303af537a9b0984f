// Package snapshot persists one JSON document per file. Every Save replaces
// the whole document through a temp file and a rename, so a reader sees
// either the previous snapshot or the new one, never a partial write.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
)

const defaultPerm fs.FileMode = 0o644

var (
	ErrMissing = errors.New("snapshot missing")
	ErrCorrupt = errors.New("snapshot corrupt")
)

type File[T any] struct {
	path string
	perm fs.FileMode
}

func New[T any](path string) *File[T] {
	return &File[T]{path: path, perm: defaultPerm}
}

func (f *File[T]) Path() string { return f.path }

func (f *File[T]) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f *File[T]) Load() (T, error) {
	var v T

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return v, fmt.Errorf("%w: %s", ErrMissing, f.path)
	}
	if err != nil {
		return v, fmt.Errorf("read %s: %w", f.path, err)
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return v, nil
}

func (f *File[T]) Save(v T) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	if err := renameio.WriteFile(f.path, raw, f.perm); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
