// Package file provides filesystem-backed persistence for model artifacts
// and feature datasets.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabapcia/sharkguard/internal/guard"
)

// modelStore persists encoded model artifacts as a single file on disk.
type modelStore struct {
	path string
}

// Ensure compile-time compliance with the guard.ModelStorage interface.
var _ guard.ModelStorage = (*modelStore)(nil)

// NewModelStore creates a model artifact store rooted at the given path.
// Parent directories are created on first save.
func NewModelStore(path string) *modelStore {
	return &modelStore{
		path: path,
	}
}

// SaveModel writes the artifact atomically: the bytes go to a temporary file
// in the same directory first, then a rename replaces the previous artifact.
// A crash mid-save never leaves a truncated artifact behind.
func (s *modelStore) SaveModel(ctx context.Context, artifact []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating model directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary model file: %w", err)
	}

	if _, err := tmp.Write(artifact); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing model artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temporary model file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing model artifact %s: %w", s.path, err)
	}

	return nil
}

// LoadModel reads the most recently saved artifact.
func (s *modelStore) LoadModel(ctx context.Context) ([]byte, error) {
	artifact, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact %s: %w", s.path, err)
	}

	return artifact, nil
}
