package guard

import (
	"context"
	"errors"
)

// ErrModelStorageNotConfigured is returned when a model persistence operation
// is requested but no ModelStorage backend was configured.
var ErrModelStorageNotConfigured = errors.New("model storage not configured")

// ModelStorage persists and restores encoded model artifacts.
type ModelStorage interface {
	// SaveModel stores the encoded artifact, replacing any previous one.
	SaveModel(ctx context.Context, artifact []byte) error

	// LoadModel returns the most recently stored artifact.
	LoadModel(ctx context.Context) ([]byte, error)
}

// nopModelStorage is the default backend used when no ModelStorage is
// configured. Saves are dropped silently so training still works in-memory;
// loads fail fast so a restore attempt surfaces the missing configuration.
type nopModelStorage struct{}

var _ ModelStorage = nopModelStorage{}

func (nopModelStorage) SaveModel(ctx context.Context, artifact []byte) error {
	return nil
}

func (nopModelStorage) LoadModel(ctx context.Context) ([]byte, error) {
	return nil, ErrModelStorageNotConfigured
}
