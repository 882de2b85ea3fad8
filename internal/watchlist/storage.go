package watchlist

import (
	"context"
	"errors"
)

// ErrStorageNotConfigured is returned by UnconfiguredStorage for every
// operation.
var ErrStorageNotConfigured = errors.New("watchlist storage not configured")

// UnconfiguredStorage is the backend wired in when no watchlist store is
// available. Flag and Unflag fail fast so operators learn the feature is
// disabled; lookups report no wallet as flagged so analysis keeps working.
type UnconfiguredStorage struct{}

var _ Storage = UnconfiguredStorage{}

func (UnconfiguredStorage) FlagWallet(ctx context.Context, id WalletIdentifier) error {
	return ErrStorageNotConfigured
}

func (UnconfiguredStorage) UnflagWallet(ctx context.Context, id WalletIdentifier) error {
	return ErrStorageNotConfigured
}

func (UnconfiguredStorage) IsWalletFlagged(ctx context.Context, id WalletIdentifier) (bool, error) {
	return false, nil
}
