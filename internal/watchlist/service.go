// Package watchlist manages the set of wallets operators have manually
// flagged as suspicious. It validates input and delegates persistence to the
// configured Storage backend.
package watchlist

import "context"

// Service defines the interface for managing and querying the manual
// watchlist.
type Service interface {
	// Flag adds a wallet to the watchlist.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - address: the Ethereum wallet address to flag.
	//
	// Returns:
	//   - An error if validation fails or the entry cannot be persisted.
	Flag(ctx context.Context, address string) error

	// Unflag removes a wallet from the watchlist.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - address: the Ethereum wallet address to unflag.
	//
	// Returns:
	//   - An error if validation fails or the removal cannot be persisted.
	Unflag(ctx context.Context, address string) error

	// IsFlagged reports whether a wallet is currently on the watchlist.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - address: the Ethereum wallet address to look up.
	//
	// Returns:
	//   - Whether the wallet is flagged.
	//   - An error if validation fails or the lookup cannot be completed.
	IsFlagged(ctx context.Context, address string) (bool, error)
}

// service is the concrete implementation of the Service interface. It uses a
// Storage backend to persist flagged wallets.
type service struct {
	storage Storage
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a new watchlist service using the provided Storage
// implementation.
//
// This constructor is intended to be used by dependency injection during
// application wiring.
func New(storage Storage) *service {
	return &service{
		storage: storage,
	}
}

// Flag validates the address and adds it to the watchlist.
func (s *service) Flag(ctx context.Context, address string) error {
	id, err := buildWalletIdentifier(address)
	if err != nil {
		return err
	}

	return s.storage.FlagWallet(ctx, id)
}

// Unflag validates the address and removes it from the watchlist.
func (s *service) Unflag(ctx context.Context, address string) error {
	id, err := buildWalletIdentifier(address)
	if err != nil {
		return err
	}

	return s.storage.UnflagWallet(ctx, id)
}

// IsFlagged validates the address and reports whether it is on the watchlist.
func (s *service) IsFlagged(ctx context.Context, address string) (bool, error) {
	id, err := buildWalletIdentifier(address)
	if err != nil {
		return false, err
	}

	return s.storage.IsWalletFlagged(ctx, id)
}
