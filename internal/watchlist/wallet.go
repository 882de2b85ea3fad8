package watchlist

import (
	"context"
	"strings"

	"github.com/gabapcia/sharkguard/internal/pkg/validation"
)

// WalletIdentifier identifies a wallet on the manual watchlist.
//
// The address is required and validated upon creation.
type WalletIdentifier struct {
	Address string `validate:"required,eth_addr"` // Ethereum wallet address
}

// Storage defines the persistence interface for the set of manually flagged
// wallets.
//
// This interface allows different storage backends to manage which wallets
// operators have marked as suspicious.
type Storage interface {
	// FlagWallet adds the given WalletIdentifier to the watchlist.
	//
	// This method should be idempotent and safe to call multiple times with the same ID.
	FlagWallet(ctx context.Context, id WalletIdentifier) error

	// UnflagWallet removes the given WalletIdentifier from the watchlist.
	//
	// Removing a wallet that is not on the list is not an error.
	UnflagWallet(ctx context.Context, id WalletIdentifier) error

	// IsWalletFlagged reports whether the given WalletIdentifier is on the watchlist.
	IsWalletFlagged(ctx context.Context, id WalletIdentifier) (bool, error)
}

// buildWalletIdentifier constructs and validates a WalletIdentifier from a
// raw address. Addresses are lowercased so checksum casing never splits one
// wallet into two watchlist entries.
func buildWalletIdentifier(address string) (WalletIdentifier, error) {
	id := WalletIdentifier{
		Address: strings.TrimSpace(address),
	}
	if err := validation.Validate(id); err != nil {
		return WalletIdentifier{}, err
	}

	id.Address = strings.ToLower(id.Address)
	return id, nil
}
