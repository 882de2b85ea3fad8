package redis

import (
	"context"

	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/watchlist"
)

// watchlistKey is the Redis set holding all manually flagged wallet
// addresses.
const watchlistKey = "watchlist:wallets"

// FlagWallet implements the watchlist.Storage interface using a Redis set.
//
// Adding the same wallet twice is a no-op, which makes flagging idempotent.
//
// Parameters:
//   - ctx: context for timeout and cancellation.
//   - id: the validated wallet identifier to flag.
//
// Returns:
//   - An error if the Redis operation fails.
func (c *client) FlagWallet(ctx context.Context, id watchlist.WalletIdentifier) error {
	return c.conn.SAdd(ctx, watchlistKey, id.Address).Err()
}

// UnflagWallet removes a wallet from the watchlist set. Removing a wallet
// that was never flagged is not an error.
//
// Parameters:
//   - ctx: context for timeout and cancellation.
//   - id: the validated wallet identifier to unflag.
//
// Returns:
//   - An error if the Redis operation fails.
func (c *client) UnflagWallet(ctx context.Context, id watchlist.WalletIdentifier) error {
	return c.conn.SRem(ctx, watchlistKey, id.Address).Err()
}

// IsWalletFlagged reports whether a wallet is a member of the watchlist set.
//
// Parameters:
//   - ctx: context for timeout and cancellation.
//   - id: the validated wallet identifier to look up.
//
// Returns:
//   - Whether the wallet is flagged.
//   - An error if the Redis operation fails.
func (c *client) IsWalletFlagged(ctx context.Context, id watchlist.WalletIdentifier) (bool, error) {
	return c.conn.SIsMember(ctx, watchlistKey, id.Address).Result()
}

// IsFlagged adapts the storage to the read-only view the analysis pipeline
// consumes, so the same Redis client can be wired into both services.
func (c *client) IsFlagged(ctx context.Context, address string) (bool, error) {
	return c.IsWalletFlagged(ctx, watchlist.WalletIdentifier{Address: address})
}

// Compile-time assertions to ensure *client satisfies both watchlist views.
var (
	_ watchlist.Storage = new(client)
	_ guard.Watchlist   = new(client)
)
