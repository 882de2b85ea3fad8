package guard

import (
	"context"

	"github.com/gabapcia/sharkguard/internal/pkg/logger"
)

// Watchlist answers whether a wallet has been manually flagged by an
// operator. It is a read-only view; flag management lives elsewhere.
type Watchlist interface {
	// IsFlagged reports whether the address is currently on the watchlist.
	IsFlagged(ctx context.Context, address string) (bool, error)
}

// nopWatchlist is the default used when no Watchlist is configured. No
// wallet is ever considered flagged.
type nopWatchlist struct{}

var _ Watchlist = nopWatchlist{}

func (nopWatchlist) IsFlagged(ctx context.Context, address string) (bool, error) {
	return false, nil
}

// checkWatchlist queries the watchlist, treating a lookup failure as "not
// flagged". The watchlist is advisory; its backend being down must not block
// an analysis.
func (s *service) checkWatchlist(ctx context.Context, address string) bool {
	flagged, err := s.watchlist.IsFlagged(ctx, address)
	if err != nil {
		logger.Error(ctx, "watchlist lookup failed",
			"wallet.address", address,
			"error", err,
		)
		return false
	}

	return flagged
}
