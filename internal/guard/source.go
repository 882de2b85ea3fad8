package guard

import (
	"context"

	"github.com/gabapcia/sharkguard/internal/pkg/logger"
	"github.com/gabapcia/sharkguard/internal/txnorm"
)

// TransactionSource fetches the raw transaction history of a wallet from a
// blockchain data provider.
type TransactionSource interface {
	// FetchTransactions returns the raw transaction records for the given
	// address, oldest first if the provider supports ordering. An empty slice
	// with a nil error means the address has no history.
	FetchTransactions(ctx context.Context, address string) ([]txnorm.RawTransaction, error)
}

// fetchTransactions pulls the wallet's history through the configured retry
// policy. A persistent provider failure degrades to an empty history instead
// of aborting the analysis: a wallet with no retrievable transactions is
// itself a meaningful signal, and the report still carries the heuristic and
// watchlist findings.
func (s *service) fetchTransactions(ctx context.Context, address string) []txnorm.RawTransaction {
	var raw []txnorm.RawTransaction

	fetch := func() error {
		var err error
		raw, err = s.source.FetchTransactions(ctx, address)
		return err
	}

	var err error
	if s.retry != nil {
		err = s.retry.Execute(ctx, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		logger.Error(ctx, "transaction fetch failed, analyzing with an empty history",
			"wallet.address", address,
			"error", err,
		)
		return nil
	}

	return raw
}
