// Package guard orchestrates the full wallet analysis pipeline: it pulls a
// wallet's transaction history from a TransactionSource, normalizes it,
// extracts the behavioral feature vector, scores it against the anomaly
// model, evaluates the heuristic rules, and consults the watchlist, producing
// a single Report.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/sharkguard/internal/anomaly"
	"github.com/gabapcia/sharkguard/internal/features"
	"github.com/gabapcia/sharkguard/internal/heuristics"
	"github.com/gabapcia/sharkguard/internal/pkg/resilience/retry"
	"github.com/gabapcia/sharkguard/internal/txnorm"

	"github.com/google/uuid"
)

// Service defines the operations of the wallet analysis pipeline.
type Service interface {
	// Analyze runs the full pipeline for one wallet and returns its Report.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - address: the Ethereum address to analyze, any checksum casing.
	//
	// Returns:
	//   - The analysis Report.
	//   - An error if the address is invalid or no fitted model is available.
	Analyze(ctx context.Context, address string) (Report, error)

	// ExtractFeatures fetches and normalizes the wallet's history and returns
	// its feature vector without scoring it.
	ExtractFeatures(ctx context.Context, address string) (features.Vector, error)

	// Score runs a feature vector through the fitted model.
	Score(ctx context.Context, feat features.Vector) (anomaly.ScoreResult, error)

	// Explain evaluates the heuristic rules over a feature vector and returns
	// the human-readable flags, independent of the model.
	Explain(ctx context.Context, feat features.Vector) []string

	// Train fits the model on a batch of feature vectors and persists the
	// resulting artifact through the configured ModelStorage.
	Train(ctx context.Context, batch []features.Vector) error

	// RestoreModel loads the most recently persisted artifact from the
	// configured ModelStorage and restores the model from it.
	RestoreModel(ctx context.Context) error
}

// service is the concrete implementation of the Service interface.
type service struct {
	source TransactionSource
	model  *anomaly.Model

	modelStorage ModelStorage
	watchlist    Watchlist
	retry        retry.Retry
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

type config struct {
	modelStorage ModelStorage
	watchlist    Watchlist
	retry        retry.Retry
}

// Option configures optional collaborators of the service.
type Option func(*config)

// WithModelStorage sets the backend used to persist and restore model
// artifacts. Without it, Train keeps the fit in memory only and RestoreModel
// fails with ErrModelStorageNotConfigured.
func WithModelStorage(ms ModelStorage) Option {
	return func(c *config) {
		c.modelStorage = ms
	}
}

// WithWatchlist sets the watchlist consulted during Analyze. Without it, no
// wallet is ever reported as watchlisted.
func WithWatchlist(w Watchlist) Option {
	return func(c *config) {
		c.watchlist = w
	}
}

// WithRetry sets the retry policy applied to transaction fetches. Without
// it, each fetch is attempted once.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// New creates the analysis service over the given transaction source and
// model, applying any optional collaborators.
//
// This constructor is intended to be used by dependency injection during
// application wiring.
func New(source TransactionSource, model *anomaly.Model, opts ...Option) *service {
	cfg := config{
		modelStorage: nopModelStorage{},
		watchlist:    nopWatchlist{},
		retry:        nil,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		source:       source,
		model:        model,
		modelStorage: cfg.modelStorage,
		watchlist:    cfg.watchlist,
		retry:        cfg.retry,
	}
}

// buildHistory fetches and normalizes the wallet's transaction history.
func (s *service) buildHistory(ctx context.Context, address string) txnorm.TransactionSet {
	raw := s.fetchTransactions(ctx, address)
	return txnorm.Normalize(raw)
}

// Analyze runs the full pipeline: fetch, normalize, extract, score, explain,
// and check the watchlist. The address is validated and lowercased first.
func (s *service) Analyze(ctx context.Context, address string) (Report, error) {
	addr, err := buildWalletAddress(address)
	if err != nil {
		return Report{}, err
	}

	txs := s.buildHistory(ctx, addr)
	feat := features.Extract(txs, addr)

	result, err := s.model.Score(feat)
	if err != nil {
		return Report{}, fmt.Errorf("scoring wallet %s: %w", addr, err)
	}

	return Report{
		ID:          uuid.New(),
		Wallet:      addr,
		TxCount:     len(txs),
		Features:    feat,
		Result:      result,
		Flags:       heuristics.Evaluate(feat),
		Watchlisted: s.checkWatchlist(ctx, addr),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// ExtractFeatures fetches and normalizes the wallet's history and returns
// its feature vector. No model is required.
func (s *service) ExtractFeatures(ctx context.Context, address string) (features.Vector, error) {
	addr, err := buildWalletAddress(address)
	if err != nil {
		return nil, err
	}

	return features.Extract(s.buildHistory(ctx, addr), addr), nil
}

// Score runs a feature vector through the fitted model.
func (s *service) Score(ctx context.Context, feat features.Vector) (anomaly.ScoreResult, error) {
	return s.model.Score(feat)
}

// Explain evaluates the heuristic rules over a feature vector.
func (s *service) Explain(ctx context.Context, feat features.Vector) []string {
	return heuristics.Evaluate(feat)
}

// Train fits the model on the batch and persists the encoded artifact. The
// in-memory fit is kept even if persistence fails, so the error reports the
// save failure without losing the trained model.
func (s *service) Train(ctx context.Context, batch []features.Vector) error {
	if err := s.model.Fit(batch); err != nil {
		return err
	}

	artifact, err := s.model.Encode()
	if err != nil {
		return err
	}

	if err := s.modelStorage.SaveModel(ctx, artifact); err != nil {
		return fmt.Errorf("persisting model artifact: %w", err)
	}

	return nil
}

// RestoreModel loads the persisted artifact and restores the model from it.
func (s *service) RestoreModel(ctx context.Context) error {
	artifact, err := s.modelStorage.LoadModel(ctx)
	if err != nil {
		return fmt.Errorf("loading model artifact: %w", err)
	}

	return s.model.Decode(artifact)
}
