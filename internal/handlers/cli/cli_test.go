package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/gabapcia/sharkguard/internal/anomaly"
	"github.com/gabapcia/sharkguard/internal/features"
	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testWallet = "0xaabb000000000000000000000000000000000001"

type fakeGuard struct {
	analyzeCalls []string
	analyzeErr   error

	extractCalls []string

	trainBatches [][]features.Vector
	trainErr     error
}

func (f *fakeGuard) Analyze(ctx context.Context, address string) (guard.Report, error) {
	f.analyzeCalls = append(f.analyzeCalls, address)
	if f.analyzeErr != nil {
		return guard.Report{}, f.analyzeErr
	}
	return guard.Report{Wallet: address, Result: anomaly.ScoreResult{Label: anomaly.LabelNormal}}, nil
}

func (f *fakeGuard) ExtractFeatures(ctx context.Context, address string) (features.Vector, error) {
	f.extractCalls = append(f.extractCalls, address)
	return features.Vector{features.TxCount: 1}, nil
}

func (f *fakeGuard) Score(ctx context.Context, feat features.Vector) (anomaly.ScoreResult, error) {
	return anomaly.ScoreResult{}, nil
}

func (f *fakeGuard) Explain(ctx context.Context, feat features.Vector) []string {
	return nil
}

func (f *fakeGuard) Train(ctx context.Context, batch []features.Vector) error {
	f.trainBatches = append(f.trainBatches, batch)
	return f.trainErr
}

func (f *fakeGuard) RestoreModel(ctx context.Context) error {
	return nil
}

type fakeWatchlist struct {
	flagCalls   []string
	unflagCalls []string
	err         error
}

func (f *fakeWatchlist) Flag(ctx context.Context, address string) error {
	f.flagCalls = append(f.flagCalls, address)
	return f.err
}

func (f *fakeWatchlist) Unflag(ctx context.Context, address string) error {
	f.unflagCalls = append(f.unflagCalls, address)
	return f.err
}

func (f *fakeWatchlist) IsFlagged(ctx context.Context, address string) (bool, error) {
	return false, f.err
}

type fakeDatasetStore struct {
	saved   []features.WalletVector
	loadErr error
	saveErr error
}

func (f *fakeDatasetStore) SaveDataset(ctx context.Context, dataset []features.WalletVector) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = dataset
	return nil
}

func (f *fakeDatasetStore) LoadDataset(ctx context.Context) ([]features.WalletVector, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saved, nil
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Run("should show help without error", func(t *testing.T) {
		os.Args = []string{"sharkguard", "--help"}

		err := Run(t.Context(), &fakeGuard{}, &fakeWatchlist{}, &fakeDatasetStore{})
		assert.NoError(t, err)
	})

	t.Run("should handle the analyze command", func(t *testing.T) {
		g := &fakeGuard{}
		os.Args = []string{"sharkguard", "analyze", "--address", testWallet}

		err := Run(t.Context(), g, &fakeWatchlist{}, &fakeDatasetStore{})
		require.NoError(t, err)
		assert.Equal(t, []string{testWallet}, g.analyzeCalls)
	})

	t.Run("should handle analyze with features-only", func(t *testing.T) {
		g := &fakeGuard{}
		os.Args = []string{"sharkguard", "analyze", "--address", testWallet, "--features-only"}

		err := Run(t.Context(), g, &fakeWatchlist{}, &fakeDatasetStore{})
		require.NoError(t, err)
		assert.Empty(t, g.analyzeCalls)
		assert.Equal(t, []string{testWallet}, g.extractCalls)
	})

	t.Run("should fail analyze without an address", func(t *testing.T) {
		os.Args = []string{"sharkguard", "analyze"}

		err := Run(t.Context(), &fakeGuard{}, &fakeWatchlist{}, &fakeDatasetStore{})
		assert.Error(t, err)
	})

	t.Run("should propagate an analyze failure", func(t *testing.T) {
		g := &fakeGuard{analyzeErr: anomaly.ErrNotFitted}
		os.Args = []string{"sharkguard", "analyze", "--address", testWallet}

		err := Run(t.Context(), g, &fakeWatchlist{}, &fakeDatasetStore{})
		assert.ErrorIs(t, err, anomaly.ErrNotFitted)
	})

	t.Run("should handle the simulate command", func(t *testing.T) {
		ds := &fakeDatasetStore{}
		os.Args = []string{"sharkguard", "simulate", "--wallets", "20", "--seed", "7"}

		err := Run(t.Context(), &fakeGuard{}, &fakeWatchlist{}, ds)
		require.NoError(t, err)
		assert.Len(t, ds.saved, 20)
	})

	t.Run("should handle the train command", func(t *testing.T) {
		g := &fakeGuard{}
		ds := &fakeDatasetStore{
			saved: []features.WalletVector{
				{Wallet: testWallet, Features: features.Vector{features.TxCount: 1}},
			},
		}
		os.Args = []string{"sharkguard", "train"}

		err := Run(t.Context(), g, &fakeWatchlist{}, ds)
		require.NoError(t, err)
		require.Len(t, g.trainBatches, 1)
		assert.Len(t, g.trainBatches[0], 1)
	})

	t.Run("should fail train when the dataset cannot be loaded", func(t *testing.T) {
		ds := &fakeDatasetStore{loadErr: errors.New("missing dataset")}
		os.Args = []string{"sharkguard", "train"}

		err := Run(t.Context(), &fakeGuard{}, &fakeWatchlist{}, ds)
		assert.ErrorContains(t, err, "missing dataset")
	})

	t.Run("should handle the flag command", func(t *testing.T) {
		wl := &fakeWatchlist{}
		os.Args = []string{"sharkguard", "flag", "--address", testWallet}

		err := Run(t.Context(), &fakeGuard{}, wl, &fakeDatasetStore{})
		require.NoError(t, err)
		assert.Equal(t, []string{testWallet}, wl.flagCalls)
	})

	t.Run("should handle the unflag command", func(t *testing.T) {
		wl := &fakeWatchlist{}
		os.Args = []string{"sharkguard", "unflag", "--address", testWallet}

		err := Run(t.Context(), &fakeGuard{}, wl, &fakeDatasetStore{})
		require.NoError(t, err)
		assert.Equal(t, []string{testWallet}, wl.unflagCalls)
	})

	t.Run("should fail flag without an address", func(t *testing.T) {
		os.Args = []string{"sharkguard", "flag"}

		err := Run(t.Context(), &fakeGuard{}, &fakeWatchlist{}, &fakeDatasetStore{})
		assert.Error(t, err)
	})
}
