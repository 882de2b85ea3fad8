// Package cli wires the analysis, training, and watchlist operations into a
// command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/gabapcia/sharkguard/internal/features"
	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/watchlist"

	"github.com/urfave/cli/v3"
)

// DatasetStore persists and restores feature datasets used for training.
type DatasetStore interface {
	// SaveDataset stores the dataset, replacing any previous one.
	SaveDataset(ctx context.Context, dataset []features.WalletVector) error

	// LoadDataset returns the most recently stored dataset.
	LoadDataset(ctx context.Context) ([]features.WalletVector, error)
}

// Run initializes and executes the sharkguard CLI application.
//
// It registers all available commands, including:
//
//   - `analyze`: Analyzes a wallet and prints its report.
//   - `train`: Trains the model on a persisted feature dataset.
//   - `simulate`: Generates a synthetic feature dataset for training.
//   - `flag`: Adds a wallet to the manual watchlist.
//   - `unflag`: Removes a wallet from the manual watchlist.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - g: The guard service implementation used by analysis and training commands.
//   - wl: The watchlist service implementation used by flagging commands.
//   - ds: The dataset store used by training and simulation commands.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, g guard.Service, wl watchlist.Service, ds DatasetStore) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "sharkguard",
		Description:           "Command-line interface for analyzing Ethereum wallets for bot-like behavior.",
		Usage:                 "sharkguard [command] [flags]",
		Commands: []*cli.Command{
			analyzeWalletCommand(g),
			trainModelCommand(g, ds),
			simulateDatasetCommand(ds),
			flagWalletCommand(wl),
			unflagWalletCommand(wl),
		},
	}

	return app.Run(ctx, os.Args)
}
