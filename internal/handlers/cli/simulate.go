package cli

import (
	"context"

	"github.com/gabapcia/sharkguard/internal/pkg/logger"
	"github.com/gabapcia/sharkguard/internal/simulate"

	"github.com/urfave/cli/v3"
)

// simulateDatasetCommand returns a CLI command that generates a synthetic
// feature dataset and persists it for later training.
//
// Usage example:
//
//	sharkguard simulate --wallets 200 --seed 42
func simulateDatasetCommand(ds DatasetStore) *cli.Command {
	return &cli.Command{
		Name:        "simulate",
		Description: "Generate synthetic wallet histories and persist the extracted feature dataset.",
		Usage:       "Builds a training dataset without hitting a live blockchain explorer.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "wallets",
				Usage: "Number of synthetic wallets to generate",
				Value: 200,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "RNG seed for reproducible datasets (0 for random)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var opts []simulate.Option
			if seed := c.Int("seed"); seed != 0 {
				opts = append(opts, simulate.WithSeed(int64(seed)))
			}

			dataset := simulate.New(opts...).Dataset(int(c.Int("wallets")))
			if err := ds.SaveDataset(ctx, dataset); err != nil {
				return err
			}

			logger.Info(ctx, "synthetic dataset generated", "dataset.wallets", len(dataset))
			return nil
		},
	}
}
