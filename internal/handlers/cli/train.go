package cli

import (
	"context"
	"fmt"

	"github.com/gabapcia/sharkguard/internal/features"
	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// trainModelCommand returns a CLI command that trains the anomaly model on a
// previously generated feature dataset and persists the resulting artifact.
//
// Usage example:
//
//	sharkguard train
func trainModelCommand(g guard.Service, ds DatasetStore) *cli.Command {
	return &cli.Command{
		Name:        "train",
		Description: "Train the anomaly model on the persisted feature dataset and save the artifact.",
		Usage:       "Trains the model. Run the simulate command first, or provide a dataset from real wallets.",
		Action: func(ctx context.Context, c *cli.Command) error {
			dataset, err := ds.LoadDataset(ctx)
			if err != nil {
				return fmt.Errorf("loading training dataset: %w", err)
			}

			batch := make([]features.Vector, 0, len(dataset))
			for _, wv := range dataset {
				batch = append(batch, wv.Features)
			}

			if err := g.Train(ctx, batch); err != nil {
				return err
			}

			logger.Info(ctx, "model trained", "dataset.wallets", len(batch))
			return nil
		},
	}
}
