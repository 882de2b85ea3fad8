package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/gabapcia/sharkguard/internal/guard"

	"github.com/urfave/cli/v3"
)

// analyzeWalletCommand returns a CLI command that runs the full analysis
// pipeline for one wallet and prints the resulting report as JSON.
//
// Usage example:
//
//	sharkguard analyze --address 0xABC123...
func analyzeWalletCommand(g guard.Service) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Description: "Fetch a wallet's history, extract its behavioral features, and score it against the trained model.",
		Usage:       "Analyzes a wallet address and prints the report. A trained model must be available.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to analyze (0x...)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "features-only",
				Usage: "Only extract and print the feature vector, without scoring",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			if c.Bool("features-only") {
				feat, err := g.ExtractFeatures(ctx, address)
				if err != nil {
					return err
				}
				return printJSON(feat)
			}

			report, err := g.Analyze(ctx, address)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
