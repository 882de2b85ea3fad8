package cli

import (
	"context"

	"github.com/gabapcia/sharkguard/internal/watchlist"

	"github.com/urfave/cli/v3"
)

// flagWalletCommand returns a CLI command that adds a wallet address to the
// manual watchlist.
//
// Usage example:
//
//	sharkguard flag --address 0xABC123...
func flagWalletCommand(wl watchlist.Service) *cli.Command {
	return &cli.Command{
		Name:        "flag",
		Description: "Add a wallet to the manual watchlist so its reports are marked.",
		Usage:       "Flags a wallet address. Must provide the address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to flag",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wl.Flag(ctx, c.String("address"))
		},
	}
}

// unflagWalletCommand returns a CLI command that removes a wallet address
// from the manual watchlist.
//
// Usage example:
//
//	sharkguard unflag --address 0xABC123...
func unflagWalletCommand(wl watchlist.Service) *cli.Command {
	return &cli.Command{
		Name:        "unflag",
		Description: "Remove a wallet from the manual watchlist.",
		Usage:       "Unflags a wallet address. Must provide the address.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to unflag",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wl.Unflag(ctx, c.String("address"))
		},
	}
}
