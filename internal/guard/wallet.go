package guard

import (
	"strings"

	"github.com/gabapcia/sharkguard/internal/pkg/validation"
)

// walletAddress wraps an Ethereum address so it can be validated before any
// collaborator sees it.
type walletAddress struct {
	Address string `validate:"required,eth_addr"`
}

// buildWalletAddress validates and canonicalizes an address. Addresses are
// lowercased so the same wallet always resolves to the same identity
// regardless of checksum casing.
func buildWalletAddress(address string) (string, error) {
	addr := walletAddress{Address: strings.TrimSpace(address)}
	if err := validation.Validate(addr); err != nil {
		return "", err
	}

	return strings.ToLower(addr.Address), nil
}
