// Package txnorm converts raw block-explorer transaction records into a
// uniform, typed representation suitable for feature extraction.
//
// Raw records arrive from untrusted external sources with inconsistent
// optional fields: numeric values are string-encoded in either decimal or
// 0x-prefixed hexadecimal, and some sources omit the value or timestamp
// entirely. Normalization is a defensive boundary: records missing required
// fields are dropped, never errored, and any input (including nil) yields a
// valid TransactionSet.
package txnorm

import (
	"math/big"
	"sort"
	"strings"

	"github.com/gabapcia/sharkguard/internal/pkg/types"
)

// weiPerEther is the conversion factor between wei and ether.
var weiPerEther = new(big.Float).SetFloat64(1e18)

// RawTransaction is a loosely-typed transaction record as returned by an
// Etherscan-compatible account API. All numeric fields are strings because
// the upstream encodes them that way (decimal for the account module, hex
// for the proxy module).
type RawTransaction struct {
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`     // native-token amount in wei
	Nonce     string `json:"nonce"`
	TimeStamp string `json:"timeStamp"` // seconds since epoch
	Gas       string `json:"gas"`
	GasPrice  string `json:"gasPrice"` // in wei
}

// Transaction is the canonical, typed form of a single on-chain transfer.
type Transaction struct {
	Hash      string  // transaction hash, may be empty
	Timestamp int64   // seconds since epoch
	From      string  // sender address, lowercased
	To        string  // receiver address, lowercased
	Value     float64 // transferred amount in ether
	Nonce     uint64  // sender sequence position
}

// TransactionSet is the ordered transaction history of a single wallet,
// sorted by timestamp ascending. It may be empty. Duplicates and repeated
// counterparties are meaningful signal, not errors, so no deduplication is
// performed.
type TransactionSet []Transaction

// parseInt decodes a string-encoded integer that may be either decimal or
// 0x-prefixed hexadecimal. It reports false when the field is absent or
// unparsable.
func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}

	if types.IsHexString(s) {
		return types.Hex(s).Int(), true
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok || !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// parseUint behaves like parseInt for unsigned fields.
func parseUint(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}

	if types.IsHexString(s) {
		return types.Hex(s).Uint64(), true
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// parseWei decodes a wei amount (decimal or hex string) into ether. Wei
// amounts routinely exceed uint64, so parsing goes through math/big before
// the final float conversion. Absent or unparsable values coerce to zero:
// a transfer with an unknown amount is still a behavioral event.
func parseWei(s string) float64 {
	if s == "" {
		return 0
	}

	base := 10
	if types.IsHexString(s) {
		s, base = s[2:], 16
	}

	wei, ok := new(big.Int).SetString(s, base)
	if !ok || wei.Sign() < 0 {
		return 0
	}

	ether, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther).Float64()
	return ether
}

// Normalize converts a sequence of loosely-typed raw records into a
// TransactionSet with canonical types, sorted by timestamp ascending.
//
// A record is kept only when it carries a parsable timestamp, a sender, and
// a receiver; anything else is dropped silently. Addresses are lowercased so
// counterparty comparisons are case-insensitive. Normalize always succeeds:
// empty or fully malformed input produces an empty TransactionSet.
func Normalize(raw []RawTransaction) TransactionSet {
	txs := make(TransactionSet, 0, len(raw))

	for _, r := range raw {
		ts, ok := parseInt(r.TimeStamp)
		if !ok || r.From == "" || r.To == "" {
			continue
		}

		nonce, _ := parseUint(r.Nonce)

		txs = append(txs, Transaction{
			Hash:      strings.ToLower(r.Hash),
			Timestamp: ts,
			From:      strings.ToLower(r.From),
			To:        strings.ToLower(r.To),
			Value:     parseWei(r.Value),
			Nonce:     nonce,
		})
	}

	sort.Slice(txs, func(i, j int) bool { return txs[i].Timestamp < txs[j].Timestamp })
	return txs
}
