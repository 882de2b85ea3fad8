// Package simulate generates synthetic wallet transaction histories shaped
// like real blockchain explorer responses, for producing training datasets
// without hitting a live provider.
package simulate

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/gabapcia/sharkguard/internal/features"
	"github.com/gabapcia/sharkguard/internal/txnorm"
)

const (
	hexDigits = "0123456789abcdef"

	defaultTxsPerWalletMin = 5
	defaultTxsPerWalletMax = 80
	busyTxsPerWalletMin    = 100
	busyTxsPerWalletMax    = 200

	// busyWalletShare is the fraction of generated wallets given an
	// unusually heavy history, so a trained model sees some tail behavior.
	busyWalletShare = 0.1

	defaultHistoryDays = 180
)

// Generator produces synthetic wallets and transaction histories. It is not
// safe for concurrent use; create one per goroutine.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible for a fixed seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNow pins the reference time transaction timestamps are generated
// relative to. Defaults to the current time.
func WithNow(now time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator. Without WithSeed, each Generator produces a
// different dataset.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// randomHex returns a random lowercase hex string of n digits.
func (g *Generator) randomHex(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[g.rng.Intn(len(hexDigits))]
	}
	return string(b)
}

// WalletAddress returns a random Ethereum-shaped address.
func (g *Generator) WalletAddress() string {
	return "0x" + g.randomHex(40)
}

// WalletHistory generates numTxs raw transactions for the wallet, spread
// uniformly over the past historyDays days. Each record mimics an explorer
// API response: decimal-string values in wei, unix timestamps, random
// counterparties, and roughly even sent/received direction.
func (g *Generator) WalletHistory(wallet string, numTxs, historyDays int) []txnorm.RawTransaction {
	txs := make([]txnorm.RawTransaction, 0, numTxs)
	for i := range numTxs {
		ts := g.now.Add(-time.Duration(g.rng.Intn(historyDays*24*3600)) * time.Second)
		other := "0x" + g.randomHex(40)

		// Mostly sub-ether transfers, with an occasional order of magnitude
		// smaller one.
		scale := 1.0
		if g.rng.Float64() > 0.95 {
			scale = 0.1
		}
		wei := int64(g.rng.Float64() * scale * 1e18)

		from, to := wallet, other
		if g.rng.Float64() < 0.5 {
			from = other
		}
		if g.rng.Float64() < 0.5 {
			to = wallet
		}
		if from == to {
			to = other
		}

		txs = append(txs, txnorm.RawTransaction{
			Hash:      "0x" + g.randomHex(64),
			From:      from,
			To:        to,
			Value:     strconv.FormatInt(wei, 10),
			Nonce:     strconv.Itoa(i),
			TimeStamp: strconv.FormatInt(ts.Unix(), 10),
			Gas:       strconv.Itoa(21000 + g.rng.Intn(179001)),
			GasPrice:  strconv.FormatInt(int64(20+g.rng.Intn(181))*1e9, 10),
		})
	}
	return txs
}

// Dataset generates numWallets synthetic wallets, runs each history through
// the normal feature pipeline, and returns the resulting labeled vectors. The
// first busyWalletShare of wallets get heavy histories; the rest get ordinary
// ones.
func (g *Generator) Dataset(numWallets int) []features.WalletVector {
	busy := int(float64(numWallets) * busyWalletShare)

	dataset := make([]features.WalletVector, 0, numWallets)
	for i := range numWallets {
		wallet := g.WalletAddress()

		numTxs := defaultTxsPerWalletMin + g.rng.Intn(defaultTxsPerWalletMax-defaultTxsPerWalletMin+1)
		if i < busy {
			numTxs = busyTxsPerWalletMin + g.rng.Intn(busyTxsPerWalletMax-busyTxsPerWalletMin+1)
		}

		raw := g.WalletHistory(wallet, numTxs, defaultHistoryDays)
		dataset = append(dataset, features.WalletVector{
			Wallet:   wallet,
			Features: features.Extract(txnorm.Normalize(raw), wallet),
		})
	}
	return dataset
}
