// Package heuristics evaluates a small set of human-readable threshold rules
// directly on extracted features. It is stateless, deterministic, and fully
// independent of the anomaly model: the flags it produces explain behavioral
// signals even when no model is loaded.
package heuristics

import "github.com/gabapcia/sharkguard/internal/features"

// Rule thresholds. They are deliberately exported: the flags are user-facing
// explanations, so operators need to know exactly where each one trips.
const (
	// FewTransactionsBelow flags wallets with fewer transactions than this.
	FewTransactionsBelow = 3.0

	// HighFrequencyAbove flags wallets exceeding this many transactions per day.
	HighFrequencyAbove = 50.0

	// RepeatedRatioAbove flags wallets whose repeated-counterparty ratio
	// exceeds this fraction.
	RepeatedRatioAbove = 0.6

	// LowHourEntropyBelow flags wallets whose hour-of-day entropy falls below
	// this value, indicating very regular timing.
	LowHourEntropyBelow = 1.0
)

// User-facing flag messages.
const (
	FlagFewTransactions      = "Very few transactions — new or dormant account"
	FlagHighFrequency        = "Extremely high transaction frequency — bot-like behavior"
	FlagRepeatedCounterparty = "High repeated-counterparty ratio — interacting with the same address often"
	FlagLowHourEntropy       = "Low hour entropy — very regular timing"
	FlagNone                 = "No strong heuristic flags detected"
)

// Evaluate checks the feature vector against every rule, in a fixed order,
// and returns the flags that fired. When no rule fires, it returns a single
// FlagNone entry, so the result is never empty.
//
// Features that default to a sentinel are looked up with that sentinel as
// fallback, so a vector missing hour_entropy never reads as "low entropy".
func Evaluate(feat features.Vector) []string {
	flags := make([]string, 0, 4)

	if feat.Lookup(features.TxCount, 0) < FewTransactionsBelow {
		flags = append(flags, FlagFewTransactions)
	}
	if feat.Lookup(features.TxFreqPerDay, 0) > HighFrequencyAbove {
		flags = append(flags, FlagHighFrequency)
	}
	if feat.Lookup(features.RepeatedRatio, 0) > RepeatedRatioAbove {
		flags = append(flags, FlagRepeatedCounterparty)
	}
	if feat.Lookup(features.HourEntropy, features.EmptyHourEntropy) < LowHourEntropyBelow {
		flags = append(flags, FlagLowHourEntropy)
	}

	if len(flags) == 0 {
		flags = append(flags, FlagNone)
	}

	return flags
}
