package features

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Feature names of the fixed extraction schema. The anomaly model requires
// the exact same set of named features, in the exact same order, between
// training and inference, so the schema is defined once here and never built
// dynamically.
const (
	TxCount             = "tx_count"
	TxFreqPerDay        = "tx_freq_per_day"
	RepeatedRatio       = "repeated_ratio"
	HourEntropy         = "hour_entropy"
	SentRatio           = "sent_ratio"
	MeanValue           = "mean_value"
	StddevValue         = "stddev_value"
	MeanIntervalSeconds = "mean_interval_seconds"
)

// schema is the canonical feature ordering. Changing it is a breaking change
// for every persisted model artifact and training dataset.
var schema = []string{
	TxCount,
	TxFreqPerDay,
	RepeatedRatio,
	HourEntropy,
	SentRatio,
	MeanValue,
	StddevValue,
	MeanIntervalSeconds,
}

// ErrSchemaMismatch indicates that a feature vector does not carry exactly
// the expected set of named features. A mismatch between extraction and
// modeling is a programming error and must fail fast rather than silently
// miscompute.
var ErrSchemaMismatch = errors.New("feature vector does not match the expected schema")

// Schema returns the fixed, ordered list of feature names. The returned
// slice is a copy and safe to modify.
func Schema() []string {
	return slices.Clone(schema)
}

// Vector maps feature names to their computed values. A well-formed Vector
// always contains every schema key, including for wallets with no
// transaction history.
type Vector map[string]float64

// WalletVector pairs a wallet address with its extracted feature vector.
// It is the row type of training datasets.
type WalletVector struct {
	Wallet   string
	Features Vector
}

// Lookup returns the value of the named feature, or fallback when the key is
// absent. Heuristic evaluation uses it so a missing sentinel-defaulted
// feature never reads as zero.
func (v Vector) Lookup(name string, fallback float64) float64 {
	if val, ok := v[name]; ok {
		return val
	}
	return fallback
}

// Values flattens the vector into the given feature ordering, failing fast
// with ErrSchemaMismatch when any expected key is missing or any extra key
// is present.
func (v Vector) Values(names []string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		val, ok := v[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing feature %q", ErrSchemaMismatch, name)
		}
		out[i] = val
	}

	if len(v) != len(names) {
		extras := make([]string, 0, len(v))
		for name := range v {
			if !slices.Contains(names, name) {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		return nil, fmt.Errorf("%w: unexpected features %v", ErrSchemaMismatch, extras)
	}

	return out, nil
}
