// Package features derives a fixed-size statistical feature vector from a
// wallet's normalized transaction history.
//
// Every feature has a defined value for the degenerate cases of zero or one
// transaction, so extraction never fails regardless of input. The schema is
// fixed and versioned through the persisted model artifact; see schema.go.
package features

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gabapcia/sharkguard/internal/pkg/types"
	"github.com/gabapcia/sharkguard/internal/txnorm"
)

const (
	// EmptyHourEntropy is the sentinel hour_entropy for wallets with fewer
	// than two transactions. It sits well above the natural-log maximum of
	// ln(24) ≈ 3.18, so the "low entropy means regular timing" heuristic can
	// never fire on insufficient data.
	EmptyHourEntropy = 10.0

	secondsPerDay = 86400.0
)

// hourEntropy computes the Shannon entropy (natural log) of the hour-of-day
// distribution across the given transactions. Hours are taken in UTC.
func hourEntropy(txs txnorm.TransactionSet) float64 {
	buckets := types.NewDefaultMap[int](func() int { return 0 })
	for _, tx := range txs {
		hour := time.Unix(tx.Timestamp, 0).UTC().Hour()
		buckets.Set(hour, buckets.Get(hour)+1)
	}

	var (
		total   = float64(len(txs))
		entropy float64
	)
	for _, count := range buckets.ToMap() {
		p := float64(count) / total
		entropy -= p * math.Log(p)
	}

	return entropy
}

// counterparty returns the address on the opposite side of the transaction
// from the wallet under analysis. A self-transfer's counterparty is the
// wallet itself.
func counterparty(tx txnorm.Transaction, wallet string) string {
	if tx.From == wallet {
		return tx.To
	}
	return tx.From
}

// meanStddev returns the mean and population standard deviation of values.
func meanStddev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}

	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// Extract computes the full fixed-schema feature vector for the given wallet
// from its transaction history.
//
// Degenerate-case policy (zero or one transaction): tx_count reflects the
// actual count, tx_freq_per_day and mean_interval_seconds are 0,
// repeated_ratio is 0, and hour_entropy is the EmptyHourEntropy sentinel.
// The input does not need to be sorted; timestamps are ordered internally
// where the computation requires it.
func Extract(txs txnorm.TransactionSet, wallet string) Vector {
	wallet = strings.ToLower(wallet)

	feat := Vector{
		TxCount:             float64(len(txs)),
		TxFreqPerDay:        0,
		RepeatedRatio:       0,
		HourEntropy:         EmptyHourEntropy,
		SentRatio:           0,
		MeanValue:           0,
		StddevValue:         0,
		MeanIntervalSeconds: 0,
	}
	if len(txs) == 0 {
		return feat
	}

	var (
		counterparties = types.NewSet[string]()
		values         = make([]float64, 0, len(txs))
		timestamps     = make([]int64, 0, len(txs))
		sent           int
	)
	for _, tx := range txs {
		counterparties.Add(counterparty(tx, wallet))
		values = append(values, tx.Value)
		timestamps = append(timestamps, tx.Timestamp)
		if tx.From == wallet {
			sent++
		}
	}

	count := float64(len(txs))
	feat[RepeatedRatio] = 1 - float64(counterparties.Len())/count
	feat[SentRatio] = float64(sent) / count
	feat[MeanValue], feat[StddevValue] = meanStddev(values)

	if len(txs) > 1 {
		sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

		// tx_freq_per_day stays 0 when the whole history collapses onto a
		// single instant, avoiding a division by zero.
		spanDays := float64(timestamps[len(timestamps)-1]-timestamps[0]) / secondsPerDay
		if spanDays > 0 {
			feat[TxFreqPerDay] = count / spanDays
		}

		var intervals float64
		for i := 1; i < len(timestamps); i++ {
			intervals += float64(timestamps[i] - timestamps[i-1])
		}
		feat[MeanIntervalSeconds] = intervals / float64(len(timestamps)-1)

		feat[HourEntropy] = hourEntropy(txs)
	}

	return feat
}
