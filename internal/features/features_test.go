package features

import (
	"fmt"
	"math"
	"testing"

	"github.com/gabapcia/sharkguard/internal/txnorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "0x1111111111111111111111111111111111111111"

func TestExtract_EmptyHistory(t *testing.T) {
	t.Run("should return the full schema with documented defaults", func(t *testing.T) {
		feat := Extract(nil, wallet)

		require.Len(t, feat, len(Schema()))
		for _, name := range Schema() {
			assert.Contains(t, feat, name)
		}

		assert.Zero(t, feat[TxCount])
		assert.Zero(t, feat[TxFreqPerDay])
		assert.Zero(t, feat[RepeatedRatio])
		assert.Equal(t, EmptyHourEntropy, feat[HourEntropy])
		assert.Zero(t, feat[MeanIntervalSeconds])
	})
}

func TestExtract_SingleTransaction(t *testing.T) {
	txs := txnorm.TransactionSet{
		{Timestamp: 1700000000, From: wallet, To: "0xcounterparty", Value: 2.5},
	}

	feat := Extract(txs, wallet)

	t.Run("should use the entropy sentinel", func(t *testing.T) {
		assert.Equal(t, EmptyHourEntropy, feat[HourEntropy])
	})

	t.Run("should define frequency and interval as zero", func(t *testing.T) {
		assert.Zero(t, feat[TxFreqPerDay])
		assert.Zero(t, feat[MeanIntervalSeconds])
	})

	t.Run("should compute the remaining features", func(t *testing.T) {
		assert.Equal(t, 1.0, feat[TxCount])
		assert.Zero(t, feat[RepeatedRatio], "a single counterparty is not repeated")
		assert.Equal(t, 1.0, feat[SentRatio])
		assert.Equal(t, 2.5, feat[MeanValue])
		assert.Zero(t, feat[StddevValue])
	})
}

func TestExtract_BotLikeHistory(t *testing.T) {
	// 100 transactions within one day, all to the same counterparty.
	txs := make(txnorm.TransactionSet, 0, 100)
	start := int64(1700000000)
	for i := range 100 {
		txs = append(txs, txnorm.Transaction{
			Timestamp: start + int64(i)*864, // spread evenly over ~1 day
			From:      wallet,
			To:        "0x2222222222222222222222222222222222222222",
			Value:     0.01,
		})
	}

	feat := Extract(txs, wallet)

	t.Run("should report a frequency of roughly 100 per day", func(t *testing.T) {
		assert.InDelta(t, 100, feat[TxFreqPerDay], 2)
	})

	t.Run("should report a repeated ratio of 0.99", func(t *testing.T) {
		assert.InDelta(t, 0.99, feat[RepeatedRatio], 1e-9)
	})
}

func TestExtract_Counterparties(t *testing.T) {
	t.Run("should count counterparties on either side of the wallet", func(t *testing.T) {
		txs := txnorm.TransactionSet{
			{Timestamp: 100, From: wallet, To: "0xaaa"},
			{Timestamp: 200, From: "0xbbb", To: wallet},
			{Timestamp: 300, From: wallet, To: "0xaaa"},
		}

		feat := Extract(txs, wallet)
		assert.InDelta(t, 1-2.0/3.0, feat[RepeatedRatio], 1e-9)
		assert.InDelta(t, 2.0/3.0, feat[SentRatio], 1e-9)
	})

	t.Run("should match the wallet address case-insensitively", func(t *testing.T) {
		txs := txnorm.TransactionSet{
			{Timestamp: 100, From: wallet, To: "0xaaa"},
		}

		feat := Extract(txs, "0X1111111111111111111111111111111111111111")
		assert.Equal(t, 1.0, feat[SentRatio])
	})
}

func TestExtract_HourEntropy(t *testing.T) {
	t.Run("should be zero when every transaction lands in the same hour", func(t *testing.T) {
		txs := txnorm.TransactionSet{
			{Timestamp: 1700000000, From: wallet, To: "0xa"},
			{Timestamp: 1700000060, From: wallet, To: "0xb"},
			{Timestamp: 1700000120, From: wallet, To: "0xc"},
		}

		feat := Extract(txs, wallet)
		assert.Zero(t, feat[HourEntropy])
	})

	t.Run("should approach ln(n) for n evenly spread hours", func(t *testing.T) {
		txs := make(txnorm.TransactionSet, 0, 4)
		for i := range 4 {
			txs = append(txs, txnorm.Transaction{
				Timestamp: 1700000000 + int64(i)*3600,
				From:      wallet,
				To:        "0xa",
			})
		}

		feat := Extract(txs, wallet)
		assert.InDelta(t, math.Log(4), feat[HourEntropy], 1e-9)
	})

	t.Run("should tolerate unsorted input", func(t *testing.T) {
		sorted := txnorm.TransactionSet{
			{Timestamp: 100, From: wallet, To: "0xa"},
			{Timestamp: 200, From: wallet, To: "0xb"},
			{Timestamp: 300, From: wallet, To: "0xc"},
		}
		shuffled := txnorm.TransactionSet{sorted[2], sorted[0], sorted[1]}

		assert.Equal(t, Extract(sorted, wallet), Extract(shuffled, wallet))
	})
}

func TestExtract_Bounds(t *testing.T) {
	// repeated_ratio must stay within [0,1] and hour_entropy must stay
	// non-negative for arbitrary histories.
	histories := []txnorm.TransactionSet{
		nil,
		{{Timestamp: 1, From: wallet, To: wallet}}, // self transfer
		{
			{Timestamp: 1, From: wallet, To: "0xa"},
			{Timestamp: 1, From: wallet, To: "0xa"}, // duplicate instant
		},
		{
			{Timestamp: 1000, From: "0xa", To: wallet},
			{Timestamp: 90000, From: "0xb", To: wallet},
			{Timestamp: 180000, From: "0xa", To: wallet},
		},
	}

	for i, txs := range histories {
		t.Run(fmt.Sprintf("history %d", i), func(t *testing.T) {
			feat := Extract(txs, wallet)
			assert.GreaterOrEqual(t, feat[RepeatedRatio], 0.0)
			assert.LessOrEqual(t, feat[RepeatedRatio], 1.0)
			assert.GreaterOrEqual(t, feat[HourEntropy], 0.0)
		})
	}
}

func TestVector_Values(t *testing.T) {
	t.Run("should flatten in schema order", func(t *testing.T) {
		feat := Extract(nil, wallet)

		values, err := feat.Values(Schema())
		require.NoError(t, err)
		require.Len(t, values, len(Schema()))
		assert.Equal(t, feat[TxCount], values[0])
	})

	t.Run("should fail fast on a missing feature", func(t *testing.T) {
		feat := Extract(nil, wallet)
		delete(feat, HourEntropy)

		_, err := feat.Values(Schema())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), HourEntropy)
	})

	t.Run("should fail fast on an extra feature", func(t *testing.T) {
		feat := Extract(nil, wallet)
		feat["gas_entropy"] = 1

		_, err := feat.Values(Schema())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), "gas_entropy")
	})
}

func TestVector_Lookup(t *testing.T) {
	feat := Vector{TxCount: 5}

	assert.Equal(t, 5.0, feat.Lookup(TxCount, 0))
	assert.Equal(t, EmptyHourEntropy, feat.Lookup(HourEntropy, EmptyHourEntropy))
}
