package anomaly

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clusteredData returns rows tightly clustered around the origin.
func clusteredData(n int, rng *rand.Rand) [][]float64 {
	data := make([][]float64, n)
	for i := range data {
		data[i] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}
	return data
}

func TestAvgPathLength(t *testing.T) {
	t.Run("degenerate sizes", func(t *testing.T) {
		assert.Zero(t, avgPathLength(0))
		assert.Zero(t, avgPathLength(1))
		assert.Equal(t, 1.0, avgPathLength(2))
	})

	t.Run("grows with n", func(t *testing.T) {
		assert.Greater(t, avgPathLength(256), avgPathLength(64))
		assert.Greater(t, avgPathLength(64), avgPathLength(8))
	})
}

func TestBuildForest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := clusteredData(512, rng)

	forest := buildForest(data, 50, 256, rng)

	t.Run("builds the requested number of trees", func(t *testing.T) {
		assert.Len(t, forest.Trees, 50)
		assert.Equal(t, 256, forest.SampleSize)
	})

	t.Run("caps the subsample at the dataset size", func(t *testing.T) {
		small := buildForest(data[:10], 10, 256, rng)
		assert.Equal(t, 10, small.SampleSize)
	})
}

func TestForestScore(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := clusteredData(512, rng)
	forest := buildForest(data, 100, 256, rng)

	t.Run("scores stay in (0, 1]", func(t *testing.T) {
		for _, row := range data[:50] {
			s := forest.score(row)
			assert.Greater(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	})

	t.Run("an obvious outlier scores higher than an inlier", func(t *testing.T) {
		inlier := []float64{0, 0, 0}
		outlier := []float64{25, -30, 40}

		assert.Greater(t, forest.score(outlier), forest.score(inlier))
	})

	t.Run("scoring is deterministic", func(t *testing.T) {
		x := []float64{1, 2, 3}
		require.Equal(t, forest.score(x), forest.score(x))
	})

	t.Run("a single-sample ensemble scores the neutral 0.5", func(t *testing.T) {
		single := buildForest(data[:1], 10, 256, rng)
		require.Equal(t, 1, single.SampleSize)

		for _, x := range [][]float64{{0, 0, 0}, {25, -30, 40}} {
			s := single.score(x)
			assert.False(t, math.IsNaN(s))
			assert.Equal(t, 0.5, s)
		}
	})

	t.Run("fitting is deterministic for a fixed seed", func(t *testing.T) {
		a := buildForest(data, 20, 128, rand.New(rand.NewSource(99)))
		b := buildForest(data, 20, 128, rand.New(rand.NewSource(99)))

		x := []float64{0.5, -0.5, 0.25}
		assert.Equal(t, a.score(x), b.score(x))
	})
}
