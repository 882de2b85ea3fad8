package anomaly

import (
	"math"
	"math/rand"
)

// eulerMascheroni is used by the average unsuccessful-search path length of a
// binary search tree, the normalization constant of the isolation forest.
const eulerMascheroni = 0.5772156649015329

// treeNode is a single node of an isolation tree. Internal nodes split the
// sample on a random feature at a random value; leaves record how many
// training samples they absorbed. Fields are exported so a fitted forest
// serializes as part of the model artifact.
type treeNode struct {
	SplitFeature int       `json:"split_feature"` // -1 marks a leaf
	SplitValue   float64   `json:"split_value,omitempty"`
	Left         *treeNode `json:"left,omitempty"`
	Right        *treeNode `json:"right,omitempty"`
	Size         int       `json:"size,omitempty"` // leaf sample count
}

// isolationForest is an ensemble of isolation trees per Liu, Ting and Zhou,
// "Isolation Forest" (ICDM 2008). Anomalous points isolate in fewer random
// splits than normal points, so a short average path length means a high
// anomaly score.
type isolationForest struct {
	Trees      []*treeNode `json:"trees"`
	SampleSize int         `json:"sample_size"` // subsample size each tree was grown on
}

// avgPathLength returns c(n), the average path length of an unsuccessful
// search in a binary search tree with n nodes. It normalizes isolation
// depths so scores are comparable across subsample sizes.
func avgPathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		f := float64(n)
		return 2*(math.Log(f-1)+eulerMascheroni) - 2*(f-1)/f
	}
}

// leaf constructs a terminal node absorbing the given number of samples.
func leaf(size int) *treeNode {
	return &treeNode{SplitFeature: -1, Size: size}
}

// buildTree grows one isolation tree over data, recursing until the height
// limit is reached, the partition cannot be split further, or a single
// sample remains.
func buildTree(data [][]float64, depth, heightLimit int, rng *rand.Rand) *treeNode {
	if depth >= heightLimit || len(data) <= 1 {
		return leaf(len(data))
	}

	// Only features that still vary within this partition are candidate
	// split dimensions; a constant partition terminates early.
	dims := len(data[0])
	candidates := make([]int, 0, dims)
	for q := range dims {
		lo, hi := data[0][q], data[0][q]
		for _, row := range data[1:] {
			lo, hi = math.Min(lo, row[q]), math.Max(hi, row[q])
		}
		if hi > lo {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return leaf(len(data))
	}

	q := candidates[rng.Intn(len(candidates))]
	lo, hi := data[0][q], data[0][q]
	for _, row := range data[1:] {
		lo, hi = math.Min(lo, row[q]), math.Max(hi, row[q])
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, row := range data {
		if row[q] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf(len(data))
	}

	return &treeNode{
		SplitFeature: q,
		SplitValue:   split,
		Left:         buildTree(left, depth+1, heightLimit, rng),
		Right:        buildTree(right, depth+1, heightLimit, rng),
	}
}

// buildForest fits an isolation forest of numTrees trees, each grown on a
// random subsample of at most sampleSize rows. The caller owns the rng, so
// fitting is deterministic for a fixed seed.
func buildForest(data [][]float64, numTrees, sampleSize int, rng *rand.Rand) *isolationForest {
	if sampleSize > len(data) {
		sampleSize = len(data)
	}
	heightLimit := int(math.Ceil(math.Log2(float64(sampleSize)))) + 1

	trees := make([]*treeNode, 0, numTrees)
	for range numTrees {
		sample := make([][]float64, sampleSize)
		for i, j := range rng.Perm(len(data))[:sampleSize] {
			sample[i] = data[j]
		}
		trees = append(trees, buildTree(sample, 0, heightLimit, rng))
	}

	return &isolationForest{
		Trees:      trees,
		SampleSize: sampleSize,
	}
}

// pathLength walks a single tree and returns the isolation depth of x,
// adding the expected remaining depth c(size) at the leaf.
func (n *treeNode) pathLength(x []float64, depth int) float64 {
	if n.SplitFeature < 0 {
		return float64(depth) + avgPathLength(n.Size)
	}

	if x[n.SplitFeature] < n.SplitValue {
		return n.Left.pathLength(x, depth+1)
	}
	return n.Right.pathLength(x, depth+1)
}

// score returns the anomaly score s(x) = 2^(-E[h(x)]/c(ψ)) in (0, 1].
// Values near 1 indicate isolation (anomalous); values near or below 0.5
// indicate normal points.
//
// A subsample of one sample has c(ψ) = 0 and every path length 0, so the
// exponent degenerates to 0/0. That ensemble carries no isolation signal,
// and the conventional "no signal" score of 0.5 is returned instead of NaN.
func (f *isolationForest) score(x []float64) float64 {
	c := avgPathLength(f.SampleSize)
	if c == 0 {
		return 0.5
	}

	var total float64
	for _, tree := range f.Trees {
		total += tree.pathLength(x, 0)
	}
	mean := total / float64(len(f.Trees))

	return math.Pow(2, -mean/c)
}
