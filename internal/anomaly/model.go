// Package anomaly implements the unsupervised suspicion-scoring model: an
// isolation forest over the fixed feature schema, trained on wallets assumed
// to behave normally and used to score how isolated a new wallet's feature
// vector is from that distribution.
//
// A fitted model is effectively immutable: Fit and Decode build a fully new
// fitted state and publish it with an atomic swap, so any number of
// concurrent Score calls observe either the old or the new model, never a
// partially-updated one.
package anomaly

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabapcia/sharkguard/internal/features"
)

var (
	// ErrNotFitted is returned when Score or Encode is called before the
	// model has been fitted or restored. Scoring without a model is a
	// precondition violation, never silently defaulted.
	ErrNotFitted = errors.New("anomaly model is not fitted")

	// ErrEmptyTrainingSet is returned by Fit when the batch holds no vectors.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrIncompatibleModel is returned by Decode when the artifact does not
	// carry the expected format version or is structurally broken.
	ErrIncompatibleModel = errors.New("incompatible model artifact")
)

// formatVersion is embedded in every encoded artifact. Decode rejects
// anything else, so schema drift between binaries surfaces as a clear error
// instead of silent corruption.
const formatVersion = 1

// Labels assigned by Score based on the normalized suspicion score.
const (
	LabelSuspicious = "suspicious"
	LabelNormal     = "normal"
)

// Default hyperparameters. Tree count and subsample size follow the
// isolation forest paper's recommendations; the seed is fixed so training
// runs are reproducible.
const (
	defaultTrees      = 100
	defaultSampleSize = 256
	defaultSeed       = 42
	defaultThreshold  = 0.5
)

// ScoreResult is the outcome of scoring one feature vector. It is derived,
// never stored.
type ScoreResult struct {
	// Score is the normalized suspicion score in [0, 1]: 0 reads as normal,
	// 1 as suspicious.
	Score float64 `json:"score"`

	// Label is the thresholded verdict, LabelSuspicious or LabelNormal.
	Label string `json:"label"`

	// Raw is the unnormalized isolation score in (0, 1] on the model-native
	// scale, kept for debugging and calibration checks.
	Raw float64 `json:"raw"`
}

// fittedState bundles everything a fitted model needs to score: the frozen
// feature ordering, the fitted scaler, the forest, and the raw-score
// calibration bounds observed on the training set. It doubles as the
// serialized artifact layout.
type fittedState struct {
	FormatVersion int              `json:"format_version"`
	FeatureNames  []string         `json:"feature_names"`
	Scaler        *standardScaler  `json:"scaler"`
	Forest        *isolationForest `json:"forest"`
	RawMin        float64          `json:"raw_min"`
	RawMax        float64          `json:"raw_max"`
	TrainedAt     time.Time        `json:"trained_at"`
}

// Model is the anomaly-scoring engine. The zero value is not usable; create
// instances with New.
type Model struct {
	// mu serializes Fit and Decode against each other. Score never takes it:
	// readers only go through the atomic state pointer.
	mu    sync.Mutex
	state atomic.Pointer[fittedState]

	trees      int
	sampleSize int
	seed       int64
	threshold  float64
}

// Option configures a Model before use.
type Option func(*Model)

// WithTrees sets the number of isolation trees. Default: 100.
func WithTrees(n int) Option {
	return func(m *Model) {
		m.trees = n
	}
}

// WithSampleSize sets the per-tree training subsample size. Default: 256.
func WithSampleSize(n int) Option {
	return func(m *Model) {
		m.sampleSize = n
	}
}

// WithSeed sets the RNG seed used by Fit, making training reproducible.
// Default: 42.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.seed = seed
	}
}

// WithThreshold sets the normalized-score threshold at or above which a
// wallet is labeled suspicious. Default: 0.5.
func WithThreshold(t float64) Option {
	return func(m *Model) {
		m.threshold = t
	}
}

// New creates an unfitted Model with the given options applied.
func New(opts ...Option) *Model {
	m := &Model{
		trees:      defaultTrees,
		sampleSize: defaultSampleSize,
		seed:       defaultSeed,
		threshold:  defaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fitted reports whether the model currently holds a fitted state.
func (m *Model) Fitted() bool {
	return m.state.Load() != nil
}

// Fit trains the model on a batch of feature vectors believed to represent
// normal wallet behavior. No labels are required.
//
// Fit freezes the feature ordering to the current extraction schema and
// validates every vector against it, failing fast with
// features.ErrSchemaMismatch on any deviation. After growing the forest, it
// scores the training batch to record the raw-score range used to calibrate
// normalized scores. The new fitted state replaces any previous one
// atomically; in-flight Score calls are unaffected.
func (m *Model) Fit(batch []features.Vector) error {
	if len(batch) == 0 {
		return ErrEmptyTrainingSet
	}

	names := features.Schema()
	matrix := make([][]float64, 0, len(batch))
	for i, vec := range batch {
		row, err := vec.Values(names)
		if err != nil {
			return fmt.Errorf("training vector %d: %w", i, err)
		}
		matrix = append(matrix, row)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	scaler := fitScaler(matrix)
	scaled := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled[i] = scaler.transform(row)
	}

	rng := rand.New(rand.NewSource(m.seed))
	forest := buildForest(scaled, m.trees, m.sampleSize, rng)

	rawMin, rawMax := math.Inf(1), math.Inf(-1)
	for _, row := range scaled {
		raw := forest.score(row)
		rawMin, rawMax = math.Min(rawMin, raw), math.Max(rawMax, raw)
	}

	m.state.Store(&fittedState{
		FormatVersion: formatVersion,
		FeatureNames:  names,
		Scaler:        scaler,
		Forest:        forest,
		RawMin:        rawMin,
		RawMax:        rawMax,
		TrainedAt:     time.Now().UTC(),
	})

	return nil
}

// normalize maps a raw isolation score onto [0, 1] by min-max calibration
// against the raw-score range observed on the training set, clamped so
// out-of-range inference scores stay within bounds. The mapping is monotonic:
// a more isolated vector always yields a higher suspicion score.
func (s *fittedState) normalize(raw float64) float64 {
	span := s.RawMax - s.RawMin
	if span <= 0 {
		// Degenerate training distribution; anything above the single
		// observed raw score is maximally suspicious.
		if raw > s.RawMax {
			return 1
		}
		return 0
	}

	return math.Min(1, math.Max(0, (raw-s.RawMin)/span))
}

// Score computes the suspicion score for one feature vector.
//
// The vector must carry exactly the feature set the model was fitted on;
// any missing or extra key fails fast with features.ErrSchemaMismatch.
// Calling Score before Fit or Decode returns ErrNotFitted. Score is
// deterministic: the same vector against the same fitted state always
// produces the same result, and concurrent calls are safe.
func (m *Model) Score(feat features.Vector) (ScoreResult, error) {
	state := m.state.Load()
	if state == nil {
		return ScoreResult{}, ErrNotFitted
	}

	row, err := feat.Values(state.FeatureNames)
	if err != nil {
		return ScoreResult{}, err
	}

	raw := state.Forest.score(state.Scaler.transform(row))
	score := state.normalize(raw)

	label := LabelNormal
	if score >= m.threshold {
		label = LabelSuspicious
	}

	return ScoreResult{
		Score: score,
		Label: label,
		Raw:   raw,
	}, nil
}

// Encode serializes the fitted state into a self-describing, versioned
// artifact. It returns ErrNotFitted when there is nothing to persist.
func (m *Model) Encode() ([]byte, error) {
	state := m.state.Load()
	if state == nil {
		return nil, ErrNotFitted
	}

	return json.Marshal(state)
}

// Decode restores a fitted state from an artifact produced by Encode,
// replacing any currently fitted state atomically.
//
// Artifacts with an unexpected format version or a structurally broken
// payload are rejected with ErrIncompatibleModel; the model keeps its
// previous state in that case.
func (m *Model) Decode(data []byte) error {
	var state fittedState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleModel, err)
	}

	if state.FormatVersion != formatVersion {
		return fmt.Errorf("%w: format version %d, expected %d", ErrIncompatibleModel, state.FormatVersion, formatVersion)
	}

	if len(state.FeatureNames) == 0 || state.Scaler == nil || state.Forest == nil || len(state.Forest.Trees) == 0 {
		return fmt.Errorf("%w: artifact is missing fitted components", ErrIncompatibleModel)
	}
	if len(state.Scaler.Means) != len(state.FeatureNames) || len(state.Scaler.Stddev) != len(state.FeatureNames) {
		return fmt.Errorf("%w: scaler dimensions do not match the feature names", ErrIncompatibleModel)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Store(&state)

	return nil
}
