package anomaly

import "math"

// standardScaler centers features to zero mean and unit variance, using
// statistics fitted on the training batch. The features span wildly
// different magnitudes (counts vs ratios vs seconds), so without scaling the
// forest's random splits would be dominated by the largest-magnitude
// columns. Fields are exported so the fitted transform serializes with the
// model artifact.
type standardScaler struct {
	Means  []float64 `json:"means"`
	Stddev []float64 `json:"stddev"`
}

// fitScaler computes per-column mean and population standard deviation over
// the training matrix. Constant columns get a standard deviation of 1 so the
// transform never divides by zero.
func fitScaler(data [][]float64) *standardScaler {
	dims := len(data[0])
	s := &standardScaler{
		Means:  make([]float64, dims),
		Stddev: make([]float64, dims),
	}

	n := float64(len(data))
	for _, row := range data {
		for q, v := range row {
			s.Means[q] += v
		}
	}
	for q := range s.Means {
		s.Means[q] /= n
	}

	for _, row := range data {
		for q, v := range row {
			d := v - s.Means[q]
			s.Stddev[q] += d * d
		}
	}
	for q := range s.Stddev {
		s.Stddev[q] = math.Sqrt(s.Stddev[q] / n)
		if s.Stddev[q] == 0 {
			s.Stddev[q] = 1
		}
	}

	return s
}

// transform returns a scaled copy of x. The input is left untouched.
func (s *standardScaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for q, v := range x {
		out[q] = (v - s.Means[q]) / s.Stddev[q]
	}
	return out
}
