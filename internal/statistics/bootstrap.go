// Package statistics computes interval estimates over generated series.
package statistics

import (
	"math"
	"math/rand/v2"
	"slices"
)

// ConfidenceInterval is a percentile bootstrap interval around a mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
	Resamples       int     `json:"resamples"`
}

// DefaultResamples is the number of bootstrap resamples drawn per interval.
const DefaultResamples = 2000

// BootstrapCI computes a percentile bootstrap interval of the mean of values.
// The resampling stream is derived from seed, so the same input always yields
// the same interval. Fewer than two values give a degenerate interval at the
// mean with zero resamples.
func BootstrapCI(values []float64, confidenceLevel float64, seed uint64) ConfidenceInterval {
	m := mean(values)
	n := len(values)
	if n < 2 {
		return ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: confidenceLevel}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	means := make([]float64, DefaultResamples)
	for i := range means {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += values[rng.IntN(n)]
		}
		means[i] = sum / float64(n)
	}
	slices.Sort(means)

	alpha := 1.0 - confidenceLevel
	lo := int(math.Floor(alpha / 2.0 * DefaultResamples))
	hi := int(math.Floor((1.0 - alpha/2.0) * DefaultResamples))
	hi = min(hi, DefaultResamples-1)

	return ConfidenceInterval{
		Lower:           means[lo],
		Upper:           means[hi],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		Resamples:       DefaultResamples,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
