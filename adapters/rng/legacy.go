package rng

import (
	"math"

	"gonum.org/v1/gonum/mathext/prng"

	"abtest/ports"
)

// LegacySampler reproduces NumPy's legacy RandomState normal draws: a 32-bit Mersenne Twister
// seeded with init_genrand and the Marsaglia polar method, which caches the second deviate of
// every accepted pair.
type LegacySampler struct{}

// NewLegacySampler creates the NumPy-compatible sampler
func NewLegacySampler() *LegacySampler {
	return &LegacySampler{}
}

// Name returns the generator name
func (s *LegacySampler) Name() string {
	return GeneratorLegacy
}

// Stream creates a fresh generator for the seed, which GenerateGroups keeps within [0, MaxSeed]
func (s *LegacySampler) Stream(seed int64) ports.NormalStream {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &legacyStream{mt: mt}
}

// ValidateSeed ensures the seed produces the expected standard normal draws
func (s *LegacySampler) ValidateSeed(seed int64, expected []float64, tolerance float64) error {
	return validateStream(s.Stream(seed), seed, expected, tolerance)
}

type legacyStream struct {
	mt       *prng.MT19937
	hasGauss bool
	gauss    float64
}

// Normal draws n values from N(mean, stdDev)
func (st *legacyStream) Normal(mean, stdDev float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stdDev*st.standardNormal()
	}
	return out
}

// float64 builds a 53-bit double in [0, 1) from two 32-bit words
func (st *legacyStream) float64() float64 {
	a := st.mt.Uint32() >> 5
	b := st.mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

func (st *legacyStream) standardNormal() float64 {
	if st.hasGauss {
		st.hasGauss = false
		return st.gauss
	}

	var x1, x2, r2 float64
	for {
		x1 = 2.0*st.float64() - 1.0
		x2 = 2.0*st.float64() - 1.0
		r2 = x1*x1 + x2*x2
		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}

	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	st.gauss = f * x1
	st.hasGauss = true
	return f * x2
}
