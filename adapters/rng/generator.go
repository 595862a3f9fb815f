// Package rng synthesizes reproducible Gaussian samples for simulated A/B tests.
package rng

import (
	"fmt"
	"math"

	"abtest/domain/experiment"
	"abtest/internal/errors"
	"abtest/ports"
)

// Generator names accepted by New
const (
	GeneratorLegacy = "legacy"
	GeneratorPCG    = "pcg"
)

// MaxSeed is the largest accepted seed; seeds are 32-bit like NumPy's legacy RandomState
const MaxSeed = math.MaxUint32

// DefaultStdDev is the standard deviation used when a caller has no historical estimate
const DefaultStdDev = 0.05

// New returns the sampler registered under name
func New(name string) (ports.SamplerPort, error) {
	switch name {
	case GeneratorLegacy, "":
		return NewLegacySampler(), nil
	case GeneratorPCG:
		return NewPCGSampler(), nil
	}
	return nil, errors.InvalidInputf("unknown generator %q (want %s or %s)", name, GeneratorLegacy, GeneratorPCG)
}

// GenerateGroups draws two independent samples of size n, group A first then group B, from a
// generator freshly seeded with seed. Identical arguments always yield identical groups.
func GenerateGroups(s ports.SamplerPort, seed int64, n int, meanA, meanB, stdDev float64) (experiment.Groups, error) {
	if n <= 0 {
		return experiment.Groups{}, errors.InvalidInputf("sample size must be positive, got %d", n)
	}
	if seed < 0 || seed > MaxSeed {
		return experiment.Groups{}, errors.InvalidInputf("seed must be in [0, %d], got %d", int64(MaxSeed), seed)
	}
	if math.IsNaN(stdDev) || math.IsInf(stdDev, 0) || stdDev < 0 {
		return experiment.Groups{}, errors.InvalidInputf("std_dev must be finite and non-negative, got %v", stdDev)
	}
	if math.IsNaN(meanA) || math.IsInf(meanA, 0) || math.IsNaN(meanB) || math.IsInf(meanB, 0) {
		return experiment.Groups{}, errors.InvalidInputf("group means must be finite, got %v and %v", meanA, meanB)
	}

	stream := s.Stream(seed)
	return experiment.Groups{
		A: stream.Normal(meanA, stdDev, n),
		B: stream.Normal(meanB, stdDev, n),
	}, nil
}

func validateStream(stream ports.NormalStream, seed int64, expected []float64, tolerance float64) error {
	got := stream.Normal(0, 1, len(expected))
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > tolerance {
			return errors.InternalError(fmt.Sprintf("seed %d draw %d: got %v, want %v", seed, i, got[i], expected[i]))
		}
	}
	return nil
}
