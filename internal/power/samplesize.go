// Package power estimates how many observations an A/B test needs.
package power

import (
	"math"

	"abtest/domain/experiment"
	"abtest/internal/analysis"
	"abtest/internal/errors"
)

// MinGroupSize is the smallest per-group size a two-sample t-test can run on
const MinGroupSize = 2

// MinSampleSize estimates the minimum sample size per group for a two-sided two-sample t-test.
//
// Assumptions:
//   - sample sizes are the same for both groups
//   - both groups have the same standard deviation
//
// n = ceil(2 * sigma^2 * (Z_beta + Z_alpha)^2 / mde^2), with Z_beta = Phi^-1(power) and
// Z_alpha = Phi^-1(1 - alpha/2).
func MinSampleSize(p experiment.SampleSizeParams) (int, error) {
	if err := Validate(p); err != nil {
		return 0, err
	}

	dist := analysis.NewDistributions()
	zBeta := dist.NormalQuantile(p.Power)
	zAlpha := dist.NormalQuantile(1 - p.Alpha/2)

	z := zBeta + zAlpha
	n := math.Ceil(2 * p.StdDev * p.StdDev * z * z / (p.MDE * p.MDE))
	if math.IsInf(n, 0) || n > math.MaxInt32 {
		return 0, errors.InvalidInputf("required sample size overflows (std_dev=%v, mde=%v)", p.StdDev, p.MDE)
	}

	return max(int(n), MinGroupSize), nil
}

// Validate rejects parameters for which the estimate is undefined
func Validate(p experiment.SampleSizeParams) error {
	switch {
	case math.IsNaN(p.StdDev) || math.IsInf(p.StdDev, 0):
		return errors.InvalidInputf("std_dev must be finite, got %v", p.StdDev)
	case p.StdDev < 0:
		return errors.InvalidInputf("std_dev must be non-negative, got %v", p.StdDev)
	case math.IsNaN(p.MDE) || math.IsInf(p.MDE, 0):
		return errors.InvalidInputf("mde must be finite, got %v", p.MDE)
	case p.MDE == 0:
		return errors.InvalidInput("mde must be non-zero")
	case !(p.Alpha > 0 && p.Alpha < 1):
		return errors.InvalidInputf("alpha must be in (0, 1), got %v", p.Alpha)
	case !(p.Power > 0 && p.Power < 1):
		return errors.InvalidInputf("power must be in (0, 1), got %v", p.Power)
	}
	return nil
}
