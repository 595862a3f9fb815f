package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// ManualTTest derives the two-sample t-test by hand for two equal-size groups.
//
// Assumes equal group sizes and equal variances: the standard error is sqrt((varA+varB)/n) and the
// degrees of freedom are 2n-2. The critical value is the Student-t quantile at 1-alpha/2.
func ManualTTest(a, b []float64, alpha float64) (experiment.ManualResult, error) {
	if len(a) != len(b) {
		return experiment.ManualResult{}, errors.InvalidInputf("groups must have equal size, got %d and %d", len(a), len(b))
	}
	if len(a) < 2 {
		return experiment.ManualResult{}, errors.InsufficientData("manual t-test needs at least 2 observations per group")
	}
	if !(alpha > 0 && alpha < 1) {
		return experiment.ManualResult{}, errors.InvalidInputf("alpha must be in (0, 1), got %v", alpha)
	}
	if err := checkFinite("A", a); err != nil {
		return experiment.ManualResult{}, err
	}
	if err := checkFinite("B", b); err != nil {
		return experiment.ManualResult{}, err
	}

	avgA, err := stats.Mean(a)
	if err != nil {
		return experiment.ManualResult{}, errors.Wrap(err, "mean of group A")
	}
	avgB, err := stats.Mean(b)
	if err != nil {
		return experiment.ManualResult{}, errors.Wrap(err, "mean of group B")
	}
	varA, err := stats.SampleVariance(a)
	if err != nil {
		return experiment.ManualResult{}, errors.Wrap(err, "variance of group A")
	}
	varB, err := stats.SampleVariance(b)
	if err != nil {
		return experiment.ManualResult{}, errors.Wrap(err, "variance of group B")
	}

	n := float64(len(a))
	se := math.Sqrt((varA + varB) / n)
	if se == 0 || math.IsNaN(se) {
		return experiment.ManualResult{}, errors.InsufficientData("both groups have zero variance")
	}

	dist := NewDistributions()
	tStat := (avgA - avgB) / se
	df := 2*n - 2

	return experiment.ManualResult{
		MeanA:     avgA,
		MeanB:     avgB,
		VarA:      varA,
		VarB:      varB,
		Statistic: tStat,
		DF:        df,
		CriticalT: dist.TQuantile(1-alpha/2, df),
		PValue:    dist.TwoSidedPValue(tStat, df),
	}, nil
}

// Summarize computes a descriptive snapshot of one group
func Summarize(data []float64) (experiment.GroupSummary, error) {
	if len(data) == 0 {
		return experiment.GroupSummary{}, errors.InsufficientData("cannot summarize an empty group")
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return experiment.GroupSummary{}, errors.Wrap(err, "mean")
	}
	min, err := stats.Min(data)
	if err != nil {
		return experiment.GroupSummary{}, errors.Wrap(err, "min")
	}
	max, err := stats.Max(data)
	if err != nil {
		return experiment.GroupSummary{}, errors.Wrap(err, "max")
	}
	median, err := stats.Median(data)
	if err != nil {
		return experiment.GroupSummary{}, errors.Wrap(err, "median")
	}

	// Sample standard deviation is undefined for a single observation
	stdDev := 0.0
	if len(data) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return experiment.GroupSummary{}, errors.Wrap(err, "standard deviation")
		}
	}

	summary := experiment.GroupSummary{
		N:      len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Median: median,
		Max:    max,
	}
	if len(data) >= 4 {
		shape, err := NewShapeAnalyzer().Analyze(data)
		if err != nil {
			return experiment.GroupSummary{}, errors.Wrap(err, "shape")
		}
		summary.Shape = &shape
	}
	return summary, nil
}

func checkFinite(group string, data []float64) error {
	if floats.HasNaN(data) {
		return errors.InvalidInputf("group %s contains NaN", group)
	}
	for i, v := range data {
		if math.IsInf(v, 0) {
			return errors.InvalidInputf("group %s observation %d is %v", group, i, v)
		}
	}
	return nil
}
