// Package ttest implements the independent two-sample t-test on top of gonum.
package ttest

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// Options selects the variance assumption and the alternative hypothesis
type Options struct {
	EqualVariance bool
	Alternative   experiment.Alternative
}

// DefaultOptions is the pooled-variance, two-sided test
func DefaultOptions() Options {
	return Options{EqualVariance: true, Alternative: experiment.TwoSided}
}

// Independent runs the two-sample t-test of the means of a and b.
//
// With EqualVariance the pooled (Student) statistic with n1+n2-2 degrees of freedom is used,
// otherwise Welch's statistic with Welch-Satterthwaite degrees of freedom.
func Independent(a, b []float64, opts Options) (experiment.TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return experiment.TestResult{}, errors.InsufficientData("t-test needs at least 2 observations per group")
	}
	if err := checkFinite("A", a); err != nil {
		return experiment.TestResult{}, err
	}
	if err := checkFinite("B", b); err != nil {
		return experiment.TestResult{}, err
	}
	alt := opts.Alternative
	if alt == "" {
		alt = experiment.TwoSided
	}

	n1, n2 := float64(len(a)), float64(len(b))
	mean1, var1 := stat.MeanVariance(a, nil)
	mean2, var2 := stat.MeanVariance(b, nil)
	if var1 == 0 && var2 == 0 {
		return experiment.TestResult{}, errors.InsufficientData("both samples have zero variance")
	}

	var se, df float64
	method := experiment.MethodStudent
	if opts.EqualVariance {
		df = n1 + n2 - 2
		pooled := ((n1-1)*var1 + (n2-1)*var2) / df
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
	} else {
		method = experiment.MethodWelch
		v1, v2 := var1/n1, var2/n2
		se = math.Sqrt(v1 + v2)
		df = (v1 + v2) * (v1 + v2) / (v1*v1/(n1-1) + v2*v2/(n2-1))
	}

	t := (mean1 - mean2) / se
	p, err := pValue(t, df, alt)
	if err != nil {
		return experiment.TestResult{}, err
	}

	return experiment.TestResult{
		Statistic:   t,
		PValue:      p,
		DF:          df,
		Method:      method,
		Alternative: alt,
	}, nil
}

func pValue(t, df float64, alt experiment.Alternative) (float64, error) {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	var p float64
	switch alt {
	case experiment.TwoSided:
		p = 2 * dist.CDF(-math.Abs(t))
	case experiment.Less:
		p = dist.CDF(t)
	case experiment.Greater:
		p = dist.Survival(t)
	default:
		return 0, errors.InvalidInputf("unknown alternative %q", alt)
	}
	return math.Min(1, math.Max(0, p)), nil
}

// checkFinite rejects NaN and infinite observations, which would leave t and p undefined
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
