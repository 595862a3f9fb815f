package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides unified access to the distributions used by the t-test and
// the sample size estimate
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func (sd *StatisticalDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TQuantile is the inverse CDF of Student's t with df degrees of freedom
func (sd *StatisticalDistributions) TQuantile(p, df float64) float64 {
	return studentsT(df).Quantile(p)
}

// TCDF is the cumulative distribution function of Student's t with df degrees of freedom
func (sd *StatisticalDistributions) TCDF(t, df float64) float64 {
	return studentsT(df).CDF(t)
}

// TwoSidedPValue computes 2 * CDF(df, -|t|), clamped to [0, 1]
func (sd *StatisticalDistributions) TwoSidedPValue(t, df float64) float64 {
	if df <= 0 || math.IsNaN(t) || math.IsNaN(df) {
		return 1.0
	}
	return clampProbability(2 * sd.TCDF(-math.Abs(t), df))
}

func studentsT(df float64) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
}

func clampProbability(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
