package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// ShapeAnalyzer checks the distribution shape of a sample against the t-test's normality assumption
type ShapeAnalyzer struct{}

// NewShapeAnalyzer creates a new shape analyzer
func NewShapeAnalyzer() *ShapeAnalyzer {
	return &ShapeAnalyzer{}
}

// Analyze computes moment-based shape markers, IQR outliers and the Jarque-Bera normality test
func (sa *ShapeAnalyzer) Analyze(data []float64) (experiment.ShapeMarkers, error) {
	if len(data) < 4 {
		return experiment.ShapeMarkers{}, errors.InsufficientData("shape analysis needs at least 4 observations")
	}

	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return experiment.ShapeMarkers{}, errors.Wrap(err, "25th percentile")
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return experiment.ShapeMarkers{}, errors.Wrap(err, "75th percentile")
	}

	skewness, excessKurtosis := moments(data)
	jb := float64(len(data)) / 6 * (skewness*skewness + excessKurtosis*excessKurtosis/4)
	chi := distuv.ChiSquared{K: 2}

	return experiment.ShapeMarkers{
		Q25:            q25,
		Q75:            q75,
		Outliers:       countOutliers(data, q25, q75),
		Skewness:       skewness,
		ExcessKurtosis: excessKurtosis,
		JarqueBera:     jb,
		NormalityP:     chi.Survival(jb),
	}, nil
}

// moments returns the population skewness g1 and excess kurtosis g2
func moments(data []float64) (float64, float64) {
	m2 := stat.Moment(2, data, nil)
	if m2 == 0 {
		return 0, 0
	}
	m3 := stat.Moment(3, data, nil)
	m4 := stat.Moment(4, data, nil)
	return m3 / math.Pow(m2, 1.5), m4/(m2*m2) - 3
}
// countOutliers counts points beyond 1.5 IQR of the quartiles
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}
