// Package testkit holds reference fixtures shared by the package tests.
package testkit

import (
	"abtest/domain/experiment"
)

// NumPySeed42Normals are the first ten standard normal draws of numpy.random.seed(42)
var NumPySeed42Normals = []float64{
	0.4967141530112327,
	-0.13826430117118466,
	0.6476885381006925,
	1.5230298564080254,
	-0.23415337472333597,
	-0.23413695694918055,
	1.5792128155073915,
	0.7674347291529088,
	-0.4694743859349521,
	0.5425600435859647,
}

// TTestFixture is a pair of samples with known t-test results
type TTestFixture struct {
	A, B []float64

	StudentT, StudentDF, StudentP float64
	WelchT, WelchDF, WelchP       float64

	// One-sided p-values for the Student test
	StudentPLess, StudentPGreater float64
}

// SmallSamples is a four-observation pair with hand-checked Student and Welch results
func SmallSamples() TTestFixture {
	return TTestFixture{
		A: []float64{2, 1, 3, 4},
		B: []float64{6, 5, 7, 9},

		StudentT:  -3.9703446152237674,
		StudentDF: 6,
		StudentP:  0.0073640592242113214,

		WelchT:  -3.9703446152237674,
		WelchDF: 5.584615384615385,
		WelchP:  0.0085128631313781695,

		StudentPLess:    0.0036820296121056195,
		StudentPGreater: 0.9963179703878944,
	}
}

// DefaultParams mirrors the built-in experiment: sigma 0.05, mde 0.03, alpha 0.05, power 0.8
func DefaultParams() experiment.SampleSizeParams {
	return experiment.DefaultSampleSizeParams(0.05, 0.03)
}

// DefaultSeed is the seed the built-in scenarios are generated with
const DefaultSeed int64 = 42
