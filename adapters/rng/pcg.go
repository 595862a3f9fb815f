package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"abtest/ports"
)

// PCGSampler draws through gonum's Normal distribution backed by a PCG source
type PCGSampler struct{}

// NewPCGSampler creates the PCG-backed sampler
func NewPCGSampler() *PCGSampler {
	return &PCGSampler{}
}

// Name returns the generator name
func (s *PCGSampler) Name() string {
	return GeneratorPCG
}

// Stream creates a fresh generator for the seed
func (s *PCGSampler) Stream(seed int64) ports.NormalStream {
	return &pcgStream{src: rand.NewPCG(uint64(seed), pcgStreamID)}
}

// ValidateSeed ensures the seed produces the expected standard normal draws
func (s *PCGSampler) ValidateSeed(seed int64, expected []float64, tolerance float64) error {
	return validateStream(s.Stream(seed), seed, expected, tolerance)
}

// pcgStreamID selects the PCG increment; fixed so a seed always maps to the same sequence
const pcgStreamID = 0xda3e39cb94b95bdb

type pcgStream struct {
	src rand.Source
}

// Normal draws n values from N(mean, stdDev)
func (st *pcgStream) Normal(mean, stdDev float64, n int) []float64 {
	out := make([]float64, n)
	dist := distuv.Normal{Mu: mean, Sigma: stdDev, Src: st.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
