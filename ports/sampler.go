package ports

// SamplerPort provides seeded Gaussian draws for deterministic data generation
type SamplerPort interface {
	// Name identifies the generator (e.g. "legacy", "pcg")
	Name() string

	// Stream creates a fresh deterministic stream for the seed; no state is shared between streams
	Stream(seed int64) NormalStream

	// ValidateSeed ensures the seed reproduces the expected standard normal draws
	ValidateSeed(seed int64, expected []float64, tolerance float64) error
}

// NormalStream yields successive draws from one seeded generator
type NormalStream interface {
	// Normal draws n values from N(mean, stdDev)
	Normal(mean, stdDev float64, n int) []float64
}
