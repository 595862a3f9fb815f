package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"abtest/adapters/rng"
	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Experiment ExperimentConfig
	Output     OutputConfig
	Logging    LoggingConfig
}

// ExperimentConfig holds the statistical parameters of a run
type ExperimentConfig struct {
	StdDev        float64 `validate:"gte=0"`
	Alpha         float64 `validate:"gt=0,lt=1"`
	Power         float64 `validate:"gt=0,lt=1"`
	MDE           float64 `validate:"required"`
	Seed          int64   `validate:"gte=0,lte=4294967295"`
	Generator     string  `validate:"oneof=legacy pcg"`
	EqualVariance bool
	ScenariosFile string
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `validate:"oneof=text markdown html"`
	Color  string `validate:"oneof=auto always never"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `validate:"required"`
}

// Default values for the built-in experiment
const (
	DefaultStdDev = rng.DefaultStdDev // historical standard deviation
	DefaultMDE    = 0.03              // 15% effect on an avg daily conversion rate of 0.2
	DefaultSeed   = 42
)

var validate = validator.New()

// Load reads configuration from environment variables and validates it. Set but malformed
// values are errors, never silently replaced by defaults.
func Load() (*Config, error) {
	env := &envReader{}
	config := &Config{
		Experiment: loadExperimentConfig(env),
		Output:     loadOutputConfig(),
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}
	if env.err != nil {
		return nil, env.err
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration of the built-in experiment without reading the environment
func Default() *Config {
	return &Config{
		Experiment: ExperimentConfig{
			StdDev:        DefaultStdDev,
			Alpha:         experiment.DefaultAlpha,
			Power:         experiment.DefaultPower,
			MDE:           DefaultMDE,
			Seed:          DefaultSeed,
			Generator:     rng.GeneratorLegacy,
			EqualVariance: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks the struct tags of config
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// SampleSizeParams converts the experiment settings to estimator parameters
func (c ExperimentConfig) SampleSizeParams() experiment.SampleSizeParams {
	return experiment.SampleSizeParams{
		StdDev: c.StdDev,
		MDE:    c.MDE,
		Alpha:  c.Alpha,
		Power:  c.Power,
	}
}

func loadExperimentConfig(env *envReader) ExperimentConfig {
	return ExperimentConfig{
		StdDev:        env.float("ABTEST_STD_DEV", DefaultStdDev),
		Alpha:         env.float("ABTEST_ALPHA", experiment.DefaultAlpha),
		Power:         env.float("ABTEST_POWER", experiment.DefaultPower),
		MDE:           env.float("ABTEST_MDE", DefaultMDE),
		Seed:          env.int64("ABTEST_SEED", DefaultSeed),
		Generator:     getEnvOrDefault("ABTEST_GENERATOR", rng.GeneratorLegacy),
		EqualVariance: env.bool("ABTEST_EQUAL_VAR", true),
		ScenariosFile: getEnvOrDefault("ABTEST_SCENARIOS_FILE", ""),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Format: getEnvOrDefault("ABTEST_FORMAT", "text"),
		Color:  getEnvOrDefault("ABTEST_COLOR", "auto"),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed environment variables and keeps the first parse failure
type envReader struct {
	err error
}

func (r *envReader) int64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.fail(key, value, "an integer")
		return defaultValue
	}
	return intValue
}

func (r *envReader) float(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(key, value, "a number")
		return defaultValue
	}
	return floatValue
}

func (r *envReader) bool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		r.fail(key, value, "a boolean")
		return defaultValue
	}
	return boolValue
}

func (r *envReader) fail(key, value, want string) {
	if r.err == nil {
		r.err = errors.ConfigInvalid(fmt.Sprintf("%s=%q is not %s", key, value, want))
	}
}
