package app

import (
	"github.com/sirupsen/logrus"

	"abtest/adapters/rng"
	"abtest/internal/config"
	"abtest/internal/errors"
)

// Bootstrap wires an ExperimentService and its RunConfig from application configuration
func Bootstrap(cfg *config.Config, logger logrus.FieldLogger, opts ...Option) (*ExperimentService, RunConfig, error) {
	sampler, err := rng.New(cfg.Experiment.Generator)
	if err != nil {
		return nil, RunConfig{}, errors.Wrap(err, "failed to create sampler")
	}

	scenarios, err := config.LoadScenarios(cfg.Experiment.ScenariosFile)
	if err != nil {
		return nil, RunConfig{}, errors.Wrap(err, "failed to load scenarios")
	}

	runCfg := RunConfig{
		Params:        cfg.Experiment.SampleSizeParams(),
		Seed:          cfg.Experiment.Seed,
		EqualVariance: cfg.Experiment.EqualVariance,
		Scenarios:     scenarios,
	}

	return NewExperimentService(sampler, logger, opts...), runCfg, nil
}
