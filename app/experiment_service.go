package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"abtest/adapters/rng"
	"abtest/adapters/stats/ttest"
	"abtest/domain/experiment"
	"abtest/internal/analysis"
	"abtest/internal/errors"
	"abtest/internal/power"
	"abtest/ports"
)

// ExperimentService estimates the sample size, simulates each scenario and runs the t-tests
type ExperimentService struct {
	sampler ports.SamplerPort
	logger  logrus.FieldLogger
	newID   func() string
}

// Option customizes an ExperimentService
type Option func(*ExperimentService)

// WithRunIDFunc overrides run identifier generation
func WithRunIDFunc(fn func() string) Option {
	return func(s *ExperimentService) {
		s.newID = fn
	}
}

// RunConfig holds the parameters of one experiment run
type RunConfig struct {
	Params        experiment.SampleSizeParams
	Seed          int64
	EqualVariance bool
	Scenarios     []experiment.Scenario
}

// NewExperimentService creates an experiment service
func NewExperimentService(sampler ports.SamplerPort, logger logrus.FieldLogger, opts ...Option) *ExperimentService {
	s := &ExperimentService{
		sampler: sampler,
		logger:  logger,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultScenarios are the two built-in comparisons: a 15% lift on a 0.2 conversion rate that
// the test is powered to detect, and a 0.5% lift that it is not
func DefaultScenarios() []experiment.Scenario {
	return []experiment.Scenario{
		{
			Name:   "reject",
			Title:  "rejecting the null hypothesis",
			RateA:  0.2,
			RateB:  0.23,
			Expect: experiment.Reject,
		},
		{
			Name:   "retain",
			Title:  "failing to reject the null hypothesis",
			RateA:  0.2,
			RateB:  0.201,
			Expect: experiment.Retain,

			DecisionOnly: true,
		},
	}
}

// Run executes every scenario of cfg with the shared minimum sample size
func (s *ExperimentService) Run(ctx context.Context, cfg RunConfig) (*experiment.RunReport, error) {
	runID := s.newID()
	log := s.logger.WithFields(logrus.Fields{
		"run_id":    runID,
		"generator": s.sampler.Name(),
		"seed":      cfg.Seed,
	})

	n, err := power.MinSampleSize(cfg.Params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate minimum sample size")
	}
	log.WithFields(logrus.Fields{
		"alpha": cfg.Params.Alpha,
		"power": cfg.Params.Power,
		"mde":   cfg.Params.MDE,
		"n":     n,
	}).Info("Estimated minimum sample size")

	scenarios := cfg.Scenarios
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}

	report := &experiment.RunReport{
		RunID:         runID,
		Params:        cfg.Params,
		MinSampleSize: n,
		Seed:          cfg.Seed,
		Generator:     s.sampler.Name(),
		Scenarios:     make([]experiment.ScenarioReport, 0, len(scenarios)),
	}

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "experiment run cancelled")
		}

		sr, err := s.runScenario(sc, n, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %q failed", sc.Name)
		}

		entry := log.WithFields(logrus.Fields{
			"scenario": sc.Name,
			"p_value":  sr.Decision.PValue,
			"outcome":  sr.Decision.Outcome,
		})
		if sr.MatchesExpectation {
			entry.Info("Scenario completed")
		} else {
			entry.WithField("expected", sc.Expect).Warn("Scenario outcome differs from expectation")
		}
		logShape(entry, "A", sr.SummaryA, cfg.Params.Alpha)
		logShape(entry, "B", sr.SummaryB, cfg.Params.Alpha)

		report.Scenarios = append(report.Scenarios, *sr)
	}

	return report, nil
}

func (s *ExperimentService) runScenario(sc experiment.Scenario, n int, cfg RunConfig) (*experiment.ScenarioReport, error) {
	groups, err := rng.GenerateGroups(s.sampler, cfg.Seed, n, sc.RateA, sc.RateB, cfg.Params.StdDev)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate data")
	}

	summaryA, err := analysis.Summarize(groups.A)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize group A")
	}
	summaryB, err := analysis.Summarize(groups.B)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize group B")
	}

	library, err := ttest.Independent(groups.A, groups.B, ttest.Options{
		EqualVariance: cfg.EqualVariance,
		Alternative:   experiment.TwoSided,
	})
	if err != nil {
		return nil, errors.Wrap(err, "t-test failed")
	}

	manual, err := analysis.ManualTTest(groups.A, groups.B, cfg.Params.Alpha)
	if err != nil {
		return nil, errors.Wrap(err, "manual t-test failed")
	}

	decision := experiment.Decide(library.PValue, cfg.Params.Alpha)

	return &experiment.ScenarioReport{
		Scenario:           sc,
		SampleSize:         n,
		SummaryA:           summaryA,
		SummaryB:           summaryB,
		Library:            library,
		Manual:             manual,
		Decision:           decision,
		MatchesExpectation: sc.Expect == "" || decision.Outcome == sc.Expect,
	}, nil
}

// logShape notes groups whose Jarque-Bera test rejects normality
func logShape(entry logrus.FieldLogger, group string, summary experiment.GroupSummary, alpha float64) {
	if summary.Shape == nil || summary.Shape.LooksNormal(alpha) {
		return
	}
	entry.WithFields(logrus.Fields{
		"group":       group,
		"skewness":    summary.Shape.Skewness,
		"normality_p": summary.Shape.NormalityP,
	}).Debug("Group deviates from normality")
}
