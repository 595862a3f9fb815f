package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest/internal/config"
	"abtest/internal/errors"
)

func TestBootstrap_Default(t *testing.T) {
	logger, _ := test.NewNullLogger()

	svc, runCfg, err := Bootstrap(config.Default(), logger)
	require.NoError(t, err)
	assert.Nil(t, runCfg.Scenarios)
	assert.Equal(t, int64(42), runCfg.Seed)
	assert.True(t, runCfg.EqualVariance)

	report, err := svc.Run(context.Background(), runCfg)
	require.NoError(t, err)
	assert.Len(t, report.Scenarios, len(DefaultScenarios()))
	assert.NotEmpty(t, report.RunID)
}

func TestBootstrap_ScenariosFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	doc := `{"scenarios":[{"name":"huge","title":"huge lift","rate_a":0.2,"rate_b":0.4,"expect":"reject"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := config.Default()
	cfg.Experiment.ScenariosFile = path
	logger, _ := test.NewNullLogger()

	svc, runCfg, err := Bootstrap(cfg, logger)
	require.NoError(t, err)
	require.Len(t, runCfg.Scenarios, 1)

	report, err := svc.Run(context.Background(), runCfg)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, 1)
	assert.Equal(t, "huge", report.Scenarios[0].Scenario.Name)
	assert.True(t, report.Scenarios[0].MatchesExpectation)
}

func TestBootstrap_UnknownGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Experiment.Generator = "mersenne"
	logger, _ := test.NewNullLogger()

	_, _, err := Bootstrap(cfg, logger)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
