package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ABTEST_STD_DEV", "ABTEST_ALPHA", "ABTEST_POWER", "ABTEST_MDE", "ABTEST_SEED",
		"ABTEST_GENERATOR", "ABTEST_EQUAL_VAR", "ABTEST_SCENARIOS_FILE", "ABTEST_FORMAT",
		"ABTEST_COLOR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, experiment.DefaultSampleSizeParams(0.05, 0.03), cfg.Experiment.SampleSizeParams())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ABTEST_STD_DEV", "0.1")
	t.Setenv("ABTEST_ALPHA", "0.01")
	t.Setenv("ABTEST_POWER", "0.9")
	t.Setenv("ABTEST_MDE", "0.02")
	t.Setenv("ABTEST_SEED", "7")
	t.Setenv("ABTEST_GENERATOR", "pcg")
	t.Setenv("ABTEST_EQUAL_VAR", "false")
	t.Setenv("ABTEST_FORMAT", "markdown")
	t.Setenv("ABTEST_COLOR", "never")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Experiment.StdDev)
	assert.Equal(t, 0.01, cfg.Experiment.Alpha)
	assert.Equal(t, 0.9, cfg.Experiment.Power)
	assert.Equal(t, 0.02, cfg.Experiment.MDE)
	assert.Equal(t, int64(7), cfg.Experiment.Seed)
	assert.Equal(t, "pcg", cfg.Experiment.Generator)
	assert.False(t, cfg.Experiment.EqualVariance)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ABTEST_ALPHA", "1.5"},
		{"ABTEST_POWER", "0"},
		{"ABTEST_STD_DEV", "-1"},
		{"ABTEST_MDE", "0"},
		{"ABTEST_GENERATOR", "mersenne"},
		{"ABTEST_FORMAT", "pdf"},
		{"ABTEST_SEED", "-1"},
		{"ABTEST_SEED", "4294967296"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ABTEST_MDE", "0,03"},
		{"ABTEST_ALPHA", "five percent"},
		{"ABTEST_SEED", "4.2"},
		{"ABTEST_EQUAL_VAR", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
			assert.ErrorContains(t, err, tt.key)
			assert.ErrorContains(t, err, tt.value)
		})
	}
}

func TestLoad_SeedUpperBound(t *testing.T) {
	t.Setenv("ABTEST_SEED", "4294967295")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(4294967295), cfg.Experiment.Seed)
}

func TestParseScenarios(t *testing.T) {
	doc := []byte(`{"scenarios": [
		{"name": "big", "title": "large lift", "rate_a": 0.2, "rate_b": 0.3, "expect": "reject"},
		{"name": "none", "rate_a": 0.2, "rate_b": 0.2, "decision_only": true}
	]}`)

	got, err := ParseScenarios(doc)
	require.NoError(t, err)
	assert.Equal(t, []experiment.Scenario{
		{Name: "big", Title: "large lift", RateA: 0.2, RateB: 0.3, Expect: experiment.Reject},
		{Name: "none", RateA: 0.2, RateB: 0.2, DecisionOnly: true},
	}, got)
}

func TestParseScenarios_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"not json", `{"scenarios": [`, "not valid JSON"},
		{"missing list", `{"other": []}`, "non-empty"},
		{"empty list", `{"scenarios": []}`, "non-empty"},
		{"no name", `{"scenarios": [{"rate_a": 0.2, "rate_b": 0.3}]}`, "scenario 0 has no name"},
		{"duplicate", `{"scenarios": [{"name": "a", "rate_a": 0.2, "rate_b": 0.3}, {"name": "a", "rate_a": 0.2, "rate_b": 0.3}]}`, "duplicate"},
		{"string rate", `{"scenarios": [{"name": "a", "rate_a": "0.2", "rate_b": 0.3}]}`, "numeric"},
		{"bad expect", `{"scenarios": [{"name": "a", "rate_a": 0.2, "rate_b": 0.3, "expect": "maybe"}]}`, "unknown outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenarios([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("")
	require.NoError(t, err)
	assert.Nil(t, scenarios)

	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scenarios":[{"name":"x","rate_a":0.1,"rate_b":0.2}]}`), 0o644))

	scenarios, err = LoadScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "x", scenarios[0].Name)

	_, err = LoadScenarios(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
