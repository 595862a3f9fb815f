package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest/domain/experiment"
	"abtest/internal/testkit"
)

func sampleReport() *experiment.RunReport {
	return &experiment.RunReport{
		RunID:         "run-1",
		Params:        testkit.DefaultParams(),
		MinSampleSize: 44,
		Seed:          42,
		Generator:     "legacy",
		Scenarios: []experiment.ScenarioReport{
			{
				Scenario:   experiment.Scenario{Name: "reject", Title: "rejecting the null hypothesis", RateA: 0.2, RateB: 0.23, Expect: experiment.Reject},
				SampleSize: 44,
				SummaryA:   experiment.GroupSummary{N: 44, Mean: 0.1946, StdDev: 0.047, Shape: &experiment.ShapeMarkers{Skewness: 0.12, ExcessKurtosis: -0.3, NormalityP: 0.81}},
				SummaryB:   experiment.GroupSummary{N: 44, Mean: 0.2281, StdDev: 0.045, Shape: &experiment.ShapeMarkers{Skewness: -0.05, Outliers: 1, NormalityP: 0.64}},
				Library:    experiment.TestResult{Statistic: -3.4567, PValue: 0.000847, DF: 86, Method: experiment.MethodStudent, Alternative: experiment.TwoSided},
				Manual:     experiment.ManualResult{Statistic: -3.4567, DF: 86, CriticalT: 1.98793, PValue: 0.000847},
				Decision:   experiment.Decide(0.000847, 0.05),

				MatchesExpectation: true,
			},
			{
				Scenario:   experiment.Scenario{Name: "retain", Title: "failing to reject the null hypothesis", RateA: 0.2, RateB: 0.201, Expect: experiment.Retain, DecisionOnly: true},
				SampleSize: 44,
				Library:    experiment.TestResult{Statistic: -0.2, PValue: 0.842, DF: 86, Method: experiment.MethodStudent},
				Manual:     experiment.ManualResult{Statistic: -0.2, DF: 86, CriticalT: 1.98793, PValue: 0.842},
				Decision:   experiment.Decide(0.842, 0.05),

				MatchesExpectation: true,
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, ColorNever).Write(sampleReport()))

	want := strings.Join([]string{
		"Minimum sample size for alpha = 0.05, power = 0.8 and mde = 0.03: 44",
		"",
		">>> Test #1: rejecting the null hypothesis <<<",
		"Decision: There is a significant difference between the groups (p-value = 0.000847).",
		"t-statistic = -3.46",
		"t-statistic calculated by hand = -3.46",
		"critical t-statistic = 1.99",
		"p-value calculated by hand = 0.000847",
		"",
		">>> Test #2: failing to reject the null hypothesis <<<",
		"Decision: There is no significant difference between the groups (p-value = 0.842).",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteText_NonTerminalAutoIsPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, ColorAuto).Write(sampleReport()))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestWriteText_AlwaysColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, ColorAlways).Write(sampleReport()))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "There is a significant difference")
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleReport()))

	assert.Contains(t, md, "# A/B test run run-1")
	assert.Contains(t, md, "| minimum sample size | 44 |")
	assert.Contains(t, md, "## Test #1: rejecting the null hypothesis")
	assert.Contains(t, md, "## Test #2: failing to reject the null hypothesis")
	assert.Contains(t, md, "| critical t | | 1.99 |")
	assert.NotContains(t, md, "Expected outcome")
	assert.Contains(t, md, "| A | 0.120 | -0.300 | 0 | 0.8100 |")
	assert.Contains(t, md, "| B | -0.050 | 0.000 | 1 | 0.6400 |")
	assert.Equal(t, 1, strings.Count(md, "normality p"))
}

func TestMarkdown_FlagsUnexpectedOutcome(t *testing.T) {
	r := sampleReport()
	r.Scenarios[1].Scenario.Expect = experiment.Reject
	r.Scenarios[1].MatchesExpectation = false
	assert.Contains(t, string(Markdown(r)), "> Expected outcome `reject`, got `retain`.")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatHTML, ColorAlways).Write(sampleReport()))

	html := buf.String()
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Test #2: failing to reject the null hypothesis")
	assert.NotContains(t, html, "\x1b[")
}

func TestParseFormatAndColor(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	c, err := ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, c)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}
