package experiment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// PARAMETERS
// ============================================================================

// Defaults used when a caller does not override the significance level or power
const (
	DefaultAlpha = 0.05
	DefaultPower = 0.8
)

// SampleSizeParams drives the minimum sample size estimate
// INVARIANTS:
// - StdDev >= 0
// - MDE != 0
// - Alpha and Power strictly inside (0, 1)
type SampleSizeParams struct {
	StdDev float64 `json:"std_dev"` // Historical standard deviation of the metric
	MDE    float64 `json:"mde"`     // Minimum detectable effect (absolute difference of means)
	Alpha  float64 `json:"alpha"`   // Significance level
	Power  float64 `json:"power"`   // 1 - beta
}

// DefaultSampleSizeParams fills alpha and power with their conventional values
func DefaultSampleSizeParams(stdDev, mde float64) SampleSizeParams {
	return SampleSizeParams{
		StdDev: stdDev,
		MDE:    mde,
		Alpha:  DefaultAlpha,
		Power:  DefaultPower,
	}
}

// ============================================================================
// SAMPLES
// ============================================================================

// Groups holds the two samples of an A/B comparison
type Groups struct {
	A []float64 `json:"group_a"`
	B []float64 `json:"group_b"`
}

// Size returns the per-group size when both groups are the same length, otherwise -1
func (g Groups) Size() int {
	if len(g.A) != len(g.B) {
		return -1
	}
	return len(g.A)
}

// GroupSummary is a descriptive snapshot of one sample
type GroupSummary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`

	Shape *ShapeMarkers `json:"shape,omitempty"` // nil for groups too small to analyze
}

// ShapeMarkers describe how far a sample departs from the normal shape the t-test assumes
type ShapeMarkers struct {
	Q25            float64 `json:"q25"`
	Q75            float64 `json:"q75"`
	Outliers       int     `json:"outliers"` // points beyond 1.5 IQR
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`
	JarqueBera     float64 `json:"jarque_bera"`
	NormalityP     float64 `json:"normality_p"` // Jarque-Bera p-value, chi-squared with 2 df
}

// LooksNormal reports whether the Jarque-Bera test fails to reject normality at alpha
func (m ShapeMarkers) LooksNormal(alpha float64) bool {
	return m.NormalityP >= alpha
}

// ============================================================================
// TEST RESULTS
// ============================================================================

// Method identifies the variance assumption of a two-sample t-test
type Method string

const (
	MethodStudent Method = "student" // pooled variance
	MethodWelch   Method = "welch"   // unequal variances, Welch-Satterthwaite df
)

// Alternative is the alternative hypothesis of a t-test
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// ParseAlternative maps a user-supplied name to an Alternative
func ParseAlternative(s string) (Alternative, error) {
	switch Alternative(s) {
	case TwoSided, Less, Greater:
		return Alternative(s), nil
	case "":
		return TwoSided, nil
	}
	return "", fmt.Errorf("unknown alternative %q (want two-sided, less or greater)", s)
}

// TestResult is the library-computed outcome of a two-sample t-test
// INVARIANTS:
// - PValue in [0, 1]
type TestResult struct {
	Statistic   float64     `json:"t_statistic"`
	PValue      float64     `json:"p_value"`
	DF          float64     `json:"df"`
	Method      Method      `json:"method"`
	Alternative Alternative `json:"alternative"`
}

// ManualResult is the hand-derived t-test for two equal-size groups
type ManualResult struct {
	MeanA     float64 `json:"mean_a"`
	MeanB     float64 `json:"mean_b"`
	VarA      float64 `json:"var_a"`
	VarB      float64 `json:"var_b"`
	Statistic float64 `json:"t_statistic"`
	DF        float64 `json:"df"`
	CriticalT float64 `json:"critical_t"`
	PValue    float64 `json:"p_value"`
}

// ExceedsCritical reports whether |t| lies beyond the critical value
func (m ManualResult) ExceedsCritical() bool {
	t := m.Statistic
	if t < 0 {
		t = -t
	}
	return t > m.CriticalT
}

// ============================================================================
// DECISIONS
// ============================================================================

// Outcome is the result of the decision rule
type Outcome string

const (
	Reject Outcome = "reject" // significant difference
	Retain Outcome = "retain" // fail to reject the null hypothesis
)

// ParseOutcome maps a scenario expectation to an Outcome
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case Reject, Retain:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("unknown outcome %q (want reject or retain)", s)
}

// Decision applies the rule "reject iff p < alpha"
type Decision struct {
	Outcome Outcome `json:"outcome"`
	PValue  float64 `json:"p_value"`
	Alpha   float64 `json:"alpha"`
}

// Decide builds the Decision for a p-value at the given significance level
func Decide(pValue, alpha float64) Decision {
	outcome := Retain
	if pValue < alpha {
		outcome = Reject
	}
	return Decision{Outcome: outcome, PValue: pValue, Alpha: alpha}
}

// Verdict is the human-readable sentence for the decision
func (d Decision) Verdict() string {
	p := FormatFloat(d.PValue)
	if d.Outcome == Reject {
		return fmt.Sprintf("There is a significant difference between the groups (p-value = %s).", p)
	}
	return fmt.Sprintf("There is no significant difference between the groups (p-value = %s).", p)
}

// FormatFloat renders f the way Python's repr does: the shortest round-tripping digits, plain
// notation for exponents in [-4, 16) with a trailing ".0" on integral values, and scientific
// notation otherwise
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Round2 rounds to two decimals like Python's round(f, 2): the exact binary value is rounded,
// ties go to the even digit
func Round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// ============================================================================
// SCENARIOS AND REPORTS
// ============================================================================

// Scenario is one simulated A/B comparison
type Scenario struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	RateA  float64 `json:"rate_a"` // avg daily conversion rate for group A
	RateB  float64 `json:"rate_b"` // avg daily conversion rate for group B
	Expect Outcome `json:"expect"`

	// DecisionOnly limits the text report to the decision line
	DecisionOnly bool `json:"decision_only,omitempty"`
}

// ScenarioReport collects everything computed for one scenario
type ScenarioReport struct {
	Scenario           Scenario     `json:"scenario"`
	SampleSize         int          `json:"sample_size"`
	SummaryA           GroupSummary `json:"summary_a"`
	SummaryB           GroupSummary `json:"summary_b"`
	Library            TestResult   `json:"library"`
	Manual             ManualResult `json:"manual"`
	Decision           Decision     `json:"decision"`
	MatchesExpectation bool         `json:"matches_expectation"`
}

// RunReport is the full output of one experiment run
type RunReport struct {
	RunID         string           `json:"run_id"`
	Params        SampleSizeParams `json:"params"`
	MinSampleSize int              `json:"min_sample_size"`
	Seed          int64            `json:"seed"`
	Generator     string           `json:"generator"`
	Scenarios     []ScenarioReport `json:"scenarios"`
}
