package report

import (
	"fmt"
	"io"
	"strings"

	"abtest/domain/experiment"
)

// writeText prints the plain report:
//
//	Minimum sample size for alpha = 0.05, power = 0.8 and mde = 0.03: 44
//
//	>>> Test #1: rejecting the null hypothesis <<<
//	Decision: There is a significant difference between the groups (p-value = ...).
//	t-statistic = ...
func writeText(out io.Writer, r *experiment.RunReport, st *styles) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Minimum sample size for alpha = %s, power = %s and mde = %s: %d\n",
		experiment.FormatFloat(r.Params.Alpha),
		experiment.FormatFloat(r.Params.Power),
		experiment.FormatFloat(r.Params.MDE),
		r.MinSampleSize)

	for i, sr := range r.Scenarios {
		b.WriteString("\n")
		b.WriteString(st.heading(fmt.Sprintf(">>> Test #%d: %s <<<", i+1, scenarioTitle(sr.Scenario))))
		b.WriteString("\n")
		b.WriteString(st.verdict(sr.Decision, "Decision: "+sr.Decision.Verdict()))
		b.WriteString("\n")
		if sr.Scenario.DecisionOnly {
			continue
		}
		fmt.Fprintf(&b, "t-statistic = %s\n", experiment.FormatFloat(experiment.Round2(sr.Library.Statistic)))
		fmt.Fprintf(&b, "t-statistic calculated by hand = %s\n", experiment.FormatFloat(experiment.Round2(sr.Manual.Statistic)))
		fmt.Fprintf(&b, "critical t-statistic = %s\n", experiment.FormatFloat(experiment.Round2(sr.Manual.CriticalT)))
		fmt.Fprintf(&b, "p-value calculated by hand = %s\n", experiment.FormatFloat(sr.Manual.PValue))
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func scenarioTitle(sc experiment.Scenario) string {
	if sc.Title != "" {
		return sc.Title
	}
	return sc.Name
}
