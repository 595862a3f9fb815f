package report

import (
	"bytes"
	"fmt"

	"github.com/gomarkdown/markdown"

	"abtest/domain/experiment"
)

// Markdown renders the report as a markdown document with one section per scenario
func Markdown(r *experiment.RunReport) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# A/B test run %s\n\n", r.RunID)
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| std dev | %s |\n", experiment.FormatFloat(r.Params.StdDev))
	fmt.Fprintf(&b, "| alpha | %s |\n", experiment.FormatFloat(r.Params.Alpha))
	fmt.Fprintf(&b, "| power | %s |\n", experiment.FormatFloat(r.Params.Power))
	fmt.Fprintf(&b, "| mde | %s |\n", experiment.FormatFloat(r.Params.MDE))
	fmt.Fprintf(&b, "| minimum sample size | %d |\n", r.MinSampleSize)
	fmt.Fprintf(&b, "| generator | %s (seed %d) |\n", r.Generator, r.Seed)

	for i, sr := range r.Scenarios {
		fmt.Fprintf(&b, "\n## Test #%d: %s\n\n", i+1, scenarioTitle(sr.Scenario))
		fmt.Fprintf(&b, "**Decision:** %s\n\n", sr.Decision.Verdict())
		if !sr.MatchesExpectation {
			fmt.Fprintf(&b, "> Expected outcome `%s`, got `%s`.\n\n", sr.Scenario.Expect, sr.Decision.Outcome)
		}

		b.WriteString("| Group | rate | n | mean | std dev | min | median | max |\n|---|---|---|---|---|---|---|---|\n")
		writeSummaryRow(&b, "A", sr.Scenario.RateA, sr.SummaryA)
		writeSummaryRow(&b, "B", sr.Scenario.RateB, sr.SummaryB)
		writeShapeTable(&b, sr.SummaryA.Shape, sr.SummaryB.Shape)

		b.WriteString("\n| | library | by hand |\n|---|---|---|\n")
		fmt.Fprintf(&b, "| t-statistic | %.4f | %.4f |\n", sr.Library.Statistic, sr.Manual.Statistic)
		fmt.Fprintf(&b, "| degrees of freedom | %.2f | %.0f |\n", sr.Library.DF, sr.Manual.DF)
		fmt.Fprintf(&b, "| p-value | %s | %s |\n", experiment.FormatFloat(sr.Library.PValue), experiment.FormatFloat(sr.Manual.PValue))
		fmt.Fprintf(&b, "| critical t | | %.2f |\n", sr.Manual.CriticalT)
		fmt.Fprintf(&b, "| method | %s | student |\n", sr.Library.Method)
	}

	return b.Bytes()
}

// HTML renders the markdown report to an HTML fragment
func HTML(r *experiment.RunReport) []byte {
	return markdown.ToHTML(Markdown(r), nil, nil)
}

func writeSummaryRow(b *bytes.Buffer, group string, rate float64, s experiment.GroupSummary) {
	fmt.Fprintf(b, "| %s | %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
		group, experiment.FormatFloat(rate), s.N, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
}

// writeShapeTable is skipped when either group was too small for shape analysis
func writeShapeTable(b *bytes.Buffer, a, bShape *experiment.ShapeMarkers) {
	if a == nil || bShape == nil {
		return
	}
	b.WriteString("\n| Group | skewness | excess kurtosis | outliers | normality p |\n|---|---|---|---|---|\n")
	for _, row := range []struct {
		name  string
		shape *experiment.ShapeMarkers
	}{{"A", a}, {"B", bShape}} {
		fmt.Fprintf(b, "| %s | %.3f | %.3f | %d | %.4f |\n",
			row.name, row.shape.Skewness, row.shape.ExcessKurtosis, row.shape.Outliers, row.shape.NormalityP)
	}
}
