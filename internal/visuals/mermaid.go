package visuals

import (
	"fmt"
	"math"
	"strings"

	"riskcast/internal/simulation"
)

// GenerateDistributionChart creates a Mermaid bar chart of a simulated cost or time distribution.
func GenerateDistributionChart(title, axis string, bins []simulation.HistogramBin) string {
	if len(bins) == 0 {
		return ""
	}

	var labels []string
	var values []string

	maxVal := 0
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("\"%s-%s\"", b.Low, b.High))
		values = append(values, fmt.Sprintf("%d", b.Count))
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis \"%s\" [%s]\n", axis, strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Simulated Outcomes\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateSweepChart creates a Mermaid line chart of success probability per risk level.
func GenerateSweepChart(points []simulation.SweepPoint) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var values []string

	for _, p := range points {
		labels = append(labels, fmt.Sprintf("\"%g\"", p.RiskFactor))
		values = append(values, fmt.Sprintf("%.1f", p.ProbabilityOfSuccess*100))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Probability of Success by Risk Level\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Risk Factor\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Success (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}
