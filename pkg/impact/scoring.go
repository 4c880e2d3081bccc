package impact

import "fmt"

// Canned recommendation tiers selected by score threshold. Purely
// threshold-driven text selection.
var (
	criticalRecommendations = []string{
		"Obtain legal review before committing this change",
		"Notify all stakeholders of affected covenants and pricing terms",
		"Prepare an amendment schedule covering every impacted clause",
	}
	highRecommendations = []string{
		"Re-verify covenant compliance calculations against the new value",
		"Recheck pricing grid thresholds that reference this term",
	}
	moderateRecommendations = []string{
		"Review downstream clauses for consistency with the change",
	}
	minimalRecommendations = []string{
		"No material downstream impact expected; document the change",
	}
)

// score aggregates the severity-weighted impact score, summary, and
// recommendations onto the analysis.
func (a *Analyzer) score(analysis *Analysis) {
	directScore := 0.0
	for _, d := range analysis.DirectImpacts {
		directScore += d.Severity.Points()
	}

	// Deeper impacts are discounted linearly by hop count, reflecting
	// indirection and uncertainty.
	cascadingScore := 0.0
	for _, c := range analysis.CascadingImpacts {
		cascadingScore += c.Severity.Points() / float64(c.Depth)
	}

	total := (directScore + cascadingScore) / a.opts.ScoreDivisor
	if total > 100 {
		total = 100
	}
	analysis.TotalImpactScore = total

	switch {
	case total > 75:
		analysis.Recommendations = criticalRecommendations
	case total > 50:
		analysis.Recommendations = highRecommendations
	case total > 25:
		analysis.Recommendations = moderateRecommendations
	default:
		analysis.Recommendations = minimalRecommendations
	}

	analysis.Summary = summarize(len(analysis.DirectImpacts), len(analysis.CascadingImpacts), total)
}

func summarize(direct, cascading int, score float64) string {
	tier := "low"
	switch {
	case score > 75:
		tier = "critical"
	case score > 50:
		tier = "high"
	case score > 25:
		tier = "moderate"
	}

	if direct == 0 && cascading == 0 {
		return "Changing this term affects no downstream provisions."
	}
	return fmt.Sprintf(
		"Changing this term directly affects %d provision(s) and cascades to %d more. Overall impact risk is %s.",
		direct, cascading, tier,
	)
}
