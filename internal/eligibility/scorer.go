// internal/eligibility/scorer.go
package eligibility

import (
	"math"

	"tender-workers/internal/models"
)

// Criterion weights and partial credits.
const (
	turnoverWeight        = 50
	turnoverNotFoundScore = 40
	projectTypeWeight     = 30
	projectTypeDomainOnly = 15
	domainWeight          = 20
	unmetTurnoverCap      = 40
)

// ScoreInput carries the signals the scorer combines.
type ScoreInput struct {
	TurnoverRequiredLakhs *float64
	TurnoverCeilingLakhs  float64
	Exempted              bool
	Tags                  []string
	CoreServiceMatch      bool
	CoreDomainKeyword     bool
	HardNegative          bool
}

// ScoreOutcome is the scorer's verdict.
type ScoreOutcome struct {
	MatchPercentage   int
	TurnoverMet       bool
	Breakdown         models.ScoreBreakdown
	AnalysisStatus    models.AnalysisStatus
	EligibilityStatus models.EligibilityStatus
}

// Score combines the turnover, project-type and domain criteria into a 0-100
// percentage and applies the forced-100 overrides and the unmet-turnover cap.
func Score(in ScoreInput) ScoreOutcome {
	met := in.TurnoverRequiredLakhs != nil && in.TurnoverCeilingLakhs >= *in.TurnoverRequiredLakhs
	unmet := in.TurnoverRequiredLakhs != nil && !met

	var b models.ScoreBreakdown
	switch {
	case in.Exempted:
		b.Turnover = turnoverWeight
	case in.TurnoverRequiredLakhs == nil:
		b.Turnover = turnoverNotFoundScore
	case met:
		b.Turnover = turnoverWeight
	}

	hasTags := len(in.Tags) > 0
	switch {
	case hasTags:
		b.ProjectType = projectTypeWeight
	case in.CoreDomainKeyword:
		b.ProjectType = projectTypeDomainOnly
	}

	if !in.HardNegative {
		b.Domain = domainWeight
	}

	total := float64(b.Turnover + b.ProjectType + b.Domain)
	pct := int(math.Round(100 * total / 100))

	switch {
	case in.CoreServiceMatch && met && !in.HardNegative:
		pct = 100
	case hasTags && met && !in.HardNegative:
		pct = 100
	case in.Exempted && hasTags && !in.HardNegative:
		pct = 100
	}
	pct = clamp(pct, 0, 100)

	out := ScoreOutcome{
		MatchPercentage:   pct,
		TurnoverMet:       met,
		Breakdown:         b,
		AnalysisStatus:    models.AnalysisStatusAnalyzed,
		EligibilityStatus: models.EligibilityEligible,
	}
	if unmet && !in.Exempted {
		if out.MatchPercentage > unmetTurnoverCap {
			out.MatchPercentage = unmetTurnoverCap
		}
		out.AnalysisStatus = models.AnalysisStatusNotEligible
		out.EligibilityStatus = models.EligibilityNotEligible
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
