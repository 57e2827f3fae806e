// internal/eligibility/scorer_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tender-workers/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name            string
		input           ScoreInput
		wantPercentage  int
		wantMet         bool
		wantEligibility models.EligibilityStatus
		wantAnalysis    models.AnalysisStatus
	}{
		{
			name:            "exempted with tags overrides unmet requirement",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(500), TurnoverCeilingLakhs: 100, Exempted: true, Tags: []string{"Software"}},
			wantPercentage:  100,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "no requirement with tags",
			input:           ScoreInput{TurnoverCeilingLakhs: 100, Tags: []string{"Software"}, CoreServiceMatch: true},
			wantPercentage:  90,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "core service match with met requirement",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(50), TurnoverCeilingLakhs: 100, CoreServiceMatch: true, CoreDomainKeyword: true},
			wantPercentage:  100,
			wantMet:         true,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "met requirement with hard negative word",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(50), TurnoverCeilingLakhs: 100, Tags: []string{"Software"}, CoreServiceMatch: true, HardNegative: true},
			wantPercentage:  80,
			wantMet:         true,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "met requirement only",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(50), TurnoverCeilingLakhs: 100, HardNegative: true},
			wantPercentage:  50,
			wantMet:         true,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "requirement equal to ceiling is met",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(100), TurnoverCeilingLakhs: 100, Tags: []string{"ERP"}},
			wantPercentage:  100,
			wantMet:         true,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
		{
			name:            "unmet requirement is capped",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(500), TurnoverCeilingLakhs: 400, Tags: []string{"Software"}, CoreServiceMatch: true},
			wantPercentage:  40,
			wantEligibility: models.EligibilityNotEligible,
			wantAnalysis:    models.AnalysisStatusNotEligible,
		},
		{
			name:            "unmet requirement below the cap",
			input:           ScoreInput{TurnoverRequiredLakhs: ptr(500), TurnoverCeilingLakhs: 400, HardNegative: true},
			wantPercentage:  0,
			wantEligibility: models.EligibilityNotEligible,
			wantAnalysis:    models.AnalysisStatusNotEligible,
		},
		{
			name:            "domain keyword earns partial project type credit",
			input:           ScoreInput{TurnoverCeilingLakhs: 100, CoreDomainKeyword: true},
			wantPercentage:  75,
			wantEligibility: models.EligibilityEligible,
			wantAnalysis:    models.AnalysisStatusAnalyzed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Score(tt.input)
			assert.Equal(t, tt.wantPercentage, out.MatchPercentage)
			assert.Equal(t, tt.wantMet, out.TurnoverMet)
			assert.Equal(t, tt.wantEligibility, out.EligibilityStatus)
			assert.Equal(t, tt.wantAnalysis, out.AnalysisStatus)
		})
	}
}

func TestScore_Breakdown(t *testing.T) {
	out := Score(ScoreInput{TurnoverCeilingLakhs: 100, CoreDomainKeyword: true, HardNegative: true})

	assert.Equal(t, models.ScoreBreakdown{Turnover: 40, ProjectType: 15, Domain: 0}, out.Breakdown)
	assert.Equal(t, 55, out.MatchPercentage)
}

func TestScore_ExemptionNeverLowersScore(t *testing.T) {
	required := []*float64{nil, ptr(10), ptr(1000)}
	for _, req := range required {
		for _, tags := range [][]string{nil, {"Software"}} {
			for _, hn := range []bool{false, true} {
				for _, core := range []bool{false, true} {
					in := ScoreInput{
						TurnoverRequiredLakhs: req,
						TurnoverCeilingLakhs:  100,
						Tags:                  tags,
						CoreServiceMatch:      core,
						CoreDomainKeyword:     core,
						HardNegative:          hn,
					}
					without := Score(in)
					in.Exempted = true
					with := Score(in)
					assert.GreaterOrEqual(t, with.MatchPercentage, without.MatchPercentage)
				}
			}
		}
	}
}
