// internal/eligibility/analyzer_test.go
package eligibility

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tender-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestPolicy() models.CompanyPolicy {
	return models.CompanyPolicy{
		TurnoverCeilingLakhs: 400,
		ProjectTypes:         []string{"Software", "Website", "Mobile App", "AMC"},
	}
}

func createTestTenders() []models.TenderText {
	return []models.TenderText{
		{Title: "Supply of Laptops for Office Use"},
		{Title: "Hiring of Agency for Development of Software Application, AMC required; turnover criteria: Rs. 2 Crore; MSME exempted"},
		{Title: "Development of mobile app for citizen services", EligibilityCriteria: "Minimum turnover of Rs. 5 Crore required"},
		{Title: "Construction of boundary wall", EligibilityCriteria: "Cement and steel to be provided by contractor"},
		{Title: "Website redesign", Checklist: "Startups exempted from turnover. Turnover of Rs. 10 Crore"},
		{Title: "  ", EligibilityCriteria: "\n\t"},
	}
}

// ==========================
// Scenario Tests
// ==========================

func TestAnalyze_ScenarioA_ProcurementOfExcludedGoods(t *testing.T) {
	result := Analyze(
		models.TenderText{Title: "Supply of Laptops for Office Use"},
		createTestPolicy(),
		keywords("laptop"),
		Options{},
	)

	assert.Equal(t, models.EligibilityNotRelevant, result.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusAnalyzed, result.AnalysisStatus)
	require.NotNil(t, result.NotRelevantKeyword)
	assert.Equal(t, "laptop", *result.NotRelevantKeyword)
	assert.Equal(t, 0, result.MatchPercentage)
	assert.Equal(t, []string{}, result.Tags)
	assert.Equal(t, []string{"laptop"}, result.MatchedNegativeKeywords)
}

func TestAnalyze_ScenarioB_ExemptedSoftwareService(t *testing.T) {
	result := Analyze(
		models.TenderText{Title: "Hiring of Agency for Development of Software Application, AMC required; turnover criteria: Rs. 2 Crore; MSME exempted"},
		models.CompanyPolicy{TurnoverCeilingLakhs: 400, ProjectTypes: []string{"Software"}},
		nil,
		Options{},
	)

	assert.Equal(t, models.EligibilityEligible, result.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusAnalyzed, result.AnalysisStatus)
	assert.Equal(t, 100, result.MatchPercentage)
	assert.True(t, result.IsMsmeExempted)
	assert.False(t, result.IsStartupExempted)
	require.NotNil(t, result.TurnoverRequiredLakhs)
	assert.Equal(t, 200.0, *result.TurnoverRequiredLakhs)
	assert.True(t, result.TurnoverMet)
	assert.Equal(t, []string{"Software"}, result.Tags)
	assert.True(t, result.CoreServiceMatch)
	assert.Nil(t, result.NotRelevantKeyword)
}

func TestAnalyze_ScenarioC_TurnoverShortfall(t *testing.T) {
	result := Analyze(
		models.TenderText{
			Title:               "Development of mobile app for citizen services",
			EligibilityCriteria: "Minimum turnover of Rs. 5 Crore required",
		},
		createTestPolicy(),
		nil,
		Options{},
	)

	require.NotNil(t, result.TurnoverRequiredLakhs)
	assert.Equal(t, 500.0, *result.TurnoverRequiredLakhs)
	assert.False(t, result.TurnoverMet)
	assert.Equal(t, models.EligibilityNotEligible, result.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusNotEligible, result.AnalysisStatus)
	assert.LessOrEqual(t, result.MatchPercentage, 40)
}

// ==========================
// Invariant Tests
// ==========================

func TestAnalyze_BlankCorpus(t *testing.T) {
	result := Analyze(
		models.TenderText{Title: "  ", EligibilityCriteria: "\n\t", SimilarCategory: "IT Services"},
		createTestPolicy(),
		keywords("laptop"),
		Options{ExcelMsmeExemption: true},
	)

	assert.Equal(t, models.EligibilityManualReview, result.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusUnableToAnalyze, result.AnalysisStatus)
	assert.Equal(t, 0, result.MatchPercentage)
	assert.Nil(t, result.NotRelevantKeyword)
	assert.Nil(t, result.TurnoverRequiredLakhs)
	assert.Equal(t, []string{}, result.Tags)
	assert.Equal(t, RuleSetVersion, result.RuleSetVersion)
}

func TestAnalyze_Deterministic(t *testing.T) {
	policy := createTestPolicy()
	negative := keywords("laptop", "cement")

	for _, tender := range createTestTenders() {
		expected := Analyze(tender, policy, negative, Options{})

		var wg sync.WaitGroup
		results := make([]models.MatchResult, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = Analyze(tender, policy, negative, Options{})
			}(i)
		}
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, expected, r, tender.Title)
		}
	}
}

func TestAnalyze_ExemptionMonotonicity(t *testing.T) {
	policy := createTestPolicy()
	negative := keywords("laptop", "cement")

	for _, tender := range createTestTenders() {
		without := Analyze(tender, policy, negative, Options{})
		with := Analyze(tender, policy, negative, Options{ExcelMsmeExemption: true})
		assert.GreaterOrEqual(t, with.MatchPercentage, without.MatchPercentage, tender.Title)
	}
}

func TestAnalyze_StatusInvariants(t *testing.T) {
	policy := createTestPolicy()
	negative := keywords("laptop", "cement")

	for _, tender := range createTestTenders() {
		r := Analyze(tender, policy, negative, Options{})

		switch r.EligibilityStatus {
		case models.EligibilityNotRelevant:
			assert.NotNil(t, r.NotRelevantKeyword, tender.Title)
			assert.Equal(t, 0, r.MatchPercentage, tender.Title)
		case models.EligibilityNotEligible:
			require.NotNil(t, r.TurnoverRequiredLakhs, tender.Title)
			assert.False(t, r.TurnoverMet, tender.Title)
			assert.False(t, r.IsMsmeExempted || r.IsStartupExempted, tender.Title)
			assert.LessOrEqual(t, r.MatchPercentage, 40, tender.Title)
		}
		if r.MatchPercentage == 100 {
			assert.True(t, r.TurnoverMet || r.IsMsmeExempted || r.IsStartupExempted, tender.Title)
			assert.True(t, r.CoreServiceMatch || len(r.Tags) > 0, tender.Title)
		}
		assert.GreaterOrEqual(t, r.MatchPercentage, 0)
		assert.LessOrEqual(t, r.MatchPercentage, 100)
	}
}

func TestAnalyze_StartupExemptionLiftsCap(t *testing.T) {
	result := Analyze(
		models.TenderText{Title: "Website redesign", Checklist: "Startups exempted from turnover. Turnover of Rs. 10 Crore"},
		createTestPolicy(),
		nil,
		Options{},
	)

	assert.True(t, result.IsStartupExempted)
	require.NotNil(t, result.TurnoverRequiredLakhs)
	assert.Equal(t, 1000.0, *result.TurnoverRequiredLakhs)
	assert.False(t, result.TurnoverMet)
	assert.Equal(t, models.EligibilityEligible, result.EligibilityStatus)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestAnalyze_FeeWaiverKeepsTurnoverCap(t *testing.T) {
	criteria := []string{
		"Minimum average annual turnover of Rs. 50 Crore. EMD exempted for MSE bidders as per GFR.",
		"Minimum average annual turnover of Rs. 50 Crore. Bidders seeking exemption from EMD must submit Udyam certificate.",
		"Minimum average annual turnover of Rs. 50 Crore. Exemption from tender fee for startups.",
	}

	for _, ec := range criteria {
		t.Run(ec, func(t *testing.T) {
			result := Analyze(
				models.TenderText{Title: "Development of Software Application", EligibilityCriteria: ec},
				models.CompanyPolicy{TurnoverCeilingLakhs: 400, ProjectTypes: []string{"Software"}},
				nil,
				Options{},
			)

			assert.False(t, result.IsMsmeExempted)
			assert.False(t, result.IsStartupExempted)
			require.NotNil(t, result.TurnoverRequiredLakhs)
			assert.Equal(t, 5000.0, *result.TurnoverRequiredLakhs)
			assert.False(t, result.TurnoverMet)
			assert.Equal(t, models.EligibilityNotEligible, result.EligibilityStatus)
			assert.LessOrEqual(t, result.MatchPercentage, 40)
		})
	}
}

func TestAnalyze_PunctuationOnlyCorpusIsBlank(t *testing.T) {
	result := Analyze(
		models.TenderText{Title: "---", EligibilityCriteria: "* * *"},
		createTestPolicy(),
		nil,
		Options{},
	)

	assert.Equal(t, models.EligibilityManualReview, result.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusUnableToAnalyze, result.AnalysisStatus)
	assert.Equal(t, 0, result.MatchPercentage)
}

// ==========================
// Similar Category Tests
// ==========================

func TestAnalyze_SimilarCategory(t *testing.T) {
	tender := models.TenderText{
		Title:               "Construction of boundary wall",
		EligibilityCriteria: "Cement and steel to be provided by contractor",
		SimilarCategory:     "Civil Works",
	}
	policy := createTestPolicy()
	negative := keywords("cement")

	t.Run("tender category alone excludes", func(t *testing.T) {
		r := Analyze(tender, policy, negative, Options{})
		assert.Equal(t, models.EligibilityNotRelevant, r.EligibilityStatus)
		require.NotNil(t, r.NotRelevantKeyword)
		assert.Equal(t, "cement", *r.NotRelevantKeyword)
	})

	t.Run("option overrides tender category", func(t *testing.T) {
		r := Analyze(tender, policy, negative, Options{SimilarCategory: "IT Services"})
		assert.Equal(t, models.EligibilityEligible, r.EligibilityStatus)
		assert.Nil(t, r.NotRelevantKeyword)
		assert.True(t, r.CoreServiceMatch)
		assert.Equal(t, 40, r.MatchPercentage)
	})

	t.Run("tender category used when option blank", func(t *testing.T) {
		withCategory := tender
		withCategory.SimilarCategory = "IT Services"
		r := Analyze(withCategory, policy, negative, Options{SimilarCategory: "   "})
		assert.Equal(t, models.EligibilityEligible, r.EligibilityStatus)
	})
}

func BenchmarkAnalyze(b *testing.B) {
	policy := createTestPolicy()
	negative := keywords("laptop", "cement", "printer", "furniture")
	tenders := createTestTenders()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Analyze(tenders[i%len(tenders)], policy, negative, Options{})
	}
}
