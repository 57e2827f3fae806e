// internal/eligibility/analyzer.go
package eligibility

import (
	"strings"

	"tender-workers/internal/models"
)

// Options carries the per-call inputs that do not come from the tender text.
type Options struct {
	// ExcelMsmeExemption and ExcelStartupExemption come from structured spreadsheet
	// columns and are OR'ed with what the text says.
	ExcelMsmeExemption    bool
	ExcelStartupExemption bool
	// SimilarCategory overrides TenderText.SimilarCategory when non-empty.
	SimilarCategory string
}

// Analyze classifies one tender against the company policy. It is pure: the same
// inputs always produce the same MatchResult, and it is safe for concurrent use.
func Analyze(tender models.TenderText, policy models.CompanyPolicy, negativeKeywords []models.NegativeKeyword, opts Options) models.MatchResult {
	full := corpusOf(tender)
	if full.blank() {
		return models.MatchResult{
			Tags:              []string{},
			AnalysisStatus:    models.AnalysisStatusUnableToAnalyze,
			EligibilityStatus: models.EligibilityManualReview,
			RuleSetVersion:    RuleSetVersion,
		}
	}

	similarCategory := tender.SimilarCategory
	if strings.TrimSpace(opts.SimilarCategory) != "" {
		similarCategory = opts.SimilarCategory
	}

	required := extractTurnover(full.text)
	textMsme, textStartup := detectTextExemptions(full.text)
	msme := opts.ExcelMsmeExemption || textMsme
	startup := opts.ExcelStartupExemption || textStartup

	tags := detectTags(full, policy.ProjectTypes)
	res := resolve(newCorpus(tender.Title), full, tags, negativeKeywords, similarCategory)

	result := models.MatchResult{
		IsMsmeExempted:          msme,
		IsStartupExempted:       startup,
		TurnoverRequiredLakhs:   required,
		TurnoverMet:             required != nil && policy.TurnoverCeilingLakhs >= *required,
		MatchedNegativeKeywords: res.Matched,
		RuleSetVersion:          RuleSetVersion,
	}

	coreDomainKeyword := coreDomainMatcher.any(full.words)
	result.CoreServiceMatch = res.ITService || coreDomainKeyword || isCoreCategory(similarCategory)

	if res.Excluded {
		kw := res.Keyword
		result.Tags = []string{}
		result.NotRelevantKeyword = &kw
		result.AnalysisStatus = models.AnalysisStatusAnalyzed
		result.EligibilityStatus = models.EligibilityNotRelevant
		return result
	}

	outcome := Score(ScoreInput{
		TurnoverRequiredLakhs: required,
		TurnoverCeilingLakhs:  policy.TurnoverCeilingLakhs,
		Exempted:              msme || startup,
		Tags:                  tags,
		CoreServiceMatch:      result.CoreServiceMatch,
		CoreDomainKeyword:     coreDomainKeyword,
		HardNegative:          hardNegativeMatcher.any(full.words),
	})
	result.Tags = tags
	result.MatchPercentage = outcome.MatchPercentage
	result.TurnoverMet = outcome.TurnoverMet
	result.Breakdown = outcome.Breakdown
	result.AnalysisStatus = outcome.AnalysisStatus
	result.EligibilityStatus = outcome.EligibilityStatus
	return result
}
