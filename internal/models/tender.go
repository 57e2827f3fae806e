// internal/models/tender.go
package models

// TenderText is the free-text part of a tender notice that drives classification.
type TenderText struct {
	Title               string `json:"title"`
	EligibilityCriteria string `json:"eligibilityCriteria,omitempty"`
	Checklist           string `json:"checklist,omitempty"`
	SimilarCategory     string `json:"similarCategory,omitempty"`
}

// CompanyPolicy is the bidding company's own profile.
type CompanyPolicy struct {
	TurnoverCeilingLakhs float64  `json:"turnoverCeilingLakhs"`
	ProjectTypes         []string `json:"projectTypes"`
}

// NegativeKeyword excludes tenders whose primary focus is outside the company's domain.
type NegativeKeyword struct {
	Keyword     string `json:"keyword"`
	Description string `json:"description,omitempty"`
}

type AnalysisStatus string

const (
	AnalysisStatusAnalyzed        AnalysisStatus = "analyzed"
	AnalysisStatusUnableToAnalyze AnalysisStatus = "unable_to_analyze"
	AnalysisStatusNotEligible     AnalysisStatus = "not_eligible"
)

type EligibilityStatus string

const (
	EligibilityEligible     EligibilityStatus = "eligible"
	EligibilityNotEligible  EligibilityStatus = "not_eligible"
	EligibilityNotRelevant  EligibilityStatus = "not_relevant"
	EligibilityManualReview EligibilityStatus = "manual_review"
)

// ScoreBreakdown records the weighted criteria before overrides were applied.
type ScoreBreakdown struct {
	Turnover    int `json:"turnover"`
	ProjectType int `json:"projectType"`
	Domain      int `json:"domain"`
}

// MatchResult is the outcome of a single analysis. It is never mutated after
// construction; re-analysis produces a new value.
type MatchResult struct {
	MatchPercentage       int               `json:"matchPercentage"`
	IsMsmeExempted        bool              `json:"isMsmeExempted"`
	IsStartupExempted     bool              `json:"isStartupExempted"`
	Tags                  []string          `json:"tags"`
	AnalysisStatus        AnalysisStatus    `json:"analysisStatus"`
	EligibilityStatus     EligibilityStatus `json:"eligibilityStatus"`
	NotRelevantKeyword    *string           `json:"notRelevantKeyword"`
	TurnoverRequiredLakhs *float64          `json:"turnoverRequiredLakhs"`
	TurnoverMet           bool              `json:"turnoverMet"`

	CoreServiceMatch        bool           `json:"coreServiceMatch"`
	MatchedNegativeKeywords []string       `json:"matchedNegativeKeywords,omitempty"`
	Breakdown               ScoreBreakdown `json:"breakdown"`
	RuleSetVersion          string         `json:"ruleSetVersion"`
}

// StoredTender is a tender row as the store hands it to the analysis workers.
type StoredTender struct {
	ID                    string     `json:"id"`
	ExternalID            string     `json:"externalId"`
	Text                  TenderText `json:"text"`
	ExcelMsmeExemption    bool       `json:"excelMsmeExemption"`
	ExcelStartupExemption bool       `json:"excelStartupExemption"`
}

// TenderRecord holds the amendable fields of a tender, keyed the way they are
// compared when a corrigendum is detected. Values keep whatever type the source
// produced (string, number, time, nil).
type TenderRecord map[string]interface{}

// FieldChange is a single amended field between two publications of a tender.
type FieldChange struct {
	FieldName string `json:"fieldName"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
}
