// internal/workers/tender/index-tender-analysis/models.go
package indextenderanalysis

import (
	"time"

	"tender-workers/internal/models"
)

type Input struct {
	TenderID    string             `json:"tenderId"`
	Title       string             `json:"title,omitempty"`
	MatchResult models.MatchResult `json:"matchResult"`
}

type Output struct {
	Indexed    bool   `json:"indexed"`
	DocumentID string `json:"documentId"`
	Index      string `json:"index"`
}

// AnalysisDocument is the search document written per tender.
type AnalysisDocument struct {
	TenderID              string                   `json:"tenderId"`
	Title                 string                   `json:"title,omitempty"`
	MatchPercentage       int                      `json:"matchPercentage"`
	EligibilityStatus     models.EligibilityStatus `json:"eligibilityStatus"`
	AnalysisStatus        models.AnalysisStatus    `json:"analysisStatus"`
	Tags                  []string                 `json:"tags"`
	NotRelevantKeyword    *string                  `json:"notRelevantKeyword,omitempty"`
	IsMsmeExempted        bool                     `json:"isMsmeExempted"`
	IsStartupExempted     bool                     `json:"isStartupExempted"`
	TurnoverRequiredLakhs *float64                 `json:"turnoverRequiredLakhs,omitempty"`
	TurnoverMet           bool                     `json:"turnoverMet"`
	RuleSetVersion        string                   `json:"ruleSetVersion,omitempty"`
	IndexedAt             time.Time                `json:"indexedAt"`
}

func newAnalysisDocument(input *Input, now time.Time) AnalysisDocument {
	r := input.MatchResult
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return AnalysisDocument{
		TenderID:              input.TenderID,
		Title:                 input.Title,
		MatchPercentage:       r.MatchPercentage,
		EligibilityStatus:     r.EligibilityStatus,
		AnalysisStatus:        r.AnalysisStatus,
		Tags:                  tags,
		NotRelevantKeyword:    r.NotRelevantKeyword,
		IsMsmeExempted:        r.IsMsmeExempted,
		IsStartupExempted:     r.IsStartupExempted,
		TurnoverRequiredLakhs: r.TurnoverRequiredLakhs,
		TurnoverMet:           r.TurnoverMet,
		RuleSetVersion:        r.RuleSetVersion,
		IndexedAt:             now.UTC(),
	}
}
