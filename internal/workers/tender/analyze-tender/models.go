// internal/workers/tender/analyze-tender/models.go
package analyzetender

import (
	"context"

	"tender-workers/internal/models"
)

// Input carries either an inline tender or the id of a stored one. Policy and
// negative keywords are loaded from the store when absent; an explicit empty
// keyword list disables exclusion. Exemption flags override the stored ones.
type Input struct {
	TenderID              string                   `json:"tenderId,omitempty"`
	Tender                *models.TenderText       `json:"tender,omitempty"`
	Policy                *models.CompanyPolicy    `json:"policy,omitempty"`
	NegativeKeywords      []models.NegativeKeyword `json:"negativeKeywords,omitempty"`
	ExcelMsmeExemption    *bool                    `json:"excelMsmeExemption,omitempty"`
	ExcelStartupExemption *bool                    `json:"excelStartupExemption,omitempty"`
	SimilarCategory       string                   `json:"similarCategory,omitempty"`
}

type Output struct {
	MatchResult    models.MatchResult `json:"matchResult"`
	RuleSetVersion string             `json:"ruleSetVersion"`
	Persisted      bool               `json:"persisted"`
}

// TenderStore is the subset of the tender store the worker reads and writes.
type TenderStore interface {
	LoadPolicy(ctx context.Context, policyID string) (models.CompanyPolicy, error)
	LoadNegativeKeywords(ctx context.Context) ([]models.NegativeKeyword, error)
	GetTender(ctx context.Context, tenderID string) (models.StoredTender, error)
	SaveResult(ctx context.Context, tenderID string, result models.MatchResult) error
}
