// internal/workers/tender/rescore-tenders/models.go
package rescoretenders

import (
	"context"

	"tender-workers/internal/models"
)

// Input selects the tenders to re-analyze. An empty TenderIDs re-analyzes every
// stored tender. PolicyID overrides the configured policy.
type Input struct {
	Reason    string   `json:"reason"`
	PolicyID  string   `json:"policyId,omitempty"`
	TenderIDs []string `json:"tenderIds,omitempty"`
}

type Failure struct {
	TenderID string `json:"tenderId"`
	Error    string `json:"error"`
}

type Output struct {
	BatchID      string         `json:"batchId"`
	Reason       string         `json:"reason"`
	Total        int            `json:"total"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	Failures     []Failure      `json:"failures"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// TenderStore is the subset of the tender store a re-scoring batch needs.
type TenderStore interface {
	InvalidateCache(ctx context.Context, policyID string) error
	LoadPolicy(ctx context.Context, policyID string) (models.CompanyPolicy, error)
	LoadNegativeKeywords(ctx context.Context) ([]models.NegativeKeyword, error)
	ListTenders(ctx context.Context, ids []string) ([]models.StoredTender, error)
	SaveResult(ctx context.Context, tenderID string, result models.MatchResult) error
}
