// internal/workers/tender/detect-corrigendum/models.go
package detectcorrigendum

import (
	"context"

	"tender-workers/internal/models"
	"tender-workers/internal/tenderstore"
)

// Input is a newly published tender. TenderID, when set, is the row of the new
// publication and is never treated as its own predecessor.
type Input struct {
	ExternalID     string              `json:"externalId"`
	TenderID       string              `json:"tenderId,omitempty"`
	Record         models.TenderRecord `json:"record"`
	PreviousRecord models.TenderRecord `json:"previousRecord,omitempty"`
}

type Output struct {
	IsCorrigendum    bool                 `json:"isCorrigendum"`
	Changes          []models.FieldChange `json:"changes"`
	PreviousTenderID *string              `json:"previousTenderId"`
}

type TenderStore interface {
	FindPreviousRecord(ctx context.Context, externalID, excludeID string) (*tenderstore.PreviousTender, error)
}
