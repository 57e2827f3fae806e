// internal/eligibility/corrigendum.go
package eligibility

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"tender-workers/internal/models"
)

// CorrigendumFields are the amendable tender fields compared between publications,
// in the order changes are reported.
var CorrigendumFields = []string{
	"title",
	"department",
	"organization",
	"estimatedValue",
	"emd",
	"turnoverRequirement",
	"submissionDeadline",
	"openingDate",
	"eligibilityCriteria",
	"checklist",
}

// DiffFields compares two publications of the same tender field by field. Values
// are compared by their string form only; a missing or nil value reads as "".
func DiffFields(oldRecord, newRecord models.TenderRecord) []models.FieldChange {
	changes := []models.FieldChange{}
	for _, field := range CorrigendumFields {
		oldValue := stringify(oldRecord[field])
		newValue := stringify(newRecord[field])
		if oldValue != newValue {
			changes = append(changes, models.FieldChange{
				FieldName: field,
				OldValue:  oldValue,
				NewValue:  newValue,
			})
		}
	}
	return changes
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.UTC().Format(time.RFC3339Nano)
	case *string:
		if val == nil {
			return ""
		}
		return *val
	default:
		return fmt.Sprint(val)
	}
}
