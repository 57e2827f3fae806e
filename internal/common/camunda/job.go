// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"

	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables validates the job variables against schema, when one is
// given, and decodes them into dest. Failures are TENDER_INPUT_INVALID.
func DecodeVariables(job entities.Job, schema *validation.Schema, dest interface{}) error {
	raw := job.GetVariables()
	if raw == "" {
		raw = "{}"
	}

	if schema != nil {
		result, err := schema.ValidateJSON(raw)
		if err != nil {
			return errors.NewTenderInputInvalidError(err.Error())
		}
		if !result.Valid {
			return errors.NewTenderInputInvalidError(result.Error()).
				WithMetadata("validationErrors", result.Errors)
		}
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return errors.NewTenderInputInvalidError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

// CompleteJob completes the job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
