// internal/workers/tender/detect-corrigendum/handler.go
package detectcorrigendum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tender-workers/internal/common/camunda"
	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/metrics"
	"tender-workers/internal/common/observability"
	"tender-workers/internal/eligibility"
	"tender-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "detect-corrigendum"

// dateFields hold timestamps that may arrive with any UTC offset.
var dateFields = []string{"submissionDeadline", "openingDate"}

type Handler struct {
	config       *Config
	store        TenderStore
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store TenderStore, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(scoped),
		logger:       scoped,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	done := metrics.JobStarted(TaskType)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job_key", job.GetKey()))
	defer span.End()

	var input Input
	if err := camunda.DecodeVariables(job, h.config.InputSchema, &input); err != nil {
		h.fail(ctx, client, job, err, done)
		return nil
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err, done)
		return nil
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.GetKey(), "error": err.Error()})
		done(string(errors.ErrCodeInternal))
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		return err
	}
	done("")
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	return nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, done func(string)) {
	done(string(errors.Normalize(err).Code))
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.ExternalID) == "" {
		return nil, errors.NewTenderInputInvalidError("externalId is required")
	}
	if input.Record == nil {
		return nil, errors.NewTenderInputInvalidError("record is required")
	}

	output := &Output{Changes: []models.FieldChange{}}

	previous := input.PreviousRecord
	if previous == nil {
		if h.store == nil {
			return output, nil
		}
		found, err := h.store.FindPreviousRecord(ctx, input.ExternalID, input.TenderID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			h.logger.Debug("first publication", map[string]interface{}{"externalId": input.ExternalID})
			return output, nil
		}
		previous = found.Record
		id := found.ID
		output.PreviousTenderID = &id
	}

	output.Changes = eligibility.DiffFields(normalizeDates(previous), normalizeDates(input.Record))
	output.IsCorrigendum = len(output.Changes) > 0
	if output.IsCorrigendum {
		metrics.CorrigendaDetected.Inc()
		h.logger.Info("corrigendum detected", map[string]interface{}{
			"externalId": input.ExternalID,
			"changes":    len(output.Changes),
		})
	}
	return output, nil
}

// normalizeDates parses RFC 3339 date strings so that the same instant compares
// equal whatever offset it was written with.
func normalizeDates(record models.TenderRecord) models.TenderRecord {
	out := make(models.TenderRecord, len(record))
	for k, v := range record {
		out[k] = v
	}
	for _, field := range dateFields {
		s, ok := out[field].(string)
		if !ok {
			continue
		}
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
			out[field] = t
		}
	}
	return out
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
