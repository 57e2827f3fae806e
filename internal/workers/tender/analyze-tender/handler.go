// internal/workers/tender/analyze-tender/handler.go
package analyzetender

import (
	"context"
	"fmt"

	"tender-workers/internal/common/camunda"
	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/metrics"
	"tender-workers/internal/common/observability"
	"tender-workers/internal/eligibility"
	"tender-workers/internal/models"
	"tender-workers/internal/tenderstore"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "analyze-tender"

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
	if store == nil {
		return nil, fmt.Errorf("%s requires a tender store", TaskType)
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

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

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

	h.logger.Info("tender analyzed", map[string]interface{}{
		"jobKey":            job.GetKey(),
		"tenderId":          input.TenderID,
		"eligibilityStatus": output.MatchResult.EligibilityStatus,
		"matchPercentage":   output.MatchResult.MatchPercentage,
	})
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
	tender, msme, startup, err := h.resolveTender(ctx, input)
	if err != nil {
		return nil, err
	}

	policy, err := h.resolvePolicy(ctx, input)
	if err != nil {
		return nil, err
	}

	keywords := input.NegativeKeywords
	if keywords == nil {
		keywords, err = h.store.LoadNegativeKeywords(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := eligibility.Analyze(tender, policy, keywords, eligibility.Options{
		ExcelMsmeExemption:    msme,
		ExcelStartupExemption: startup,
		SimilarCategory:       input.SimilarCategory,
	})
	metrics.RecordAnalysis(string(result.EligibilityStatus), result.MatchPercentage, result.NotRelevantKeyword)

	output := &Output{MatchResult: result, RuleSetVersion: result.RuleSetVersion}
	if input.TenderID != "" && h.config.PersistResults {
		if err := h.store.SaveResult(ctx, input.TenderID, result); err != nil {
			return nil, err
		}
		output.Persisted = true
	}
	return output, nil
}

func (h *Handler) resolveTender(ctx context.Context, input *Input) (models.TenderText, bool, bool, error) {
	var (
		tender        models.TenderText
		msme, startup bool
	)
	switch {
	case input.Tender != nil:
		tender = *input.Tender
	case input.TenderID != "":
		stored, err := h.store.GetTender(ctx, input.TenderID)
		if err != nil {
			return models.TenderText{}, false, false, err
		}
		tender = stored.Text
		msme, startup = stored.ExcelMsmeExemption, stored.ExcelStartupExemption
	default:
		return models.TenderText{}, false, false, errors.NewTenderInputInvalidError("either tender or tenderId is required")
	}

	if input.ExcelMsmeExemption != nil {
		msme = *input.ExcelMsmeExemption
	}
	if input.ExcelStartupExemption != nil {
		startup = *input.ExcelStartupExemption
	}
	return tender, msme, startup, nil
}

func (h *Handler) resolvePolicy(ctx context.Context, input *Input) (models.CompanyPolicy, error) {
	if input.Policy != nil {
		return tenderstore.ValidatePolicy(*input.Policy)
	}
	return h.store.LoadPolicy(ctx, h.config.PolicyID)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
