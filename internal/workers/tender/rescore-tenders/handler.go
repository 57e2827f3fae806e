// internal/workers/tender/rescore-tenders/handler.go
package rescoretenders

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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const TaskType = "rescore-tenders"

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

// outcome is the result of re-analyzing one tender.
type outcome struct {
	status models.EligibilityStatus
	err    error
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	batchID := uuid.NewString()
	policyID := input.PolicyID
	if policyID == "" {
		policyID = h.config.PolicyID
	}
	log := h.logger.WithFields(map[string]interface{}{"batchId": batchID, "reason": input.Reason})

	if err := h.store.InvalidateCache(ctx, policyID); err != nil {
		log.Warn("cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}

	policy, err := h.store.LoadPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	keywords, err := h.store.LoadNegativeKeywords(ctx)
	if err != nil {
		return nil, err
	}
	tenders, err := h.store.ListTenders(ctx, input.TenderIDs)
	if err != nil {
		return nil, err
	}

	log.Info("re-scoring batch started", map[string]interface{}{"tenders": len(tenders)})

	outcomes := make([]outcome, len(tenders))
	g := new(errgroup.Group)
	g.SetLimit(h.config.Concurrency)
	for i, tender := range tenders {
		i, tender := i, tender
		g.Go(func() error {
			outcomes[i] = h.rescore(ctx, policy, keywords, tender)
			return nil
		})
	}
	_ = g.Wait()

	output := &Output{
		BatchID:      batchID,
		Reason:       input.Reason,
		Failures:     []Failure{},
		StatusCounts: map[string]int{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			output.Failures = append(output.Failures, Failure{TenderID: tenders[i].ID, Error: o.err.Error()})
			continue
		}
		output.Succeeded++
		output.StatusCounts[string(o.status)]++
	}

	found := make(map[string]bool, len(tenders))
	for _, t := range tenders {
		found[t.ID] = true
	}
	for _, id := range input.TenderIDs {
		if !found[id] {
			output.Failures = append(output.Failures, Failure{TenderID: id, Error: errors.NewTenderNotFoundError(id).Error()})
			found[id] = true
		}
	}

	output.Failed = len(output.Failures)
	output.Total = output.Succeeded + output.Failed
	metrics.RescoreTenders.WithLabelValues("succeeded").Add(float64(output.Succeeded))
	metrics.RescoreTenders.WithLabelValues("failed").Add(float64(output.Failed))

	log.Info("re-scoring batch finished", map[string]interface{}{
		"total":     output.Total,
		"succeeded": output.Succeeded,
		"failed":    output.Failed,
	})
	return output, nil
}

func (h *Handler) rescore(ctx context.Context, policy models.CompanyPolicy, keywords []models.NegativeKeyword, tender models.StoredTender) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{err: errors.NewRescoreFailedError(err)}
	}

	result := eligibility.Analyze(tender.Text, policy, keywords, eligibility.Options{
		ExcelMsmeExemption:    tender.ExcelMsmeExemption,
		ExcelStartupExemption: tender.ExcelStartupExemption,
	})
	metrics.RecordAnalysis(string(result.EligibilityStatus), result.MatchPercentage, result.NotRelevantKeyword)

	if err := h.store.SaveResult(ctx, tender.ID, result); err != nil {
		h.logger.Warn("failed to persist re-scored tender", map[string]interface{}{
			"tenderId": tender.ID,
			"error":    err.Error(),
		})
		return outcome{err: err}
	}
	return outcome{status: result.EligibilityStatus}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
