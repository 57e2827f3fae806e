// internal/workers/tender/index-tender-analysis/handler.go
package indextenderanalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"tender-workers/internal/common/camunda"
	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/metrics"
	"tender-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "index-tender-analysis"

type Handler struct {
	config       *Config
	es           *elasticsearch.Client
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, es *elasticsearch.Client, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if es == nil {
		return nil, fmt.Errorf("%s requires an elasticsearch client", TaskType)
	}
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		es:           es,
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
	if strings.TrimSpace(input.TenderID) == "" {
		return nil, errors.NewTenderInputInvalidError("tenderId is required")
	}

	body, err := json.Marshal(newAnalysisDocument(input, time.Now()))
	if err != nil {
		return nil, errors.NewAnalysisIndexFailedError(h.config.IndexName, err)
	}

	res, err := h.es.Index(
		h.config.IndexName,
		bytes.NewReader(body),
		h.es.Index.WithDocumentID(input.TenderID),
		h.es.Index.WithRefresh("false"),
		h.es.Index.WithContext(ctx),
	)
	if err != nil {
		return nil, errors.NewAnalysisIndexFailedError(h.config.IndexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		err := fmt.Errorf("%s: %s", res.Status(), strings.TrimSpace(string(detail)))
		stdErr := errors.NewAnalysisIndexFailedError(h.config.IndexName, err)
		if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != 429 {
			stdErr.Retryable = false
		}
		return nil, stdErr
	}

	h.logger.Info("tender analysis indexed", map[string]interface{}{
		"tenderId": input.TenderID,
		"index":    h.config.IndexName,
	})
	return &Output{Indexed: true, DocumentID: input.TenderID, Index: h.config.IndexName}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
