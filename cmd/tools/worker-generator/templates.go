// cmd/tools/worker-generator/templates.go
package main

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

const configTemplate = `// internal/workers/tender/{{.Dir}}/config.go
package {{.PackageName}}

import (
	"fmt"
	"time"

	"tender-workers/internal/common/config"
	"tender-workers/internal/common/validation"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	MaxRetries    int
	InputSchema   *validation.Schema
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       {{.DefaultTimeout}},
		MaxRetries:    {{.MaxRetries}},
	}
}

func LoadConfig(appCfg *config.Config, schema *validation.Schema) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		MaxRetries:    wc.MaxRetries,
		InputSchema:   schema,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	return nil
}
`

const modelsTemplate = `// internal/workers/tender/{{.Dir}}/models.go
package {{.PackageName}}

// Input is decoded from the job variables.
type Input struct {
{{inputFields}}
}

// Output is merged into the process variables on completion.
type Output struct {
{{outputFields}}
}
`

const handlerTemplate = `// internal/workers/tender/{{.Dir}}/handler.go
package {{.PackageName}}

import (
	"context"
	"fmt"

	"tender-workers/internal/common/camunda"
	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/metrics"
	"tender-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

// TaskType: {{.Description}}
const TaskType = "{{.TaskType}}"

type Handler struct {
	config       *Config
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

// Execute runs the worker logic without a job client.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// TODO: implement {{.TaskType}}{{range .ErrorCodes}}; may fail with {{.}}{{end}}
	return nil, fmt.Errorf("%s: not implemented", TaskType)
}
`

const testTemplate = `// internal/workers/tender/{{.Dir}}/handler_test.go
package {{.PackageName}}

import (
	"testing"
	"time"

	"tender-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	h, err := NewHandler(DefaultConfig(), nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 0 * time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxJobsActive = 0
	assert.Error(t, cfg.Validate())
}
`
