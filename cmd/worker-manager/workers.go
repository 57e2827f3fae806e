// cmd/worker-manager/workers.go
package main

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"tender-workers/internal/common/camunda"
	"tender-workers/internal/common/config"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/observability"
	"tender-workers/internal/common/validation"
	"tender-workers/internal/tenderstore"

	analyzetender "tender-workers/internal/workers/tender/analyze-tender"
	detectcorrigendum "tender-workers/internal/workers/tender/detect-corrigendum"
	indextenderanalysis "tender-workers/internal/workers/tender/index-tender-analysis"
	rescoretenders "tender-workers/internal/workers/tender/rescore-tenders"
)

type dependencies struct {
	store *tenderstore.Store
	es    *elasticsearch.Client
	obs   *observability.Observability
}

// registerWorkers opens a job worker for every enabled tender task type.
func registerWorkers(
	zeebe *camunda.Client,
	cfg *config.Config,
	schemas map[string]*validation.Schema,
	deps dependencies,
	log logger.Logger,
	zapLog *zap.Logger,
) ([]*camunda.CamundaWorker, error) {
	var workers []*camunda.CamundaWorker

	start := func(taskType string, enabled bool, opts camunda.WorkerOptions, handler camunda.JobHandler) {
		if !enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(zeebe.GetClient(), taskType, opts, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	atCfg := analyzetender.LoadConfig(cfg, schemas[analyzetender.TaskType])
	at, err := analyzetender.NewHandler(atCfg, deps.store, deps.obs, log)
	if err != nil {
		return nil, fmt.Errorf("create %s handler: %w", analyzetender.TaskType, err)
	}
	start(analyzetender.TaskType, atCfg.Enabled,
		camunda.WorkerOptions{MaxJobsActive: atCfg.MaxJobsActive, Timeout: atCfg.Timeout}, at)

	rtCfg := rescoretenders.LoadConfig(cfg, schemas[rescoretenders.TaskType])
	rt, err := rescoretenders.NewHandler(rtCfg, deps.store, deps.obs, log)
	if err != nil {
		return nil, fmt.Errorf("create %s handler: %w", rescoretenders.TaskType, err)
	}
	start(rescoretenders.TaskType, rtCfg.Enabled,
		camunda.WorkerOptions{MaxJobsActive: rtCfg.MaxJobsActive, Timeout: rtCfg.Timeout}, rt)

	dcCfg := detectcorrigendum.LoadConfig(cfg, schemas[detectcorrigendum.TaskType])
	dc, err := detectcorrigendum.NewHandler(dcCfg, deps.store, deps.obs, log)
	if err != nil {
		return nil, fmt.Errorf("create %s handler: %w", detectcorrigendum.TaskType, err)
	}
	start(detectcorrigendum.TaskType, dcCfg.Enabled,
		camunda.WorkerOptions{MaxJobsActive: dcCfg.MaxJobsActive, Timeout: dcCfg.Timeout}, dc)

	itCfg := indextenderanalysis.LoadConfig(cfg, schemas[indextenderanalysis.TaskType])
	it, err := indextenderanalysis.NewHandler(itCfg, deps.es, deps.obs, log)
	if err != nil {
		return nil, fmt.Errorf("create %s handler: %w", indextenderanalysis.TaskType, err)
	}
	start(indextenderanalysis.TaskType, itCfg.Enabled,
		camunda.WorkerOptions{MaxJobsActive: itCfg.MaxJobsActive, Timeout: itCfg.Timeout}, it)

	return workers, nil
}
