// internal/workers/tender/index-tender-analysis/config.go
package indextenderanalysis

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
	IndexName     string
	InputSchema   *validation.Schema
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
		MaxRetries:    2,
		IndexName:     "tender-analyses",
	}
}

func LoadConfig(appCfg *config.Config, schema *validation.Schema) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		MaxRetries:    wc.MaxRetries,
		IndexName:     appCfg.Eligibility.AnalysisIndex,
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
	if c.IndexName == "" {
		return fmt.Errorf("analysis_index is required")
	}
	return nil
}
