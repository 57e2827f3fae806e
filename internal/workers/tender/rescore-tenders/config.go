// internal/workers/tender/rescore-tenders/config.go
package rescoretenders

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
	PolicyID      string
	Concurrency   int
	InputSchema   *validation.Schema
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 1,
		Timeout:       5 * time.Minute,
		MaxRetries:    1,
		PolicyID:      "default",
		Concurrency:   8,
	}
}

// LoadConfig builds the worker config from the application config. The batch
// timeout comes from the eligibility section.
func LoadConfig(appCfg *config.Config, schema *validation.Schema) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	timeout := config.GetDuration(appCfg.Eligibility.RescoreTimeout)
	if timeout <= 0 {
		timeout = config.GetDuration(wc.Timeout)
	}
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       timeout,
		MaxRetries:    wc.MaxRetries,
		PolicyID:      appCfg.Eligibility.PolicyID,
		Concurrency:   appCfg.Eligibility.RescoreConcurrency,
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
	if c.Concurrency <= 0 {
		return fmt.Errorf("rescore_concurrency must be positive")
	}
	if c.PolicyID == "" {
		return fmt.Errorf("policy_id is required")
	}
	return nil
}
