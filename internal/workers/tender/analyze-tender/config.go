// internal/workers/tender/analyze-tender/config.go
package analyzetender

import (
	"fmt"
	"time"

	"tender-workers/internal/common/config"
	"tender-workers/internal/common/validation"
)

type Config struct {
	Enabled        bool
	MaxJobsActive  int
	Timeout        time.Duration
	MaxRetries     int
	PolicyID       string
	PersistResults bool
	InputSchema    *validation.Schema
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  10,
		Timeout:        10 * time.Second,
		MaxRetries:     3,
		PolicyID:       "default",
		PersistResults: true,
	}
}

// LoadConfig builds the worker config from the application config.
func LoadConfig(appCfg *config.Config, schema *validation.Schema) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:        wc.Enabled,
		MaxJobsActive:  wc.MaxJobsActive,
		Timeout:        config.GetDuration(wc.Timeout),
		MaxRetries:     wc.MaxRetries,
		PolicyID:       appCfg.Eligibility.PolicyID,
		PersistResults: appCfg.Eligibility.PersistResults,
		InputSchema:    schema,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.PolicyID == "" {
		return fmt.Errorf("policy_id is required")
	}
	return nil
}
