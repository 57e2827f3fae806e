package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// ProcessedJobs sums the jobs.processed counter for one task type and status.
func ProcessedJobs(t testing.TB, reader *sdkmetric.ManualReader, taskType, status string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "jobs.processed" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				tt, _ := dp.Attributes.Value("task_type")
				st, _ := dp.Attributes.Value("status")
				if tt.AsString() == taskType && st.AsString() == status {
					total += dp.Value
				}
			}
		}
	}
	return total
}
