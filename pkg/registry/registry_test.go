// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configuredRegistry = "../../configs/activity-registry.json"

func TestConfiguredRegistry(t *testing.T) {
	reg, err := LoadRegistry(configuredRegistry)
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	schemas, err := reg.InputSchemas()
	require.NoError(t, err)
	for _, taskType := range []string{"analyze-tender", "rescore-tenders", "detect-corrigendum", "index-tender-analysis"} {
		assert.Contains(t, schemas, taskType)
	}
}

func TestConfiguredRegistry_AnalyzeTenderSchema(t *testing.T) {
	reg, err := LoadRegistry(configuredRegistry)
	require.NoError(t, err)
	schemas, err := reg.InputSchemas()
	require.NoError(t, err)
	schema := schemas["analyze-tender"]

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"inline tender", `{"tender":{"title":"Website Development"},"excelMsmeExemption":false}`, true},
		{"stored tender", `{"tenderId":"t-1"}`, true},
		{"process variables pass through", `{"tenderId":"t-1","businessKey":"abc"}`, true},
		{"neither tender nor id", `{"excelMsmeExemption":true}`, false},
		{"policy without ceiling", `{"tenderId":"t-1","policy":{"projectTypes":[]}}`, false},
		{"keyword without text", `{"tenderId":"t-1","negativeKeywords":[{"description":"x"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.Error())
		})
	}
}

func TestRegistry_FindAddSave(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add(Activity{ID: "analyze-tender", DisplayName: "Analyze Tender", Category: "tender", TaskType: "analyze-tender"}))
	assert.Error(t, reg.Add(Activity{ID: "analyze-tender"}))

	activity, ok := reg.Find("analyze-tender")
	require.True(t, ok)
	assert.Equal(t, "Analyze Tender", activity.DisplayName)
	_, ok = reg.Find("missing")
	assert.False(t, ok)

	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 1)
}

func TestRegistry_Validate(t *testing.T) {
	valid := Activity{ID: "a", DisplayName: "A", Category: "tender", TaskType: "a"}

	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{"empty", nil, "no activities"},
		{"duplicate", []Activity{valid, valid}, "duplicate"},
		{"missing task type", []Activity{{ID: "b", DisplayName: "B", Category: "tender"}}, "TaskType"},
		{"bad schema", []Activity{{ID: "c", DisplayName: "C", Category: "tender", TaskType: "c",
			InputSchema: map[string]interface{}{"type": 12}}}, "activity c"},
		{"bad timeout", []Activity{{ID: "d", DisplayName: "D", Category: "tender", TaskType: "d", Timeout: "soon"}}, "timeout"},
		{"ok", []Activity{valid}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &ActivityRegistry{Activities: tt.activities}
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestActivity_TimeoutDuration(t *testing.T) {
	d, err := Activity{ID: "a", Timeout: "5m"}.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	_, err = Activity{ID: "a", Timeout: "0s"}.TimeoutDuration()
	assert.ErrorContains(t, err, "positive")
}

func TestSchemaHelpers(t *testing.T) {
	schema := map[string]interface{}{
		"type":       "object",
		"required":   []interface{}{"reason"},
		"properties": map[string]interface{}{"reason": map[string]interface{}{"type": "string"}},
	}
	assert.Equal(t, []string{"reason"}, SchemaRequired(schema))
	assert.Contains(t, SchemaProperties(schema), "reason")

	assert.Empty(t, SchemaRequired(map[string]interface{}{}))
	assert.Empty(t, SchemaProperties(nil))
}
