// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"tender"},
		"properties": map[string]interface{}{
			"tenderId": map[string]interface{}{"type": "string"},
			"tender": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"title"},
				"properties": map[string]interface{}{
					"title": map[string]interface{}{"type": "string"},
				},
			},
			"excelMsmeExemption": map[string]interface{}{"type": "boolean"},
		},
	}
}

func TestSchema_ValidateJSON(t *testing.T) {
	schema, err := Compile(testSchema())
	require.NoError(t, err)

	tests := []struct {
		name       string
		raw        string
		valid      bool
		wantFields []string
		wantCode   string
	}{
		{
			name:  "valid",
			raw:   `{"tender":{"title":"Supply of Laptops"},"excelMsmeExemption":true}`,
			valid: true,
		},
		{
			name:       "missing root property",
			raw:        `{"tenderId":"t-1"}`,
			wantFields: []string{"tender"},
			wantCode:   "REQUIRED_FIELD_MISSING",
		},
		{
			name:       "missing nested property",
			raw:        `{"tender":{}}`,
			wantFields: []string{"tender.title"},
			wantCode:   "REQUIRED_FIELD_MISSING",
		},
		{
			name:       "wrong type",
			raw:        `{"tender":{"title":"x"},"excelMsmeExemption":"yes"}`,
			wantFields: []string{"excelMsmeExemption"},
			wantCode:   "INVALID_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)

			fields := []string{}
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
				assert.Equal(t, tt.wantCode, e.Code)
			}
			if tt.wantFields == nil {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.wantFields, fields)
			}
		})
	}
}

func TestSchema_ValidateJSON_Malformed(t *testing.T) {
	schema, err := Compile(testSchema())
	require.NoError(t, err)

	_, err = schema.ValidateJSON(`{"tender":`)
	assert.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"tenderId": 12}, testSchema())
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
	assert.Contains(t, result.Error(), "tender:")
	assert.Contains(t, result.Error(), "tenderId:")
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 42})
	assert.Error(t, err)
}
