// internal/workers/tender/analyze-tender/handler_test.go
package analyzetender

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"tender-workers/internal/common/errors"
	"tender-workers/internal/common/logger"
	"tender-workers/internal/common/observability"
	"tender-workers/internal/eligibility"
	"tender-workers/internal/models"
	"tender-workers/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ==========================
// Mock Store Implementation
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) LoadPolicy(ctx context.Context, policyID string) (models.CompanyPolicy, error) {
	args := m.Called(ctx, policyID)
	return args.Get(0).(models.CompanyPolicy), args.Error(1)
}

func (m *MockStore) LoadNegativeKeywords(ctx context.Context) ([]models.NegativeKeyword, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NegativeKeyword), args.Error(1)
}

func (m *MockStore) GetTender(ctx context.Context, tenderID string) (models.StoredTender, error) {
	args := m.Called(ctx, tenderID)
	return args.Get(0).(models.StoredTender), args.Error(1)
}

func (m *MockStore) SaveResult(ctx context.Context, tenderID string, result models.MatchResult) error {
	args := m.Called(ctx, tenderID, result)
	return args.Error(0)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  5,
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		PolicyID:       "default",
		PersistResults: true,
	}
}

func createTestHandler(t *testing.T, store TenderStore, config *Config) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	h, err := NewHandler(config, store, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func createTestPolicy() models.CompanyPolicy {
	return models.CompanyPolicy{
		TurnoverCeilingLakhs: 400,
		ProjectTypes:         []string{"Software", "Website", "Mobile App", "AMC"},
	}
}

func boolPtr(b bool) *bool { return &b }

// ==========================
// Handler Creation Tests
// ==========================

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		store   TenderStore
		wantErr string
	}{
		{"valid", createTestConfig(), &MockStore{}, ""},
		{"zero timeout", &Config{MaxJobsActive: 1, PolicyID: "default"}, &MockStore{}, "timeout"},
		{"no policy id", &Config{MaxJobsActive: 1, Timeout: time.Second}, &MockStore{}, "policy_id"},
		{"no store", createTestConfig(), nil, "tender store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHandler(tt.config, tt.store, nil, logger.NewNoOpLogger())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_InlineTender(t *testing.T) {
	store := &MockStore{}
	h := createTestHandler(t, store, nil)
	policy := models.CompanyPolicy{TurnoverCeilingLakhs: 400, ProjectTypes: []string{"Software"}}

	output, err := h.Execute(context.Background(), &Input{
		Tender: &models.TenderText{
			Title: "Hiring of Agency for Development of Software Application, AMC required; turnover criteria: Rs. 2 Crore; MSME exempted",
		},
		Policy:           &policy,
		NegativeKeywords: []models.NegativeKeyword{},
	})
	require.NoError(t, err)

	assert.Equal(t, models.EligibilityEligible, output.MatchResult.EligibilityStatus)
	assert.Equal(t, 100, output.MatchResult.MatchPercentage)
	assert.True(t, output.MatchResult.IsMsmeExempted)
	require.NotNil(t, output.MatchResult.TurnoverRequiredLakhs)
	assert.Equal(t, 200.0, *output.MatchResult.TurnoverRequiredLakhs)
	assert.Equal(t, eligibility.RuleSetVersion, output.RuleSetVersion)
	assert.False(t, output.Persisted)
	store.AssertExpectations(t)
}

func TestHandler_Execute_StoredTender(t *testing.T) {
	store := &MockStore{}
	h := createTestHandler(t, store, nil)

	store.On("GetTender", mock.Anything, "t-1").Return(models.StoredTender{
		ID:         "t-1",
		ExternalID: "GEM/2024/B/1",
		Text: models.TenderText{
			Title:               "Supply of Laptops",
			EligibilityCriteria: "Minimum average annual turnover of Rs. 50 Lakhs",
		},
	}, nil)
	store.On("LoadPolicy", mock.Anything, "default").Return(createTestPolicy(), nil)
	store.On("LoadNegativeKeywords", mock.Anything).Return([]models.NegativeKeyword{{Keyword: "laptop"}}, nil)
	store.On("SaveResult", mock.Anything, "t-1", mock.MatchedBy(func(r models.MatchResult) bool {
		return r.EligibilityStatus == models.EligibilityNotRelevant
	})).Return(nil)

	output, err := h.Execute(context.Background(), &Input{TenderID: "t-1"})
	require.NoError(t, err)

	assert.Equal(t, models.EligibilityNotRelevant, output.MatchResult.EligibilityStatus)
	assert.Equal(t, 0, output.MatchResult.MatchPercentage)
	require.NotNil(t, output.MatchResult.NotRelevantKeyword)
	assert.Equal(t, "laptop", *output.MatchResult.NotRelevantKeyword)
	assert.True(t, output.Persisted)
	store.AssertExpectations(t)
}

func TestHandler_Execute_ExemptionFlags(t *testing.T) {
	stored := models.StoredTender{
		ID: "t-2",
		Text: models.TenderText{
			Title:     "Website redesign",
			Checklist: "Turnover of Rs. 10 Crore",
		},
		ExcelStartupExemption: true,
	}

	tests := []struct {
		name        string
		override    *bool
		wantStartup bool
		wantStatus  models.EligibilityStatus
	}{
		{"stored flag applies", nil, true, models.EligibilityEligible},
		{"job flag overrides", boolPtr(false), false, models.EligibilityNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			config := createTestConfig()
			config.PersistResults = false
			h := createTestHandler(t, store, config)
			policy := createTestPolicy()

			store.On("GetTender", mock.Anything, "t-2").Return(stored, nil)

			output, err := h.Execute(context.Background(), &Input{
				TenderID:              "t-2",
				Policy:                &policy,
				NegativeKeywords:      []models.NegativeKeyword{},
				ExcelStartupExemption: tt.override,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStartup, output.MatchResult.IsStartupExempted)
			assert.Equal(t, tt.wantStatus, output.MatchResult.EligibilityStatus)
			assert.False(t, output.Persisted)
			store.AssertNotCalled(t, "SaveResult", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Execute_BlankTender(t *testing.T) {
	store := &MockStore{}
	h := createTestHandler(t, store, nil)
	policy := createTestPolicy()

	output, err := h.Execute(context.Background(), &Input{
		Tender:           &models.TenderText{},
		Policy:           &policy,
		NegativeKeywords: []models.NegativeKeyword{},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EligibilityManualReview, output.MatchResult.EligibilityStatus)
	assert.Equal(t, models.AnalysisStatusUnableToAnalyze, output.MatchResult.AnalysisStatus)
	assert.Equal(t, 0, output.MatchResult.MatchPercentage)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		setup    func(store *MockStore)
		wantCode errors.ErrorCode
	}{
		{
			name:     "no tender",
			input:    &Input{},
			setup:    func(*MockStore) {},
			wantCode: errors.ErrCodeTenderInputInvalid,
		},
		{
			name:  "tender not found",
			input: &Input{TenderID: "missing"},
			setup: func(store *MockStore) {
				store.On("GetTender", mock.Anything, "missing").
					Return(models.StoredTender{}, errors.NewTenderNotFoundError("missing"))
			},
			wantCode: errors.ErrCodeTenderNotFound,
		},
		{
			name: "invalid inline policy",
			input: &Input{
				Tender: &models.TenderText{Title: "Website Development"},
				Policy: &models.CompanyPolicy{TurnoverCeilingLakhs: -1},
			},
			setup:    func(*MockStore) {},
			wantCode: errors.ErrCodePolicyInvalid,
		},
		{
			name:  "policy load failure",
			input: &Input{Tender: &models.TenderText{Title: "Website Development"}},
			setup: func(store *MockStore) {
				store.On("LoadPolicy", mock.Anything, "default").
					Return(models.CompanyPolicy{}, errors.NewPolicyLoadFailedError(stderrors.New("timeout")))
			},
			wantCode: errors.ErrCodePolicyLoadFailed,
		},
		{
			name:  "keyword load failure",
			input: &Input{Tender: &models.TenderText{Title: "Website Development"}},
			setup: func(store *MockStore) {
				store.On("LoadPolicy", mock.Anything, "default").Return(createTestPolicy(), nil)
				store.On("LoadNegativeKeywords", mock.Anything).
					Return(nil, errors.NewKeywordsLoadFailedError(stderrors.New("timeout")))
			},
			wantCode: errors.ErrCodeKeywordsLoadFailed,
		},
		{
			name: "persist failure",
			input: &Input{
				TenderID:         "t-3",
				Tender:           &models.TenderText{Title: "Website Development"},
				NegativeKeywords: []models.NegativeKeyword{},
			},
			setup: func(store *MockStore) {
				store.On("LoadPolicy", mock.Anything, "default").Return(createTestPolicy(), nil)
				store.On("SaveResult", mock.Anything, "t-3", mock.Anything).
					Return(errors.NewResultPersistFailedError("t-3", stderrors.New("deadlock")))
			},
			wantCode: errors.ErrCodeResultPersistFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			tt.setup(store)
			h := createTestHandler(t, store, nil)

			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
			store.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_MalformedVariables(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	h := createTestHandler(t, nil, nil)
	h.obs = observability.NewWithReader("test", reader)
	client := testutils.NewJobClient()

	err := h.Handle(client, testutils.NewJob(7, TaskType, `{"tenderId":`, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), testutils.ProcessedJobs(t, reader, TaskType, "failed"))
	thrown := client.Gateway.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, "TENDER_INPUT_INVALID", thrown[0].ErrorCode)
	assert.Empty(t, client.Gateway.Completed())
}
