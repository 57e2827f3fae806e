// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Tender analysis errors
const (
	ErrCodeTenderInputInvalid  ErrorCode = "TENDER_INPUT_INVALID"
	ErrCodeTenderNotFound      ErrorCode = "TENDER_NOT_FOUND"
	ErrCodeTenderLookupFailed  ErrorCode = "TENDER_LOOKUP_FAILED"
	ErrCodePolicyInvalid       ErrorCode = "POLICY_INVALID"
	ErrCodePolicyLoadFailed    ErrorCode = "POLICY_LOAD_FAILED"
	ErrCodeKeywordsLoadFailed  ErrorCode = "KEYWORDS_LOAD_FAILED"
	ErrCodeResultPersistFailed ErrorCode = "RESULT_PERSIST_FAILED"
	ErrCodeAnalysisIndexFailed ErrorCode = "ANALYSIS_INDEX_FAILED"
	ErrCodeRescoreFailed       ErrorCode = "RESCORE_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeInternal                      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the error with an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError finds a StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewTenderInputInvalidError creates a non-retryable job input error.
func NewTenderInputInvalidError(details string) *StandardError {
	return newError(ErrCodeTenderInputInvalid, "Invalid tender job input", details, false)
}

// NewTenderNotFoundError creates a non-retryable missing tender error.
func NewTenderNotFoundError(tenderID string) *StandardError {
	return newError(ErrCodeTenderNotFound, "Tender not found", fmt.Sprintf("tenderId: %s", tenderID), false).
		WithMetadata("tenderId", tenderID)
}

// NewTenderLookupFailedError creates a retryable tender query error.
func NewTenderLookupFailedError(err error) *StandardError {
	return newError(ErrCodeTenderLookupFailed, "Database error during tender lookup", err.Error(), true)
}

// NewPolicyInvalidError creates a non-retryable policy error. The stored policy has
// to be corrected before any tender can be analyzed against it.
func NewPolicyInvalidError(details string) *StandardError {
	return newError(ErrCodePolicyInvalid, "Company policy is invalid", details, false)
}

// NewPolicyLoadFailedError creates a retryable policy load error.
func NewPolicyLoadFailedError(err error) *StandardError {
	return newError(ErrCodePolicyLoadFailed, "Failed to load company policy", err.Error(), true)
}

// NewKeywordsLoadFailedError creates a retryable negative keyword load error.
func NewKeywordsLoadFailedError(err error) *StandardError {
	return newError(ErrCodeKeywordsLoadFailed, "Failed to load negative keywords", err.Error(), true)
}

// NewResultPersistFailedError creates a retryable result write error.
func NewResultPersistFailedError(tenderID string, err error) *StandardError {
	return newError(ErrCodeResultPersistFailed, "Failed to persist analysis result", err.Error(), true).
		WithMetadata("tenderId", tenderID)
}

// NewAnalysisIndexFailedError creates a retryable search indexing error.
func NewAnalysisIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeAnalysisIndexFailed, "Failed to index tender analysis",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

// NewRescoreFailedError creates a retryable batch error.
func NewRescoreFailedError(err error) *StandardError {
	return newError(ErrCodeRescoreFailed, "Tender re-scoring batch failed", err.Error(), true)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes modelled on the
// process boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeTenderInputInvalid:            "TENDER_INPUT_INVALID",
	ErrCodeTenderNotFound:                "TENDER_NOT_FOUND",
	ErrCodeTenderLookupFailed:            "TENDER_LOOKUP_FAILED",
	ErrCodePolicyInvalid:                 "POLICY_INVALID",
	ErrCodePolicyLoadFailed:              "POLICY_LOAD_FAILED",
	ErrCodeKeywordsLoadFailed:            "KEYWORDS_LOAD_FAILED",
	ErrCodeResultPersistFailed:           "RESULT_PERSIST_FAILED",
	ErrCodeAnalysisIndexFailed:           "ANALYSIS_INDEX_FAILED",
	ErrCodeRescoreFailed:                 "RESCORE_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeInternal:                      "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTenderLookupFailed,
		ErrCodePolicyLoadFailed,
		ErrCodeKeywordsLoadFailed,
		ErrCodeResultPersistFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed:
		return 3

	case ErrCodeAnalysisIndexFailed:
		return 2

	case ErrCodeRescoreFailed:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "POLICY") || strings.HasPrefix(codeStr, "KEYWORDS"):
		return "POLICY"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "TENDER") || strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "PERSIST"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "RESCORE"):
		return "BATCH"
	default:
		return "OTHER"
	}
}
