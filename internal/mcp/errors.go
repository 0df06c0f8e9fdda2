package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/ganot/roadmap/internal/domain/savedchart"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// Error codes that have a JSON-RPC counterpart.
const (
	CodeMethodNotFound = "METHOD_NOT_FOUND"
	CodeInvalidParams  = "INVALID_PARAMS"
	CodeInvalidInput   = "INVALID_INPUT"
)

func unknownMethod(method string) *APIError {
	return &APIError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", method)}
}

func invalidParams(err error) *APIError {
	return &APIError{Code: CodeInvalidParams, Message: err.Error(), RecoveryHint: "Check argument names and types"}
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, catalog.ErrMineralTypeNotFound):
		return &APIError{Code: "MINERAL_TYPE_NOT_FOUND", Message: "mineral type not found", RecoveryHint: "Call list_mineral_types for valid IDs"}
	case errors.Is(err, catalog.ErrStageNotFound):
		return &APIError{Code: "STAGE_NOT_FOUND", Message: "stage not found for this mineral type", RecoveryHint: "Call list_stages with the same mineral_type_id"}
	case errors.Is(err, catalog.ErrQuestionNotFound):
		return &APIError{Code: "QUESTION_NOT_FOUND", Message: "question not found", RecoveryHint: "Call list_questions or omit question_id"}
	case errors.Is(err, savedchart.ErrChartNotFound):
		return &APIError{Code: "CHART_NOT_FOUND", Message: "chart not found", RecoveryHint: "Call list_charts for saved chart IDs"}
	case errors.Is(err, savedchart.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error(), RecoveryHint: "Fix the arguments and retry"}
	case errors.Is(err, chart.ErrInvalidDocument):
		return &APIError{Code: "INVALID_DOCUMENT", Message: "built chart failed validation", RecoveryHint: "Check the catalog data for the mineral type"}
	default:
		return nil
	}
}
