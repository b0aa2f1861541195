package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Authentication error codes
const (
	ErrInvalidCredentials = "AUTH_001"
	ErrInvalidToken       = "AUTH_006"
	ErrExpiredToken       = "AUTH_007"
)

// Validation error codes
const (
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"
	ErrUnknownStage        = "VAL_004"
)

// Pipeline error codes
const (
	ErrFileAccess    = "PIPE_001"
	ErrParse         = "PIPE_002"
	ErrComputation   = "PIPE_003"
	ErrPersistence   = "PIPE_004"
	ErrRunInProgress = "PIPE_005"
	ErrNoRunYet      = "PIPE_006"
)

// Server error codes
const (
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrUnknownStage:        http.StatusNotFound,
	ErrFileAccess:          http.StatusUnprocessableEntity,
	ErrParse:               http.StatusUnprocessableEntity,
	ErrComputation:         http.StatusUnprocessableEntity,
	ErrPersistence:         http.StatusInternalServerError,
	ErrRunInProgress:       http.StatusConflict,
	ErrNoRunYet:            http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
}

var codeByKind = map[domain.ErrorKind]string{
	domain.KindFileAccess:  ErrFileAccess,
	domain.KindParse:       ErrParse,
	domain.KindComputation: ErrComputation,
	domain.KindPersistence: ErrPersistence,
}

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StageDetails describes the pipeline stage a failure came from.
type StageDetails struct {
	Stage string `json:"stage"`
	Kind  string `json:"kind"`
	Input string `json:"input,omitempty"`
}

// StatusOf returns the HTTP status reported for code.
func StatusOf(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes a standard error body with the status of code.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError builds an APIError from err. Stage failures keep their stage,
// kind and input; anything else is reported under fallback.
func FromError(err error, fallback string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		code, ok := codeByKind[stageErr.Kind]
		if !ok {
			code = fallback
		}
		return APIError{
			Code:    code,
			Message: err.Error(),
			Details: StageDetails{
				Stage: stageErr.Stage,
				Kind:  string(stageErr.Kind),
				Input: stageErr.Input,
			},
		}
	}

	return APIError{
		Code:    fallback,
		Message: err.Error(),
	}
}

// WriteFromError writes the error response built by FromError.
func WriteFromError(w http.ResponseWriter, err error, fallback string) {
	apiErr := FromError(err, fallback)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
