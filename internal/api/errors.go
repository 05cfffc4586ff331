package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/backup"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			if apiErr := fromBackupError(err); apiErr != nil {
				return apiErr
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
		// Request schema violations carry one detail per offending field.
		if len(errs) > 0 && status == http.StatusUnprocessableEntity {
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				details = append(details, err.Error())
			}
			apiErr.Details = details
		}
		return apiErr
	}
}

// fromBackupError maps backup sentinels, or returns nil.
func fromBackupError(err error) *APIError {
	switch {
	case errors.Is(err, backup.ErrBackupNotFound):
		return &APIError{
			status:  http.StatusNotFound,
			Code:    string(domainerrors.CodeNotFound),
			Message: err.Error(),
		}
	case errors.Is(err, backup.ErrInvalidDocument),
		errors.Is(err, backup.ErrVersionMismatch),
		errors.Is(err, backup.ErrCorruptedBackup):
		return &APIError{
			status:  http.StatusBadRequest,
			Code:    string(domainerrors.CodeValidation),
			Message: err.Error(),
		}
	default:
		return nil
	}
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeAlreadyExists)
	case http.StatusServiceUnavailable:
		return string(domainerrors.CodeUnavailable)
	case http.StatusTooManyRequests:
		return codeRateLimited
	default:
		return string(domainerrors.CodeInternal)
	}
}
