package response

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
)

const internalErrorMessage = "Internal Server Error"

// ErrorDetail is the content of the error envelope.
type ErrorDetail struct {
	Message string `json:"message" doc:"Human readable description of the failure"`
	Details any    `json:"details,omitempty" doc:"Optional structured context, e.g. the offending field"`
}

// ErrorResponse is the body of every failed response: {"error": {"message": ..., "details": ...}}.
type ErrorResponse struct {
	status int
	Err    ErrorDetail `json:"error"`
}

// Ensure ErrorResponse can be returned from Huma handlers.
var _ huma.StatusError = (*ErrorResponse)(nil)

func (e *ErrorResponse) Error() string {
	return e.Err.Message
}

func (e *ErrorResponse) GetStatus() int {
	return e.status
}

// NewError builds an ErrorResponse. Server errors never expose msg or causes.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status >= http.StatusInternalServerError {
		return &ErrorResponse{status: status, Err: ErrorDetail{Message: internalErrorMessage}}
	}

	resp := &ErrorResponse{status: status, Err: ErrorDetail{Message: msg}}
	if len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			resp.Err.Details = details
		}
	}
	return resp
}

var installOnce sync.Once

// Install routes Huma's own errors (unreadable bodies, panics) through NewError
// so clients see a single error shape.
func Install() {
	installOnce.Do(func() {
		huma.NewError = NewError
	})
}

// FromError maps a service failure to its HTTP status and error body. The cause
// is recorded on the request's log data.
func FromError(ctx context.Context, err error) huma.StatusError {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		resp := &ErrorResponse{
			status: http.StatusBadRequest,
			Err:    ErrorDetail{Message: validationErr.Message},
		}
		if len(validationErr.Details) > 0 {
			resp.Err.Details = validationErr.Details
		}
		return resp
	case errors.Is(err, service.ErrInvalidIdentifier), errors.Is(err, service.ErrNoFieldsToUpdate):
		return NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return NewError(http.StatusNotFound, err.Error())
	default:
		return NewError(http.StatusInternalServerError, internalErrorMessage)
	}
}
