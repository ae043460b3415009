package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	NotFoundError ErrorType = "NOT_FOUND"
	ServerError   ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped error, if any.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status code the error is rendered with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return getHTTPStatus(e.Type)
	}
	return e.HTTPStatus
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// RouteNotFound reports a request for a path no route serves.
func RouteNotFound(method, path string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    "Route not found",
		Detail:     fmt.Sprintf("%s %s", method, path),
		HTTPStatus: http.StatusNotFound,
	}
}

// InternalServerError reports a failure the client cannot act on.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
