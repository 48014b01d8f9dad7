package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	ErrCodeValidation     = "validation_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeRateLimited    = "rate_limit_exceeded"
	ErrCodeInternal       = "internal_server_error"
	ErrCodeUnavailable    = "service_unavailable"
	ErrCodeInvalidPayload = "invalid_payload"
)

// AppError carries a client-safe status, code and message. Err is the
// underlying cause and is only ever logged.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func AuthenticationRequired() *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: "Authentication required"}
}

func InvalidCredentials() *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: "Invalid credentials"}
}

func AuthorizationDenied() *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: ErrCodeForbidden, Message: "Admin access required"}
}

func ValidationFailure(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: message, Err: err}
}

func NotFound(resource string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: message, Err: err}
}

func RateLimited() *AppError {
	return &AppError{StatusCode: http.StatusTooManyRequests, Code: ErrCodeRateLimited, Message: "Too many attempts, try again later"}
}

func Unavailable(message string) *AppError {
	return &AppError{StatusCode: http.StatusServiceUnavailable, Code: ErrCodeUnavailable, Message: message}
}

func Unexpected(operation string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: fmt.Sprintf("Failed to %s", operation), Err: err}
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// HTTPErrorHandler renders AppError, echo.HTTPError and validator errors in a
// single shape. Causes of 5xx replies are logged, never returned.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := toAppError(err)

	entry := Logger.WithFields(logrus.Fields{
		"status": appErr.StatusCode,
		"method": c.Request().Method,
		"path":   c.Path(),
	})
	if appErr.StatusCode >= http.StatusInternalServerError {
		entry.WithError(err).Error(appErr.Message)
	} else {
		entry.Debug(appErr.Message)
	}

	body := ErrorResponse{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(appErr.StatusCode)
	} else {
		writeErr = c.JSON(appErr.StatusCode, body)
	}
	if writeErr != nil {
		Logger.WithError(writeErr).Warn("failed to write error response")
	}
}

func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return &AppError{
			StatusCode: http.StatusBadRequest,
			Code:       ErrCodeValidation,
			Message:    "Validation failed",
			Details:    ValidationDetails(validationErrs),
			Err:        err,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			msg = m
		}
		return &AppError{StatusCode: httpErr.Code, Code: codeForStatus(httpErr.Code), Message: msg, Err: httpErr.Internal}
	}

	return Unexpected("complete request", err)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidPayload
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	}
	if status >= http.StatusInternalServerError {
		return ErrCodeInternal
	}
	return http.StatusText(status)
}
