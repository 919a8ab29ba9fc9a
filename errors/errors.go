package errors

import (
	"fmt"
	"net/http"

	"github.com/nivela-brasil/intake-backend/logger"
)

type ErrorType string

const (
	ValidationError     ErrorType = "VALIDATION_ERROR"
	DuplicateEmailError ErrorType = "DUPLICATE_EMAIL"
	DatabaseError       ErrorType = "DATABASE_ERROR"
	NotFoundError       ErrorType = "NOT_FOUND"
	ServerError         ErrorType = "SERVER_ERROR"
	RateLimitError      ErrorType = "RATE_LIMIT_EXCEEDED"
	MethodError         ErrorType = "METHOD_NOT_ALLOWED"
)

// Machine-readable codes returned to clients so they never have to string-match
// error messages.
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	CodePersistenceUnavailable = "PERSISTENCE_UNAVAILABLE"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeMethodNotAllowed       = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests        = "TOO_MANY_REQUESTS"
)

// AppError represents a structured application error.
type AppError struct {
	Type       ErrorType         `json:"type"`
	Code       string            `json:"code,omitempty"`
	Message    string            `json:"message"`
	Detail     string            `json:"detail,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	HTTPStatus int               `json:"-"`
	Raw        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status to respond with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return getHTTPStatus(e.Type)
	}
	return e.HTTPStatus
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
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

// ValidationFailed builds a 400 with a single human-readable detail.
func ValidationFailed(message string, detail string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       CodeValidationFailed,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFailedFields builds a 400 carrying the complete per-field error set,
// so a client can render every problem at once.
func ValidationFailedFields(fields map[string]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       CodeValidationFailed,
		Message:    "Dados inválidos",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// DuplicateEmail builds the duplicate-submission error. A repeat submission is a
// normal business outcome, so it gets its own type and code instead of a 500.
func DuplicateEmail(email string) *AppError {
	logger.GetLogger().Infow("Duplicate submission", "email", logger.MaskEmail(email))
	return &AppError{
		Type:       DuplicateEmailError,
		Code:       CodeEmailAlreadyRegistered,
		Message:    "E-mail já cadastrado",
		HTTPStatus: http.StatusConflict,
	}
}

// NewDatabaseError logs the raw cause server-side and returns a sanitized 500.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Code:       CodePersistenceUnavailable,
		Message:    "Erro ao salvar. Tente novamente mais tarde.",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// InternalServerError builds a generic 500.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Code:       CodeInternalError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// MethodNotAllowed builds the 405 returned on non-POST intake requests.
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Type:       MethodError,
		Code:       CodeMethodNotAllowed,
		Message:    "Method not allowed",
		Detail:     fmt.Sprintf("method %s is not supported on this endpoint", method),
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// RateLimitExceeded builds a 429 with a retry hint in seconds.
func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Code:       CodeTooManyRequests,
		Message:    message,
		Detail:     fmt.Sprintf("retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case DuplicateEmailError:
		return http.StatusConflict
	case NotFoundError:
		return http.StatusNotFound
	case MethodError:
		return http.StatusMethodNotAllowed
	case RateLimitError:
		return http.StatusTooManyRequests
	case DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
