package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	CodeValidation        = "E100"
	CodeDatabase          = "E200"
	CodeExternalAPI       = "E300"
	CodeState             = "E400"
	CodeRateLimit         = "E500"
	CodeNotFound          = "E600"
	CodeUnauthorized      = "E700"
	CodeInvalidTransition = "E800"
)

const genericUserMessage = "Something went wrong. Please try again later."

type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Is matches another AppError by code, so errors.Is(err, &AppError{Code: CodeNotFound}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        CodeValidation,
		Message:     msg,
		UserMessage: msg,
		Severity:    SeverityLow,
	}
}

func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        CodeDatabase,
		Message:     fmt.Sprintf("Database error: %s", underlyingMsg),
		UserMessage: "Temporary problem, please try again later.",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}

func NewExternalAPIError(apiName string, cause error) *AppError {
	return &AppError{
		Code:        CodeExternalAPI,
		Message:     fmt.Sprintf("External API error: %s", apiName),
		UserMessage: "Service is temporarily unavailable.",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

func NewStateError(msg string) *AppError {
	return &AppError{
		Code:        CodeState,
		Message:     msg,
		UserMessage: "This action is not possible right now.",
		Severity:    SeverityMedium,
	}
}

// NewPanicError wraps a value recovered from a panicking handler.
func NewPanicError(recovered any) *AppError {
	return &AppError{
		Code:     CodeInternal,
		Message:  fmt.Sprintf("panic recovered: %v", recovered),
		Severity: SeverityCritical,
	}
}

func NewRateLimitError(retryAfter int) *AppError {
	return &AppError{
		Code:        CodeRateLimit,
		Message:     fmt.Sprintf("Rate limit exceeded: retry after %d seconds", retryAfter),
		UserMessage: fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter),
		Severity:    SeverityLow,
	}
}

func NewNotFoundError(entity string, id int64) *AppError {
	return &AppError{
		Code:        CodeNotFound,
		Message:     fmt.Sprintf("%s %d not found", entity, id),
		UserMessage: fmt.Sprintf("%s not found", entity),
		Severity:    SeverityLow,
	}
}

func NewUnauthorizedError(telegramID int64) *AppError {
	return &AppError{
		Code:        CodeUnauthorized,
		Message:     fmt.Sprintf("user %d is not an admin", telegramID),
		UserMessage: "You don't have permission to do that.",
		Severity:    SeverityLow,
	}
}

func NewInvalidTransitionError(orderID int64, to string) *AppError {
	return &AppError{
		Code:        CodeInvalidTransition,
		Message:     fmt.Sprintf("order %d cannot move to %s", orderID, to),
		UserMessage: "Failed to update order",
		Severity:    SeverityLow,
	}
}
