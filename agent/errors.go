package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cityagent/models"
)

// Error types reported to the caller on degraded responses.
const (
	ErrorTypeAIUnavailable = "ai_service_unavailable"
	ErrorTypeAuth          = "authentication_failure"
	ErrorTypePersistence   = "persistence_failure"
	ErrorTypeUnknown       = "unknown"
)

// errPersistence marks failures from the persistence collaborator so
// classification does not depend on driver error text.
var errPersistence = errors.New("persistence failure")

// wrapPersistence tags a store error for later classification.
func wrapPersistence(err error) error {
	return fmt.Errorf("%w: %v", errPersistence, err)
}

// ClassifyError buckets a pipeline failure for the response envelope.
// Persistence failures are recognized by their marker; everything else is
// inspected: auth-looking errors first, then timeouts and connectivity
// failures from the external AI collaborator, then unknown.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, errPersistence) {
		return ErrorTypePersistence
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "403"):
		return ErrorTypeAuth
	case errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "503"):
		return ErrorTypeAIUnavailable
	default:
		return ErrorTypeUnknown
	}
}

// statusForErrorType maps an error class to the externally visible
// status. Service and persistence hiccups still yield usable features
// (partial_success); auth and unknown failures report error.
func statusForErrorType(errorType string) string {
	switch errorType {
	case ErrorTypeAIUnavailable, ErrorTypePersistence:
		return models.StatusPartialSuccess
	default:
		return models.StatusError
	}
}
