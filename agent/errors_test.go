package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cityagent/models"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"persistence marker", wrapPersistence(errors.New("socket closed")), ErrorTypePersistence},
		{"deadline exceeded", fmt.Errorf("call: %w", context.DeadlineExceeded), ErrorTypeAIUnavailable},
		{"timeout text", errors.New("client timeout awaiting headers"), ErrorTypeAIUnavailable},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeAIUnavailable},
		{"rate limited", errors.New("googleapi: Error 429: quota exceeded"), ErrorTypeAIUnavailable},
		{"invalid api key", errors.New("API key not valid"), ErrorTypeAuth},
		{"unauthorized", errors.New("401 unauthorized"), ErrorTypeAuth},
		{"permission denied", errors.New("rpc error: permission denied"), ErrorTypeAuth},
		{"anything else", errors.New("llm returned no usable features"), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusForErrorType(t *testing.T) {
	tests := []struct {
		errorType string
		want      string
	}{
		{ErrorTypeAIUnavailable, models.StatusPartialSuccess},
		{ErrorTypePersistence, models.StatusPartialSuccess},
		{ErrorTypeAuth, models.StatusError},
		{ErrorTypeUnknown, models.StatusError},
	}

	for _, tt := range tests {
		if got := statusForErrorType(tt.errorType); got != tt.want {
			t.Errorf("statusForErrorType(%q) = %q, want %q", tt.errorType, got, tt.want)
		}
	}
}
