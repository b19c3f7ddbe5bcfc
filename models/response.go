package models

import "time"

// Pipeline statuses reported to the caller.
const (
	StatusCompleted      = "completed"
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"
)

// AgentResponse is the result of one planning request. It is computed per
// request and returned to the caller; only the generated features are
// durably persisted (merged into the project's CityData).
type AgentResponse struct {
	ID                string    `json:"id"`
	UserPrompt        string    `json:"user_prompt"`
	ProjectID         int       `json:"project_id"`
	AgentResponse     string    `json:"agent_response"`
	Reasoning         string    `json:"reasoning"`
	GeneratedFeatures []Feature `json:"generated_features"`
	FeaturesAdded     int       `json:"features_added"`
	Status            string    `json:"status"`
	ErrorType         string    `json:"error_type,omitempty"`
	FallbackUsed      bool      `json:"fallback_used,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessedBy       string    `json:"processed_by"`
	SessionID         string    `json:"session_id"`
	IntentClassified  Intent    `json:"intent_classified"`
}
