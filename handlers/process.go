package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cityagent/agent"
	"cityagent/models"
)

// ProcessRequest is the planning request body.
type ProcessRequest struct {
	Message   string         `json:"message"`
	ProjectID int            `json:"projectId"`
	Context   map[string]any `json:"context,omitempty"`
}

// ProcessResponse is the success/degraded envelope. Degraded responses
// keep the same shape with a non-completed status and error_type /
// fallback_used set inside the response object.
type ProcessResponse struct {
	Success  bool                  `json:"success"`
	Response *models.AgentResponse `json:"response,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// ProcessHandler returns the POST /api/agent/process handler. Validation
// failures are 400 and unknown projects 404; everything past that is a
// 200 whose status field reports how degraded the pipeline was.
func ProcessHandler(orc *agent.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ProcessResponse{Error: "invalid request body"})
			return
		}

		resp, err := orc.Process(r.Context(), agent.Request{
			Message:   req.Message,
			ProjectID: req.ProjectID,
			Identity:  r.Header.Get("X-User-ID"),
			Context:   req.Context,
		})

		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ProcessResponse{Error: verr.Error()})
		case errors.Is(err, models.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, ProcessResponse{Error: "project not found"})
		case err != nil:
			// Process only errors on terminal conditions; anything else
			// here is a bug worth logging loudly.
			log.Printf("[PROCESS_HANDLER] unexpected pipeline error: %v", err)
			writeJSON(w, http.StatusInternalServerError, ProcessResponse{Error: "internal error"})
		default:
			writeJSON(w, http.StatusOK, ProcessResponse{
				Success:  resp.Status == models.StatusCompleted,
				Response: resp,
			})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[WRITE_JSON] encode failed: %v", err)
	}
}
