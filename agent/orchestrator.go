// Package agent orchestrates the planning pipeline: validate the request,
// load the project, classify the prompt into an intent, generate placed
// features, persist them additively and explain the result. The external
// AI collaborator is optional; every failure past validation degrades to
// the local rule-based pipeline instead of surfacing an exception.
package agent

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"cityagent/config"
	"cityagent/models"
	"cityagent/planner"
)

// processedByLocal names the dependency-free pipeline in responses.
const processedByLocal = "rule_based_planner"

// ProjectStore is the persistence collaborator. GetProject returns
// models.ErrProjectNotFound for missing or foreign projects; MergeCityData
// is additive only.
type ProjectStore interface {
	GetProject(ctx context.Context, id int, ownerID string) (*models.Project, error)
	MergeCityData(ctx context.Context, id int, ownerID string, features []models.Feature) error
}

// AIService is the optional external collaborator. Any error or timeout
// from its methods routes the request to the fallback pipeline.
type AIService interface {
	Model() string
	ClassifyIntent(ctx context.Context, prompt string, existing []models.Feature, constraints []string, bp models.Blueprint) (models.Intent, error)
	GenerateFeatures(ctx context.Context, intent models.Intent, existing []models.Feature, city models.CityData, bp models.Blueprint) ([]models.Feature, error)
	GenerateRationale(ctx context.Context, intent models.Intent, features []models.Feature, rc planner.RationaleContext) (string, error)
}

// Request is one planning request.
type Request struct {
	Message   string
	ProjectID int
	// Identity scopes project access; empty means unscoped.
	Identity string
	Context  map[string]any
}

// Orchestrator runs one synchronous pipeline per request. A fresh
// generator is seeded per request, so the orchestrator itself is safe for
// concurrent use; concurrent merges against the same project remain
// last-write-wins (see ProjectStore.MergeCityData).
type Orchestrator struct {
	store     ProjectStore
	ai        AIService
	seed      func() int64
	aiTimeout time.Duration
	dbTimeout time.Duration
}

// New creates an orchestrator. ai may be nil to run rule-based only.
func New(store ProjectStore, ai AIService) *Orchestrator {
	return &Orchestrator{
		store:     store,
		ai:        ai,
		seed:      func() int64 { return time.Now().UnixNano() },
		aiTimeout: config.GetAITimeout(),
		dbTimeout: 10 * time.Second,
	}
}

// SetSeed overrides the per-request random seed source. Tests use a fixed
// seed to make placement and geometry reproducible.
func (o *Orchestrator) SetSeed(fn func() int64) {
	o.seed = fn
}

// Process runs the pipeline. It returns an error only for terminal
// conditions (validation failure, unknown project); every other failure
// is absorbed into a degraded response with fallback_used set.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*models.AgentResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &models.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if req.ProjectID <= 0 {
		return nil, &models.ValidationError{Field: "projectId", Reason: "must be a positive integer"}
	}

	resp := &models.AgentResponse{
		ID:          uuid.NewString(),
		UserPrompt:  req.Message,
		ProjectID:   req.ProjectID,
		SessionID:   uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ProcessedBy: processedByLocal,
	}

	loadCtx, cancel := context.WithTimeout(ctx, o.dbTimeout)
	project, err := o.store.GetProject(loadCtx, req.ProjectID, req.Identity)
	cancel()
	if errors.Is(err, models.ErrProjectNotFound) {
		// Terminal: no fallback for unknown or unauthorized projects.
		return nil, err
	}
	if err != nil {
		log.Printf("[ORCHESTRATOR] project load failed, degrading: %v", err)
		return o.fallback(ctx, req, nil, resp, wrapPersistence(err)), nil
	}

	city := models.ParseCityData(project.CityData)
	existing := city.All()
	rc := planner.RationaleContext{
		CityType:      project.CityType,
		Constraints:   project.Constraints,
		ExistingCount: len(existing),
	}

	var (
		intent    models.Intent
		features  []models.Feature
		rationale string
	)

	if o.ai != nil {
		intent, features, rationale, err = o.aiPipeline(ctx, req, project, existing, city, rc)
		if err != nil {
			log.Printf("[PLANNER_FALLBACK] external collaborator failed: %v", err)
			return o.fallback(ctx, req, project, resp, err), nil
		}
		resp.ProcessedBy = o.ai.Model()
	} else {
		intent = planner.Classify(req.Message, project.Constraints)
		if !intent.IsNeutral() {
			features = planner.NewGenerator(o.seed()).Generate(intent, existing, project.Blueprint)
		}
		rationale = planner.Rationale(intent, features, rc)
	}

	resp.IntentClassified = intent
	resp.GeneratedFeatures = features
	resp.AgentResponse = rationale
	resp.Reasoning = rationale

	if len(features) > 0 {
		persistCtx, cancel := context.WithTimeout(ctx, o.dbTimeout)
		err = o.store.MergeCityData(persistCtx, req.ProjectID, req.Identity, features)
		cancel()
		if err != nil {
			log.Printf("[ORCHESTRATOR] merge failed, degrading: %v", err)
			return o.fallback(ctx, req, project, resp, wrapPersistence(err)), nil
		}
	}

	resp.FeaturesAdded = len(features)
	resp.Status = models.StatusCompleted
	return resp, nil
}

// aiPipeline runs classify -> generate -> rationale against the external
// collaborator, each call under its own timeout. A neutral intent skips
// generation; the rationale for it comes from the local template.
func (o *Orchestrator) aiPipeline(ctx context.Context, req Request, project *models.Project, existing []models.Feature, city models.CityData, rc planner.RationaleContext) (models.Intent, []models.Feature, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.aiTimeout)
	intent, err := o.ai.ClassifyIntent(callCtx, req.Message, existing, project.Constraints, project.Blueprint)
	cancel()
	if err != nil {
		return models.Intent{}, nil, "", err
	}

	if intent.IsNeutral() {
		return intent, nil, planner.Rationale(intent, nil, rc), nil
	}

	callCtx, cancel = context.WithTimeout(ctx, o.aiTimeout)
	features, err := o.ai.GenerateFeatures(callCtx, intent, existing, city, project.Blueprint)
	cancel()
	if err != nil {
		return intent, nil, "", err
	}

	callCtx, cancel = context.WithTimeout(ctx, o.aiTimeout)
	rationale, err := o.ai.GenerateRationale(callCtx, intent, features, rc)
	cancel()
	if err != nil {
		return intent, features, "", err
	}

	return intent, features, rationale, nil
}

// fallback is the degraded branch: classify the cause, rerun the local
// rule-based pipeline and persist best-effort. A failed save here is
// logged and swallowed; the computed features are still returned so the
// caller can retry the merge.
func (o *Orchestrator) fallback(ctx context.Context, req Request, project *models.Project, resp *models.AgentResponse, cause error) *models.AgentResponse {
	errorType := ClassifyError(cause)

	var (
		bp          models.Blueprint
		constraints []string
		existing    []models.Feature
		rc          planner.RationaleContext
	)
	if project != nil {
		bp = project.Blueprint
		constraints = project.Constraints
		existing = models.ParseCityData(project.CityData).All()
		rc = planner.RationaleContext{
			CityType:      project.CityType,
			Constraints:   constraints,
			ExistingCount: len(existing),
		}
	}

	intent := planner.Classify(req.Message, constraints)
	var features []models.Feature
	if !intent.IsNeutral() {
		features = planner.NewGenerator(o.seed()).Generate(intent, existing, bp)
	}
	rationale := planner.Rationale(intent, features, rc)

	resp.IntentClassified = intent
	resp.GeneratedFeatures = features
	resp.AgentResponse = rationale
	resp.Reasoning = rationale
	resp.FallbackUsed = true
	resp.ErrorType = errorType
	resp.Status = statusForErrorType(errorType)
	resp.ProcessedBy = processedByLocal

	if project != nil && len(features) > 0 {
		persistCtx, cancel := context.WithTimeout(ctx, o.dbTimeout)
		err := o.store.MergeCityData(persistCtx, req.ProjectID, req.Identity, features)
		cancel()
		if err != nil {
			log.Printf("[FALLBACK_PERSIST] save failed, returning unsaved features: %v", err)
			resp.FeaturesAdded = 0
			return resp
		}
		resp.FeaturesAdded = len(features)
	}
	return resp
}
