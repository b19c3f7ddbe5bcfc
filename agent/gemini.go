package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"cityagent/config"
	"cityagent/models"
	"cityagent/planner"
)

// GeminiPlanner is the optional external AI collaborator. Each call is
// bounded by the caller's context; any error or timeout routes the
// request to the local fallback pipeline.
type GeminiPlanner struct {
	model string
}

// NewGeminiPlanner returns a Gemini-backed planner, or nil when no API
// key is configured so the orchestrator runs rule-based only.
func NewGeminiPlanner() *GeminiPlanner {
	if config.GetGeminiAPIKey() == "" {
		return nil
	}
	return &GeminiPlanner{model: config.GetGeminiModel()}
}

// Model names the LLM used, for the processed_by response field.
func (p *GeminiPlanner) Model() string {
	return p.model
}

// generateJSON sends a prompt in JSON mode and decodes the reply into out.
func (p *GeminiPlanner) generateJSON(ctx context.Context, prompt string, out any) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GetGeminiAPIKey(),
	})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		genConfig)
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}

	if err := json.Unmarshal([]byte(resp.Text()), out); err != nil {
		return fmt.Errorf("parse LLM response %q: %w", resp.Text(), err)
	}
	return nil
}

// ClassifyIntent asks the model for a structured intent. The reply is
// normalized against the same vocabularies the local classifier uses, so
// a hallucinated dimension value degrades to the local default instead of
// leaking onto the wire.
func (p *GeminiPlanner) ClassifyIntent(ctx context.Context, prompt string, existing []models.Feature, constraints []string, bp models.Blueprint) (models.Intent, error) {
	llmPrompt := fmt.Sprintf(`You are an urban-planning intent classifier. Translate the user's request
into a JSON object with exactly these fields:
{"intent": "add_feature"|"get_recommendations",
 "feature_type": "park"|"zone"|"road"|"building"|"water",
 "feature_subtype": string,
 "size": "small"|"medium"|"large"|"extra_large",
 "location_preference": "center"|"north"|"south"|"east"|"west",
 "quantity": integer >= 1,
 "geometry_kind": "point"|"linestring"|"polygon"}

The blueprint is %dx%d %s with %d existing features. Project constraints: %s.

User request: %q

Respond ONLY with the JSON object.`,
		bp.Width, bp.Height, bp.Unit, len(existing), strings.Join(constraints, "; "), prompt)

	var intent models.Intent
	if err := p.generateJSON(ctx, llmPrompt, &intent); err != nil {
		return models.Intent{}, err
	}

	fallback := planner.Classify(prompt, constraints)
	normalizeIntent(&intent, fallback)
	intent.Constraints = constraints
	return intent, nil
}

// GenerateFeatures asks the model for placed features and validates every
// one: unknown geometry kinds are dropped, coordinates are clamped to the
// blueprint and polygon rings are re-closed. Returning zero valid
// features is an error so the orchestrator falls back.
func (p *GeminiPlanner) GenerateFeatures(ctx context.Context, intent models.Intent, existing []models.Feature, city models.CityData, bp models.Blueprint) ([]models.Feature, error) {
	intentJSON, _ := json.Marshal(intent)
	llmPrompt := fmt.Sprintf(`You are an urban-planning geometry generator. Place %d feature(s) on a
%dx%d blueprint (bottom-left origin, integer coordinates) for this intent:
%s

There are already %d features on the blueprint. Spread new features apart.

Respond ONLY with a JSON array of features, each shaped:
{"id": string, "type": string, "subtype": string, "name": string,
 "description": string,
 "geometry": {"type": "point"|"linestring"|"polygon",
              "coordinates": {"x":int,"y":int}
                           | [{"x":int,"y":int}, ...]
                           | [[{"x":int,"y":int}, ...]]},
 "metadata": {"aiGenerated": true, "confidence": number,
              "detectionMethod": "llm", "size": string,
              "locationPreference": string}}

Polygon rings must repeat the first coordinate as the last one.`,
		intent.Quantity, bp.Width, bp.Height, intentJSON, len(existing)+city.Count())

	var features []models.Feature
	if err := p.generateJSON(ctx, llmPrompt, &features); err != nil {
		return nil, err
	}

	valid := make([]models.Feature, 0, len(features))
	for i, f := range features {
		if !sanitizeFeature(&f, intent, i, bp) {
			log.Printf("[GEMINI_PLANNER] dropping invalid generated feature %q", f.ID)
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("llm returned no usable features")
	}
	return valid, nil
}

// GenerateRationale asks the model for the explanation text. An empty
// reply is an error; rationales must never be empty.
func (p *GeminiPlanner) GenerateRationale(ctx context.Context, intent models.Intent, features []models.Feature, rc planner.RationaleContext) (string, error) {
	intentJSON, _ := json.Marshal(intent)
	llmPrompt := fmt.Sprintf(`You are an urban-planning assistant. In 2-3 sentences, explain to the user
what was just added to their city plan and why the placement makes sense.
Mention the size and the location preference when they are notable.

Intent: %s
Features added: %d
Project type: %q, existing features: %d

Respond ONLY with a JSON object: {"rationale": string}`,
		intentJSON, len(features), rc.CityType, rc.ExistingCount)

	var reply struct {
		Rationale string `json:"rationale"`
	}
	if err := p.generateJSON(ctx, llmPrompt, &reply); err != nil {
		return "", err
	}
	if strings.TrimSpace(reply.Rationale) == "" {
		return "", fmt.Errorf("llm returned empty rationale")
	}
	return reply.Rationale, nil
}

// normalizeIntent replaces out-of-vocabulary LLM values with the local
// classifier's result for the same prompt.
func normalizeIntent(in *models.Intent, fallback models.Intent) {
	if in.IntentKind != models.IntentAddFeature && in.IntentKind != models.IntentGetRecommendations {
		in.IntentKind = fallback.IntentKind
	}
	switch in.FeatureType {
	case models.FeaturePark, models.FeatureZone, models.FeatureRoad, models.FeatureBuilding, models.FeatureWater:
	default:
		in.FeatureType = fallback.FeatureType
		in.FeatureSubtype = fallback.FeatureSubtype
	}
	if in.FeatureSubtype == "" {
		in.FeatureSubtype = fallback.FeatureSubtype
	}
	switch in.Size {
	case models.SizeSmall, models.SizeMedium, models.SizeLarge, models.SizeExtraLarge:
	default:
		in.Size = fallback.Size
	}
	switch in.LocationPreference {
	case models.LocationCenter, models.LocationNorth, models.LocationSouth, models.LocationEast, models.LocationWest:
	default:
		in.LocationPreference = fallback.LocationPreference
	}
	if in.Quantity < 1 {
		in.Quantity = fallback.Quantity
	}
	switch in.GeometryKind {
	case models.GeometryPoint, models.GeometryLineString, models.GeometryPolygon:
	default:
		in.GeometryKind = fallback.GeometryKind
	}
	if in.Priority == "" {
		in.Priority = fallback.Priority
	}
}

// sanitizeFeature enforces the geometry invariants on one LLM feature.
// Returns false when the feature cannot be repaired.
func sanitizeFeature(f *models.Feature, intent models.Intent, index int, bp models.Blueprint) bool {
	if f.Type == "" {
		f.Type = intent.FeatureType
	}
	if f.Subtype == "" {
		f.Subtype = intent.FeatureSubtype
	}
	if f.ID == "" {
		f.ID = fmt.Sprintf("%s_llm_%d", f.Type, index)
	}
	if f.Name == "" {
		f.Name = fmt.Sprintf("%s %d", f.Type, index+1)
	}

	switch f.Geometry.Type {
	case models.GeometryPoint:
		if f.Geometry.Point == nil {
			return false
		}
		clamped := clampCoord(*f.Geometry.Point, bp)
		f.Geometry.Point = &clamped
	case models.GeometryLineString:
		if len(f.Geometry.Line) < 2 {
			return false
		}
		for i, c := range f.Geometry.Line {
			f.Geometry.Line[i] = clampCoord(c, bp)
		}
	case models.GeometryPolygon:
		if len(f.Geometry.Rings) == 0 {
			return false
		}
		for ri, ring := range f.Geometry.Rings {
			if len(ring) < 3 {
				return false
			}
			for i, c := range ring {
				ring[i] = clampCoord(c, bp)
			}
			if ring[0] != ring[len(ring)-1] {
				ring = append(ring, ring[0])
			}
			f.Geometry.Rings[ri] = ring
		}
	default:
		return false
	}

	f.Metadata.AIGenerated = true
	if f.Metadata.DetectionMethod == "" {
		f.Metadata.DetectionMethod = "llm"
	}
	if f.Metadata.Size == "" {
		f.Metadata.Size = intent.Size
	}
	if f.Metadata.LocationPreference == "" {
		f.Metadata.LocationPreference = intent.LocationPreference
	}
	return true
}

// clampCoord snaps a coordinate into the blueprint bounds.
func clampCoord(c models.Coordinate, bp models.Blueprint) models.Coordinate {
	if c.X < 0 {
		c.X = 0
	}
	if c.X > bp.Width {
		c.X = bp.Width
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > bp.Height {
		c.Y = bp.Height
	}
	return c
}
