package planner

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cityagent/models"
)

// AssembleFeature combines an intent, a synthesized geometry and the
// 0-based sequence index into a canonical Feature.
//
// The id is {type}_{unix-ms}_{random-suffix}: unique enough within one
// process run, not cryptographically guaranteed. Collisions across runs
// or replicas are possible; the merge path tolerates them because it
// never deduplicates.
func AssembleFeature(intent models.Intent, geom models.Geometry, index int) models.Feature {
	id := fmt.Sprintf("%s_%d_%04d", intent.FeatureType, time.Now().UnixMilli(), rand.Intn(10000))
	name := fmt.Sprintf("%s %s %d", capitalize(intent.FeatureSubtype), capitalize(intent.FeatureType), index+1)

	return models.Feature{
		ID:          id,
		Type:        intent.FeatureType,
		Subtype:     intent.FeatureSubtype,
		Name:        name,
		Description: fmt.Sprintf("%s %s generated from a planning request", intent.Size, intent.FeatureType),
		Geometry:    geom,
		Metadata: models.FeatureMetadata{
			AIGenerated:        true,
			Confidence:         0.8,
			DetectionMethod:    "planner_agent",
			Size:               intent.Size,
			LocationPreference: intent.LocationPreference,
		},
	}
}

// capitalize upper-cases the first letter and normalizes snake_case
// subtypes ("mixed_use" -> "Mixed use") for display names.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
