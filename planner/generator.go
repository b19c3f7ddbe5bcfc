// Package planner implements the local rule-based planning pipeline:
// keyword intent classification, anchor-based placement, procedural
// geometry synthesis and templated rationale text. It has no external
// dependencies and is the path the orchestrator degrades to when the
// optional AI collaborator is unavailable.
package planner

import (
	"math/rand"

	"cityagent/models"
)

// Generator produces placed features. All randomness flows through the
// injected rand source so a fixed seed reproduces an identical layout.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded deterministically.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate runs the placement -> geometry -> assembly loop for
// intent.Quantity features. The accumulator of already-placed features is
// threaded through each iteration so later placements are offset from
// earlier ones; existing is never mutated.
func (g *Generator) Generate(intent models.Intent, existing []models.Feature, bp models.Blueprint) []models.Feature {
	acc := make([]models.Feature, 0, intent.Quantity)
	for i := 0; i < intent.Quantity; i++ {
		base := g.Place(intent.LocationPreference, len(existing)+len(acc), i, bp)
		geom := g.Synthesize(intent.FeatureType, base, intent.Size, intent.LocationPreference, bp)
		acc = append(acc, AssembleFeature(intent, geom, i))
	}
	return acc
}

// jitter returns a uniform value in [-spread, spread).
func (g *Generator) jitter(spread float64) float64 {
	return (g.rng.Float64()*2 - 1) * spread
}

// between returns a uniform value in [lo, hi).
func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
