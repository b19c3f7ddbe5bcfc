package planner

import (
	"fmt"
	"strings"

	"cityagent/models"
)

// RationaleContext is the lightweight project context the explanation can
// reference. All fields are optional.
type RationaleContext struct {
	CityType      string
	Constraints   []string
	ExistingCount int
}

// Rationale renders the explanation for a set of generated features. It
// is a deterministic template: a base clause naming subtype, type and
// count, a size clause when the size is notable, a location clause when
// the placement is off-center, and closing boilerplate. It always
// returns a non-empty string and never fails.
func Rationale(intent models.Intent, features []models.Feature, ctx RationaleContext) string {
	var b strings.Builder

	label := strings.TrimSpace(subtypeLabel(intent.FeatureSubtype) + " " + intent.FeatureType)
	if intent.IsNeutral() || len(features) == 0 {
		b.WriteString("I reviewed the request but did not add any features")
		if ctx.ExistingCount > 0 {
			fmt.Fprintf(&b, "; the plan already has %d placed elements", ctx.ExistingCount)
		}
		b.WriteString(". Try naming a feature such as a park, road, building or residential zone.")
		return b.String()
	}

	if len(features) == 1 {
		fmt.Fprintf(&b, "I added 1 %s to the plan.", label)
	} else {
		fmt.Fprintf(&b, "I added %d %s features to the plan.", len(features), label)
	}

	switch intent.Size {
	case models.SizeLarge, models.SizeExtraLarge:
		fmt.Fprintf(&b, " Each one is sized %s to give the surrounding area room to grow.", intent.Size)
	case models.SizeSmall:
		b.WriteString(" Each one is sized small to fit between existing elements.")
	}

	if intent.LocationPreference != models.LocationCenter {
		fmt.Fprintf(&b, " Placement favors the %s side of the blueprint, as requested.", intent.LocationPreference)
	}

	if ctx.CityType != "" {
		fmt.Fprintf(&b, " The layout stays consistent with the %s project type.", ctx.CityType)
	}
	b.WriteString(" You can move or resize any of these features afterwards.")

	return b.String()
}

// subtypeLabel keeps subtype words readable mid-sentence
// ("mixed_use" -> "mixed use").
func subtypeLabel(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
