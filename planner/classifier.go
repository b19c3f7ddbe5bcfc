package planner

import (
	"strings"

	"cityagent/models"
)

// featureRule maps prompt keywords to a resolved feature dimension set.
// Rules are checked in order and the first keyword hit wins, so the table
// order IS the classification precedence: park before residential, roads
// before generic buildings, water last.
type featureRule struct {
	keywords []string
	ftype    string
	subtype  string
	geometry string
}

var featureRules = []featureRule{
	{[]string{"park", "green space", "garden", "playground"}, models.FeaturePark, "public", models.GeometryPolygon},
	{[]string{"residential", "housing", "homes", "apartment"}, models.FeatureZone, "residential", models.GeometryPolygon},
	{[]string{"commercial", "shop", "store", "retail", "business"}, models.FeatureZone, "commercial", models.GeometryPolygon},
	{[]string{"road", "street", "highway", "avenue"}, models.FeatureRoad, "local", models.GeometryLineString},
	{[]string{"building", "tower", "office", "school", "hospital"}, models.FeatureBuilding, "general", models.GeometryPolygon},
	{[]string{"water", "lake", "pond", "river", "canal"}, models.FeatureWater, "lake", models.GeometryPolygon},
}

// keywordRule maps keywords to a single dimension value.
type keywordRule struct {
	keywords []string
	value    string
}

var sizeRules = []keywordRule{
	{[]string{"extra large", "enormous"}, models.SizeExtraLarge},
	{[]string{"large", "huge", "massive", "big"}, models.SizeLarge},
	{[]string{"small", "tiny", "little"}, models.SizeSmall},
}

var locationRules = []keywordRule{
	{[]string{"center", "centre", "middle", "downtown"}, models.LocationCenter},
	{[]string{"north"}, models.LocationNorth},
	{[]string{"south"}, models.LocationSouth},
	{[]string{"east"}, models.LocationEast},
	{[]string{"west"}, models.LocationWest},
}

type quantityRule struct {
	keywords []string
	value    int
}

var quantityRules = []quantityRule{
	{[]string{"several", "multiple", "some"}, 3},
	{[]string{"many", "lots"}, 5},
}

// Classify turns free text into a structured Intent. It never fails:
// prompts matching no feature keywords yield the neutral
// get_recommendations intent. Matching is case-insensitive substring
// matching, dimension by dimension, with no randomness.
func Classify(prompt string, constraints []string) models.Intent {
	text := strings.ToLower(prompt)

	intent := models.Intent{
		IntentKind:         models.IntentGetRecommendations,
		FeatureType:        models.FeatureZone,
		FeatureSubtype:     "mixed_use",
		Size:               models.SizeMedium,
		LocationPreference: models.LocationCenter,
		Quantity:           1,
		GeometryKind:       models.GeometryPolygon,
		Constraints:        constraints,
		Priority:           "medium",
	}

	for _, rule := range featureRules {
		if matchAny(text, rule.keywords) {
			intent.IntentKind = models.IntentAddFeature
			intent.FeatureType = rule.ftype
			intent.FeatureSubtype = rule.subtype
			intent.GeometryKind = rule.geometry
			break
		}
	}

	for _, rule := range sizeRules {
		if matchAny(text, rule.keywords) {
			intent.Size = rule.value
			break
		}
	}

	for _, rule := range locationRules {
		if matchAny(text, rule.keywords) {
			intent.LocationPreference = rule.value
			break
		}
	}

	for _, rule := range quantityRules {
		if matchAny(text, rule.keywords) {
			intent.Quantity = rule.value
			break
		}
	}

	return intent
}

func matchAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
