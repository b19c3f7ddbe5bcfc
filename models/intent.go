package models

// Intent kinds.
const (
	IntentAddFeature         = "add_feature"
	IntentGetRecommendations = "get_recommendations"
)

// Size classes.
const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extra_large"
)

// Location preferences.
const (
	LocationCenter = "center"
	LocationNorth  = "north"
	LocationSouth  = "south"
	LocationEast   = "east"
	LocationWest   = "west"
)

// Intent is the structured interpretation of a free-text planning request.
type Intent struct {
	IntentKind         string   `json:"intent"`
	FeatureType        string   `json:"feature_type"`
	FeatureSubtype     string   `json:"feature_subtype"`
	Size               string   `json:"size"`
	LocationPreference string   `json:"location_preference"`
	Quantity           int      `json:"quantity"`
	GeometryKind       string   `json:"geometry_kind"`
	Constraints        []string `json:"constraints,omitempty"`
	Priority           string   `json:"priority"`
}

// IsNeutral reports whether the intent is the default produced for text
// that matched no feature keywords. Neutral intents skip generation.
func (in Intent) IsNeutral() bool {
	return in.IntentKind == IntentGetRecommendations
}
