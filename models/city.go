package models

import "encoding/json"

// Geometry kind tags used on the wire.
const (
	GeometryPoint      = "point"
	GeometryLineString = "linestring"
	GeometryPolygon    = "polygon"
)

// Feature type constants. Types outside this set are still accepted and
// fall into the generic "services" collection when merged.
const (
	FeatureZone     = "zone"
	FeatureRoad     = "road"
	FeatureBuilding = "building"
	FeaturePark     = "park"
	FeatureWater    = "water"
)

// Coordinate is a point on the blueprint plane. The blueprint uses a
// bottom-left origin; coordinates are non-negative integers bounded by
// the blueprint width/height.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Geometry is a tagged geometry variant. Exactly one of Point, Line or
// Rings is populated, according to Type:
//   - point:      Point
//   - linestring: Line (ordered, at least 2 coordinates)
//   - polygon:    Rings (outer ring first, then optional holes; every
//     ring is closed, first coordinate == last coordinate)
//
// On the wire it serializes as {"type": ..., "coordinates": ...} with the
// coordinates shape following the type.
type Geometry struct {
	Type  string
	Point *Coordinate
	Line  []Coordinate
	Rings [][]Coordinate
}

// geometryWire is the {type, coordinates} wire form.
type geometryWire struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

// MarshalJSON emits the {type, coordinates} wire shape.
func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.Type {
	case GeometryPoint:
		coords = g.Point
	case GeometryLineString:
		coords = g.Line
	case GeometryPolygon:
		coords = g.Rings
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geometryWire{Type: g.Type, Coordinates: raw})
}

// UnmarshalJSON accepts the {type, coordinates} wire shape. An unknown
// type keeps its tag with no coordinates; callers validate downstream.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var wire geometryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	g.Type = wire.Type
	g.Point, g.Line, g.Rings = nil, nil, nil
	if len(wire.Coordinates) == 0 || string(wire.Coordinates) == "null" {
		return nil
	}
	switch wire.Type {
	case GeometryPoint:
		return json.Unmarshal(wire.Coordinates, &g.Point)
	case GeometryLineString:
		return json.Unmarshal(wire.Coordinates, &g.Line)
	case GeometryPolygon:
		return json.Unmarshal(wire.Coordinates, &g.Rings)
	}
	return nil
}

// Closed reports whether every polygon ring starts and ends on the same
// coordinate. Non-polygon geometries are trivially closed.
func (g Geometry) Closed() bool {
	if g.Type != GeometryPolygon {
		return true
	}
	for _, ring := range g.Rings {
		if len(ring) < 4 || ring[0] != ring[len(ring)-1] {
			return false
		}
	}
	return true
}

// Coordinates returns every coordinate of the geometry regardless of kind.
func (g Geometry) Coordinates() []Coordinate {
	switch g.Type {
	case GeometryPoint:
		if g.Point == nil {
			return nil
		}
		return []Coordinate{*g.Point}
	case GeometryLineString:
		return g.Line
	case GeometryPolygon:
		var all []Coordinate
		for _, ring := range g.Rings {
			all = append(all, ring...)
		}
		return all
	}
	return nil
}

// FeatureMetadata tags a generated feature with its provenance.
// Extra carries any additional keys the external collaborator returns.
type FeatureMetadata struct {
	AIGenerated        bool           `json:"aiGenerated"`
	Confidence         float64        `json:"confidence"`
	DetectionMethod    string         `json:"detectionMethod"`
	Size               string         `json:"size,omitempty"`
	LocationPreference string         `json:"locationPreference,omitempty"`
	Extra              map[string]any `json:"extra,omitempty"`
}

// Feature is one placed city element.
type Feature struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Subtype     string          `json:"subtype"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Geometry    Geometry        `json:"geometry"`
	Metadata    FeatureMetadata `json:"metadata"`
}

// Blueprint is the bounded rectangular plane features are placed on.
type Blueprint struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit,omitempty"`
}

// Contains reports whether c lies inside [0,width] x [0,height].
func (b Blueprint) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X <= b.Width && c.Y >= 0 && c.Y <= b.Height
}

// CityData is the per-project aggregate of placed features, grouped by
// category. Appends are additive: merging never removes or overwrites
// previously stored features.
type CityData struct {
	Zones         []Feature      `json:"zones,omitempty"`
	Roads         []Feature      `json:"roads,omitempty"`
	Buildings     []Feature      `json:"buildings,omitempty"`
	Parks         []Feature      `json:"parks,omitempty"`
	WaterBodies   []Feature      `json:"waterBodies,omitempty"`
	Services      []Feature      `json:"services,omitempty"`
	Architectures []Feature      `json:"architectures,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
}

// Append adds features to their category collections.
func (cd *CityData) Append(features []Feature) {
	for _, f := range features {
		switch f.Type {
		case FeatureZone:
			cd.Zones = append(cd.Zones, f)
		case FeatureRoad:
			cd.Roads = append(cd.Roads, f)
		case FeatureBuilding:
			cd.Buildings = append(cd.Buildings, f)
		case FeaturePark:
			cd.Parks = append(cd.Parks, f)
		case FeatureWater:
			cd.WaterBodies = append(cd.WaterBodies, f)
		case "architecture":
			cd.Architectures = append(cd.Architectures, f)
		default:
			cd.Services = append(cd.Services, f)
		}
	}
}

// All returns every stored feature across categories.
func (cd CityData) All() []Feature {
	var all []Feature
	for _, group := range [][]Feature{
		cd.Zones, cd.Roads, cd.Buildings, cd.Parks,
		cd.WaterBodies, cd.Services, cd.Architectures,
	} {
		all = append(all, group...)
	}
	return all
}

// Count returns the total number of stored features.
func (cd CityData) Count() int {
	return len(cd.Zones) + len(cd.Roads) + len(cd.Buildings) + len(cd.Parks) +
		len(cd.WaterBodies) + len(cd.Services) + len(cd.Architectures)
}

// Project is the persisted planning project a request runs against.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CityType    string    `json:"city_type,omitempty"`
	Constraints []string  `json:"constraints,omitempty"`
	Blueprint   Blueprint `json:"blueprint"`
	// CityData is the raw JSON document; malformed content is treated as
	// an empty city rather than an error.
	CityData string `json:"city_data,omitempty"`
}
