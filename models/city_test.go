package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCityDataAppendCategorizes(t *testing.T) {
	var city CityData
	city.Append([]Feature{
		{ID: "z1", Type: FeatureZone},
		{ID: "r1", Type: FeatureRoad},
		{ID: "b1", Type: FeatureBuilding},
		{ID: "p1", Type: FeaturePark},
		{ID: "w1", Type: FeatureWater},
		{ID: "a1", Type: "architecture"},
		{ID: "s1", Type: "clinic"},
	})

	if len(city.Zones) != 1 || len(city.Roads) != 1 || len(city.Buildings) != 1 ||
		len(city.Parks) != 1 || len(city.WaterBodies) != 1 ||
		len(city.Architectures) != 1 || len(city.Services) != 1 {
		t.Fatalf("unexpected categorization: %+v", city)
	}
	if city.Count() != 7 {
		t.Errorf("count = %d, want 7", city.Count())
	}
	if len(city.All()) != 7 {
		t.Errorf("All returned %d features, want 7", len(city.All()))
	}
}

func TestCityDataAppendIsAdditive(t *testing.T) {
	var city CityData
	batch := []Feature{{ID: "p1", Type: FeaturePark}, {ID: "p2", Type: FeaturePark}}

	city.Append(batch)
	city.Append(batch)

	// Same ids appended twice stay twice: no dedup, no overwrite.
	if len(city.Parks) != 4 {
		t.Fatalf("parks = %d, want 4", len(city.Parks))
	}
}

func TestParseCityData(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
	}{
		{"empty string", "", 0},
		{"empty object", "{}", 0},
		{"malformed json treated as empty", "{broken", 0},
		{"valid city", `{"parks":[{"id":"p1","type":"park"}],"roads":[{"id":"r1","type":"road"}]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := ParseCityData(tt.raw)
			if city.Count() != tt.wantCount {
				t.Errorf("count = %d, want %d", city.Count(), tt.wantCount)
			}
		})
	}
}

func TestGeometryClosed(t *testing.T) {
	closed := Geometry{
		Type: GeometryPolygon,
		Rings: [][]Coordinate{{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
		}},
	}
	if !closed.Closed() {
		t.Error("closed ring reported as open")
	}

	open := Geometry{
		Type: GeometryPolygon,
		Rings: [][]Coordinate{{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		}},
	}
	if open.Closed() {
		t.Error("open ring reported as closed")
	}

	line := Geometry{Type: GeometryLineString, Line: []Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	if !line.Closed() {
		t.Error("non-polygon geometries are trivially closed")
	}
}

func TestGeometryWireShape(t *testing.T) {
	point := Geometry{Type: GeometryPoint, Point: &Coordinate{X: 3, Y: 7}}
	raw, err := json.Marshal(point)
	if err != nil {
		t.Fatalf("marshal point: %v", err)
	}
	if !strings.Contains(string(raw), `"coordinates"`) {
		t.Errorf("wire form %s missing coordinates key", raw)
	}
	if strings.Contains(string(raw), `"rings"`) {
		t.Errorf("wire form %s leaks variant field names", raw)
	}

	var decoded Geometry
	if err := json.Unmarshal([]byte(`{"type":"polygon","coordinates":[[{"x":0,"y":0},{"x":4,"y":0},{"x":4,"y":4},{"x":0,"y":0}]]}`), &decoded); err != nil {
		t.Fatalf("unmarshal polygon: %v", err)
	}
	if decoded.Type != GeometryPolygon || len(decoded.Rings) != 1 || len(decoded.Rings[0]) != 4 {
		t.Errorf("decoded polygon = %+v", decoded)
	}
}

func TestBlueprintContains(t *testing.T) {
	bp := Blueprint{Width: 100, Height: 50}

	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"origin", Coordinate{0, 0}, true},
		{"far corner inclusive", Coordinate{100, 50}, true},
		{"past width", Coordinate{101, 10}, false},
		{"negative", Coordinate{-1, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bp.Contains(tt.c); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}
