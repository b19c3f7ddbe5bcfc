package planner

import (
	"testing"

	"cityagent/models"
)

func TestFeatureSizeTable(t *testing.T) {
	tests := []struct {
		name  string
		ftype string
		size  string
		want  int
	}{
		{"small park", models.FeaturePark, models.SizeSmall, 7},
		{"medium park", models.FeaturePark, models.SizeMedium, 15},
		{"large park", models.FeaturePark, models.SizeLarge, 22},
		{"extra large park", models.FeaturePark, models.SizeExtraLarge, 30},
		{"large building", models.FeatureBuilding, models.SizeLarge, 12},
		{"medium zone", models.FeatureZone, models.SizeMedium, 25},
		{"small water", models.FeatureWater, models.SizeSmall, 10},
		{"unknown type uses default base", "monument", models.SizeMedium, 12},
		{"unknown size uses medium", models.FeaturePark, "gigantic", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := featureSize(tt.ftype, tt.size); got != tt.want {
				t.Errorf("featureSize(%q, %q) = %d, want %d", tt.ftype, tt.size, got, tt.want)
			}
		})
	}
}

func TestPolygonRingsAreClosed(t *testing.T) {
	bp := testBlueprint()
	g := NewGenerator(21)
	center := models.Coordinate{X: 50, Y: 50}

	for _, ftype := range []string{
		models.FeaturePark, models.FeatureWater, models.FeatureZone,
		models.FeatureBuilding, "plaza",
	} {
		for i := 0; i < 50; i++ {
			geom := g.Synthesize(ftype, center, models.SizeMedium, models.LocationCenter, bp)
			if geom.Type != models.GeometryPolygon {
				t.Fatalf("%s: geometry type = %q, want polygon", ftype, geom.Type)
			}
			if !geom.Closed() {
				t.Fatalf("%s: ring not closed: %v", ftype, geom.Rings)
			}
		}
	}
}

func TestPolygonVertexCounts(t *testing.T) {
	bp := testBlueprint()
	g := NewGenerator(33)
	center := models.Coordinate{X: 50, Y: 50}

	tests := []struct {
		ftype    string
		min, max int // ring length including the closing duplicate
	}{
		{models.FeaturePark, 7, 9},
		{models.FeatureWater, 9, 13},
		{models.FeatureZone, 6, 8},
		{models.FeatureBuilding, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.ftype, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				geom := g.Synthesize(tt.ftype, center, models.SizeMedium, models.LocationCenter, bp)
				n := len(geom.Rings[0])
				if n < tt.min || n > tt.max {
					t.Fatalf("ring length %d outside [%d, %d]", n, tt.min, tt.max)
				}
			}
		})
	}
}

func TestSynthesizeStaysInsideBlueprint(t *testing.T) {
	bp := testBlueprint()
	g := NewGenerator(55)

	// Bases near the edges force clamping.
	bases := []models.Coordinate{
		{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 100, Y: 0}, {X: 50, Y: 50},
	}
	for _, ftype := range []string{models.FeaturePark, models.FeatureWater, models.FeatureZone, models.FeatureBuilding, models.FeatureRoad} {
		for _, base := range bases {
			geom := g.Synthesize(ftype, base, models.SizeExtraLarge, models.LocationNorth, bp)
			for _, c := range geom.Coordinates() {
				if !bp.Contains(c) {
					t.Fatalf("%s at %+v produced out-of-bounds coordinate %+v", ftype, base, c)
				}
			}
		}
	}
}

func TestRoadOrientation(t *testing.T) {
	bp := testBlueprint()
	g := NewGenerator(77)
	base := models.Coordinate{X: 50, Y: 50}

	tests := []struct {
		name       string
		pref       string
		horizontal bool
	}{
		{"north runs along the edge", models.LocationNorth, true},
		{"south runs along the edge", models.LocationSouth, true},
		{"east runs vertically", models.LocationEast, false},
		{"west runs vertically", models.LocationWest, false},
		{"center runs vertically", models.LocationCenter, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom := g.Synthesize(models.FeatureRoad, base, models.SizeMedium, tt.pref, bp)
			if geom.Type != models.GeometryLineString {
				t.Fatalf("geometry type = %q, want linestring", geom.Type)
			}
			if len(geom.Line) != 2 {
				t.Fatalf("linestring has %d points, want 2", len(geom.Line))
			}
			a, b := geom.Line[0], geom.Line[1]
			if tt.horizontal && a.Y != b.Y {
				t.Errorf("expected horizontal road, got %+v -> %+v", a, b)
			}
			if !tt.horizontal && a.X != b.X {
				t.Errorf("expected vertical road, got %+v -> %+v", a, b)
			}
		})
	}
}

func TestRoadLengthScalesWithSize(t *testing.T) {
	bp := models.Blueprint{Width: 500, Height: 500}
	g := NewGenerator(13)
	base := models.Coordinate{X: 250, Y: 250}

	tests := []struct {
		size string
		want int
	}{
		{models.SizeSmall, 10},
		{models.SizeMedium, 20},
		{models.SizeLarge, 30},
		{models.SizeExtraLarge, 40},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			geom := g.Synthesize(models.FeatureRoad, base, tt.size, models.LocationCenter, bp)
			length := geom.Line[1].Y - geom.Line[0].Y
			if length != tt.want {
				t.Errorf("road length = %d, want %d", length, tt.want)
			}
		})
	}
}

func TestSynthesizeIsDeterministicPerSeed(t *testing.T) {
	bp := testBlueprint()
	base := models.Coordinate{X: 50, Y: 50}

	a := NewGenerator(888)
	b := NewGenerator(888)
	for i := 0; i < 20; i++ {
		ga := a.Synthesize(models.FeaturePark, base, models.SizeLarge, models.LocationNorth, bp)
		gb := b.Synthesize(models.FeaturePark, base, models.SizeLarge, models.LocationNorth, bp)
		if len(ga.Rings[0]) != len(gb.Rings[0]) {
			t.Fatalf("same seed diverged: %d vs %d vertices", len(ga.Rings[0]), len(gb.Rings[0]))
		}
		for j := range ga.Rings[0] {
			if ga.Rings[0][j] != gb.Rings[0][j] {
				t.Fatalf("same seed diverged at vertex %d: %+v vs %+v", j, ga.Rings[0][j], gb.Rings[0][j])
			}
		}
	}
}

func TestPointGeometry(t *testing.T) {
	c := models.Coordinate{X: 3, Y: 4}
	geom := PointGeometry(c)
	if geom.Type != models.GeometryPoint || geom.Point == nil || *geom.Point != c {
		t.Fatalf("unexpected point geometry: %+v", geom)
	}
}
