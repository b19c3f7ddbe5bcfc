package planner

import (
	"math"

	"cityagent/models"
)

// sizeMultipliers scale the per-type base size.
var sizeMultipliers = map[string]float64{
	models.SizeSmall:      0.5,
	models.SizeMedium:     1.0,
	models.SizeLarge:      1.5,
	models.SizeExtraLarge: 2.0,
}

// baseSizes are nominal half-extents per feature type, in blueprint units.
var baseSizes = map[string]float64{
	models.FeaturePark:     15,
	models.FeatureBuilding: 8,
	models.FeatureZone:     25,
	models.FeatureWater:    20,
}

const defaultBaseSize = 12

// roadLengthUnit is the linestring length at medium size.
const roadLengthUnit = 20.0

// featureSize resolves the nominal size for a type/size-class pair,
// floored to an integer.
func featureSize(ftype, size string) int {
	base, ok := baseSizes[ftype]
	if !ok {
		base = defaultBaseSize
	}
	mult, ok := sizeMultipliers[size]
	if !ok {
		mult = 1.0
	}
	return int(math.Floor(base * mult))
}

// Synthesize builds the geometry for a feature around its base
// coordinate. Roads become linestrings (horizontal when the location
// preference names a north/south edge, vertical otherwise); every other
// type gets a polygon whose silhouette depends on the type:
//
//	park     organic, 6-8 vertices, rough edge
//	water    organic, 8-12 vertices, smoother silhouette
//	zone     irregular, 5-7 vertices, roughest boundary
//	other    axis-aligned rectangle (buildings and unknown types)
//
// All vertices are clamped to the blueprint; polygon rings are closed by
// duplicating the first vertex.
func (g *Generator) Synthesize(ftype string, base models.Coordinate, size, locationPref string, bp models.Blueprint) models.Geometry {
	if bp.Width <= 0 || bp.Height <= 0 {
		bp.Width, bp.Height = defaultBlueprintW, defaultBlueprintH
	}
	extent := float64(featureSize(ftype, size))

	switch ftype {
	case models.FeatureRoad:
		return g.roadLine(base, size, locationPref, bp)
	case models.FeaturePark:
		return g.organicPolygon(base, extent, 6, 8, 20, extent/3, bp)
	case models.FeatureWater:
		return g.organicPolygon(base, extent, 8, 12, 15, extent/4, bp)
	case models.FeatureZone:
		return g.organicPolygon(base, extent, 5, 7, 30, extent, bp)
	default:
		return g.rectangularPolygon(base, extent, bp)
	}
}

// roadLine builds a two-point linestring through the base coordinate.
func (g *Generator) roadLine(base models.Coordinate, size, locationPref string, bp models.Blueprint) models.Geometry {
	mult, ok := sizeMultipliers[size]
	if !ok {
		mult = 1.0
	}
	half := roadLengthUnit * mult / 2

	// Roads near the north/south edges run along them; everything else
	// runs vertically.
	horizontal := locationPref == models.LocationNorth || locationPref == models.LocationSouth

	var a, b models.Coordinate
	if horizontal {
		a = models.Coordinate{X: int(math.Floor(float64(base.X) - half)), Y: base.Y}
		b = models.Coordinate{X: int(math.Floor(float64(base.X) + half)), Y: base.Y}
	} else {
		a = models.Coordinate{X: base.X, Y: int(math.Floor(float64(base.Y) - half))}
		b = models.Coordinate{X: base.X, Y: int(math.Floor(float64(base.Y) + half))}
	}

	return models.Geometry{
		Type: models.GeometryLineString,
		Line: []models.Coordinate{clamp(a, bp), clamp(b, bp)},
	}
}

// organicPolygon walks minVerts..maxVerts evenly spaced angles around the
// base, jittering each angle by up to angleJitterDeg degrees and each
// radius by up to radiusVariance, then closes the ring.
func (g *Generator) organicPolygon(base models.Coordinate, radius float64, minVerts, maxVerts int, angleJitterDeg, radiusVariance float64, bp models.Blueprint) models.Geometry {
	n := g.intBetween(minVerts, maxVerts)
	step := 2 * math.Pi / float64(n)
	jitterRad := angleJitterDeg * math.Pi / 180

	ring := make([]models.Coordinate, 0, n+1)
	for i := 0; i < n; i++ {
		angle := float64(i)*step + g.jitter(jitterRad)
		r := radius + g.jitter(radiusVariance)
		if r < 1 {
			r = 1
		}
		ring = append(ring, clamp(models.Coordinate{
			X: int(math.Floor(float64(base.X) + r*math.Cos(angle))),
			Y: int(math.Floor(float64(base.Y) + r*math.Sin(angle))),
		}, bp))
	}
	ring = append(ring, ring[0])

	return models.Geometry{Type: models.GeometryPolygon, Rings: [][]models.Coordinate{ring}}
}

// rectJitter is the half-extent wobble applied to rectangles.
const rectJitter = 2.0

// rectangularPolygon builds an axis-aligned rectangle around the base,
// the two half-extents jittered independently.
func (g *Generator) rectangularPolygon(base models.Coordinate, halfExtent float64, bp models.Blueprint) models.Geometry {
	hw := halfExtent + g.jitter(rectJitter)
	hh := halfExtent + g.jitter(rectJitter)
	if hw < 1 {
		hw = 1
	}
	if hh < 1 {
		hh = 1
	}

	x0 := int(math.Floor(float64(base.X) - hw))
	x1 := int(math.Floor(float64(base.X) + hw))
	y0 := int(math.Floor(float64(base.Y) - hh))
	y1 := int(math.Floor(float64(base.Y) + hh))

	ring := []models.Coordinate{
		clamp(models.Coordinate{X: x0, Y: y0}, bp),
		clamp(models.Coordinate{X: x1, Y: y0}, bp),
		clamp(models.Coordinate{X: x1, Y: y1}, bp),
		clamp(models.Coordinate{X: x0, Y: y1}, bp),
	}
	ring = append(ring, ring[0])

	return models.Geometry{Type: models.GeometryPolygon, Rings: [][]models.Coordinate{ring}}
}

// PointGeometry wraps a single coordinate.
func PointGeometry(c models.Coordinate) models.Geometry {
	return models.Geometry{Type: models.GeometryPoint, Point: &c}
}
