package planner

import (
	"math"

	"cityagent/models"
)

// Placement tuning, in blueprint units. Jitter ranges are per anchor
// region; the iteration step spreads features placed in the same batch
// apart laterally. None of this is true collision avoidance, it only
// reduces overlap.
const (
	centerJitter      = 10.0 // both axes around the blueprint midpoint
	lateralJitter     = 20.0 // along the edge for north/south/east/west
	edgeBiasMin       = 5.0  // push toward the named edge, at least
	edgeBiasMax       = 11.0 // push toward the named edge, at most
	fallbackInset     = 10.0 // border kept clear on uniform placement
	iterationStep     = 15.0 // lateral offset per batch iteration
	iterationJitter   = 5.0  // extra scatter on the batch offset
	defaultBlueprintW = 100
	defaultBlueprintH = 100
)

// Place resolves one base coordinate for a feature. placedCount is the
// number of features already on the blueprint (existing plus earlier
// iterations of this batch); iteration is the 0-based index within the
// current batch. Anchors derive from the midpoints of the blueprint
// actually passed in, not a fixed 100x100 table. Coordinates are floored
// and clamped to the blueprint.
func (g *Generator) Place(pref string, placedCount, iteration int, bp models.Blueprint) models.Coordinate {
	if bp.Width <= 0 || bp.Height <= 0 {
		bp.Width, bp.Height = defaultBlueprintW, defaultBlueprintH
	}

	w, h := float64(bp.Width), float64(bp.Height)
	midX, midY := w/2, h/2

	var x, y float64
	switch pref {
	case models.LocationCenter:
		x = midX + g.jitter(centerJitter)
		y = midY + g.jitter(centerJitter)
	case models.LocationNorth:
		x = midX + g.jitter(lateralJitter)
		y = midY + g.between(edgeBiasMin, edgeBiasMax)
	case models.LocationSouth:
		x = midX + g.jitter(lateralJitter)
		y = midY - g.between(edgeBiasMin, edgeBiasMax)
	case models.LocationEast:
		x = midX + g.between(edgeBiasMin, edgeBiasMax)
		y = midY + g.jitter(lateralJitter)
	case models.LocationWest:
		x = midX - g.between(edgeBiasMin, edgeBiasMax)
		y = midY + g.jitter(lateralJitter)
	default:
		x = g.between(fallbackInset, w-fallbackInset)
		y = g.between(fallbackInset, h-fallbackInset)
	}

	if iteration > 0 {
		x += float64(iteration)*iterationStep + g.jitter(iterationJitter)
	}

	return clamp(models.Coordinate{X: int(math.Floor(x)), Y: int(math.Floor(y))}, bp)
}

// clamp snaps a coordinate into [0,width] x [0,height].
func clamp(c models.Coordinate, bp models.Blueprint) models.Coordinate {
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
