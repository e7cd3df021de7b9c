package stroke

import (
	"math"

	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
)

// segmentDistance is the distance from p to the segment s-e.
func segmentDistance(p, s, e models.Point) float64 {
	dx, dy := e.X-s.X, e.Y-s.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return geometry.WorldDistance(p, s)
	}
	t := ((p.X-s.X)*dx + (p.Y-s.Y)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return geometry.WorldDistance(p, models.Point{X: s.X + t*dx, Y: s.Y + t*dy})
}

// Simplify drops points from a polyline (Ramer-Douglas-Peucker) so that every
// removed point lies within tol of the returned path. The first and last
// points are always kept.
func Simplify(points []models.Point, tol float64) []models.Point {
	if len(points) < 3 {
		out := make([]models.Point, len(points))
		copy(out, points)
		return out
	}

	worst := 0
	worstD := 0.0
	first, last := points[0], points[len(points)-1]
	for i := 1; i < len(points)-1; i++ {
		if d := segmentDistance(points[i], first, last); d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []models.Point{first, last}
	}

	left := Simplify(points[:worst+1], tol)
	right := Simplify(points[worst:], tol)
	return append(left, right[1:]...)
}
