package geometry

import (
	"math"

	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"gonum.org/v1/gonum/floats"
)

// IsCollinear reports whether p1, p2 and p3 lie on one line. Grid
// coordinates are integers so the cross product test is exact.
func IsCollinear(p1, p2, p3 models.GridPoint) bool {
	return (p2.X-p1.X)*(p3.Y-p1.Y) == (p2.Y-p1.Y)*(p3.X-p1.X)
}

// IsCloser reports whether p2 is nearer to p1 than p3 is.
func IsCloser(p1, p2, p3 models.GridPoint) bool {
	return Distance(p1, p2) < Distance(p1, p3)
}

func Distance(a, b models.GridPoint) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func WorldDistance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// AsWorld converts a grid cell into world space.
func AsWorld(p models.GridPoint) models.Point {
	return models.Point{X: float64(p.X), Y: float64(p.Y)}
}

func PolylineLength(points []models.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	segments := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments[i-1] = WorldDistance(points[i-1], points[i])
	}
	return floats.Sum(segments)
}

// CumulativeLength returns the running arc length at every sample, starting
// at zero for the first one.
func CumulativeLength(points []models.Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	segments := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		segments[i] = WorldDistance(points[i-1], points[i])
	}
	return floats.CumSum(make([]float64, len(points)), segments)
}

// BoundsOf returns the axis aligned bounding box of points. The second
// return value is false for an empty slice.
func BoundsOf(points []models.Point) (models.Bounds, bool) {
	if len(points) == 0 {
		return models.Bounds{}, false
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return models.Bounds{
		Min: models.Point{X: floats.Min(xs), Y: floats.Min(ys)},
		Max: models.Point{X: floats.Max(xs), Y: floats.Max(ys)},
	}, true
}

// Extend grows b so that it contains p.
func Extend(b models.Bounds, p models.Point) models.Bounds {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}
