package stroke

import (
	"errors"
	"math"

	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
)

var ErrDegenerateStroke = errors.New("stroke: bounding box has no width")

const minWidth = 1e-9

// Normalize maps samples into template space: the horizontal extent of the
// bounding box becomes [0, gridSize-1] and the box minimum becomes the
// origin. Both axes share the same scale so the aspect ratio is preserved.
func Normalize(samples []models.Point, bounds models.Bounds, gridSize int) ([]models.Point, float64, error) {
	width := bounds.Width()
	if math.IsNaN(width) || width <= minWidth {
		return nil, 0, ErrDegenerateStroke
	}
	scale := float64(gridSize-1) / width

	normalized := make([]models.Point, len(samples))
	for i, p := range samples {
		normalized[i] = models.Point{
			X: (p.X - bounds.Min.X) * scale,
			Y: (p.Y - bounds.Min.Y) * scale,
		}
	}
	return normalized, scale, nil
}

// Recorder collects the samples of one stroke while the pointer is held
// down, dropping samples that did not move far enough from the previous one.
type Recorder struct {
	minDelta float64
	samples  []models.Point
	bounds   models.Bounds
	drawing  bool
}

func NewRecorder(minDelta float64) *Recorder {
	return &Recorder{minDelta: minDelta}
}

// Begin discards any previous stroke and starts a new one at p.
func (r *Recorder) Begin(p models.Point) {
	r.samples = r.samples[:0]
	r.bounds = models.Bounds{Min: p, Max: p}
	r.drawing = true
	r.Add(p)
}

// Add appends p to the current stroke. It reports whether the sample was
// kept.
func (r *Recorder) Add(p models.Point) bool {
	if !r.drawing {
		return false
	}
	if len(r.samples) > 0 {
		last := r.samples[len(r.samples)-1]
		if geometry.WorldDistance(p, last) <= r.minDelta {
			return false
		}
	}
	r.samples = append(r.samples, p)
	r.bounds = geometry.Extend(r.bounds, p)
	return true
}

// End finishes the stroke and hands over its samples and bounds.
func (r *Recorder) End() ([]models.Point, models.Bounds) {
	r.drawing = false
	samples := make([]models.Point, len(r.samples))
	copy(samples, r.samples)
	return samples, r.bounds
}

func (r *Recorder) Drawing() bool { return r.drawing }

func (r *Recorder) Len() int { return len(r.samples) }
