package recognition

import (
	"math"

	"github.com/Ellandq/Wizard-Duelling/internal/catalog"
	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/Ellandq/Wizard-Duelling/internal/stroke"
)

// Stage identifies the step of the pipeline that rejected a template.
type Stage int

const (
	StageNone Stage = iota
	StageLength
	StageEndpoints
	StageKeyPoints
	StageSegments
	StageVertices
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageLength:
		return "length"
	case StageEndpoints:
		return "endpoints"
	case StageKeyPoints:
		return "key points"
	case StageSegments:
		return "segments"
	case StageVertices:
		return "vertices"
	}
	return "unknown"
}

// Drawn is a stroke prepared for matching. It is built once per recognition
// call and shared read-only by every stage.
type Drawn struct {
	Samples []models.Point
	Scale   float64
	Length  float64

	cumulative []float64
}

// Verdict is the outcome of matching one template against a stroke.
type Verdict struct {
	Template           *pattern.Template
	Rejected           Stage
	LengthLikelihood   float64
	EndpointLikelihood float64
	// Indices holds the sample matched to each key point, as far as
	// matching got.
	Indices []int
}

func (v Verdict) Matched() bool { return v.Rejected == StageNone }

type Recognizer struct {
	cfg Config
}

func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Prepare normalizes samples into template space. It returns false when the
// stroke is too short or its bounding box has no width.
func (r *Recognizer) Prepare(samples []models.Point, bounds models.Bounds) (*Drawn, bool) {
	if len(samples) < 2 {
		return nil, false
	}
	normalized, scale, err := stroke.Normalize(samples, bounds, r.cfg.GridSize)
	if err != nil {
		return nil, false
	}

	d := &Drawn{
		Samples:    normalized,
		Scale:      scale,
		cumulative: geometry.CumulativeLength(normalized),
	}
	if r.cfg.LengthMode == LengthSampled {
		d.Length = float64(len(normalized)) * r.cfg.StepLength * scale
	} else {
		d.Length = d.cumulative[len(d.cumulative)-1]
	}
	return d, true
}

// Recognize returns the first template of c, in catalog order, that survives
// every stage, or nil when none does. Malformed input is never an error; it
// simply does not match.
func (r *Recognizer) Recognize(c *catalog.Catalog, samples []models.Point, bounds models.Bounds) *pattern.Template {
	d, ok := r.Prepare(samples, bounds)
	if !ok {
		return nil
	}
	for _, t := range c.Templates() {
		if r.Evaluate(t, d).Matched() {
			return t
		}
	}
	return nil
}

// EvaluateAll runs every template of c through the pipeline and returns one
// verdict per template. It returns nil when the stroke cannot be prepared.
func (r *Recognizer) EvaluateAll(c *catalog.Catalog, samples []models.Point, bounds models.Bounds) []Verdict {
	d, ok := r.Prepare(samples, bounds)
	if !ok {
		return nil
	}
	templates := c.Templates()
	verdicts := make([]Verdict, 0, len(templates))
	for _, t := range templates {
		verdicts = append(verdicts, r.Evaluate(t, d))
	}
	return verdicts
}

// Evaluate runs the stages in order of cost and stops at the first one that
// rejects t.
func (r *Recognizer) Evaluate(t *pattern.Template, d *Drawn) Verdict {
	v := Verdict{Template: t}
	if t == nil || t.Len() < 2 {
		v.Rejected = StageKeyPoints
		return v
	}

	v.LengthLikelihood = lengthLikelihood(t.TotalLength(), d.Length, r.cfg.LengthTolerance)
	if v.LengthLikelihood < r.cfg.MinLikelihood {
		v.Rejected = StageLength
		return v
	}

	v.EndpointLikelihood = r.endpointLikelihood(t, d)
	if v.EndpointLikelihood < r.cfg.MinLikelihood {
		v.Rejected = StageEndpoints
		return v
	}

	indices, ok := r.matchKeyPoints(t, d)
	v.Indices = indices
	if !ok || !strictlyIncreasing(indices) {
		v.Rejected = StageKeyPoints
		return v
	}

	if r.cfg.SegmentResidual > 0 && r.segmentResidual(t, d, indices) > r.cfg.SegmentResidual*t.TotalLength() {
		v.Rejected = StageSegments
		return v
	}

	if r.cfg.VertexCheck && len(stroke.Simplify(d.Samples, r.cfg.SimplifyTolerance)) != t.Len() {
		v.Rejected = StageVertices
		return v
	}
	return v
}

func lengthLikelihood(templateLength, drawnLength, tolerance float64) float64 {
	diff := math.Abs(drawnLength - templateLength)
	allowed := templateLength * tolerance
	if allowed <= 0 {
		if diff == 0 {
			return 1
		}
		return 0
	}
	if diff > allowed {
		return 0
	}
	return clamp01(1 - diff/allowed)
}

func (r *Recognizer) endpointLikelihood(t *pattern.Template, d *Drawn) float64 {
	maxDist := r.cfg.MaxEndpointDistance()
	first, last := d.Samples[0], d.Samples[len(d.Samples)-1]
	start := clamp01(1 - geometry.WorldDistance(geometry.AsWorld(t.Start()), first)/maxDist)
	end := clamp01(1 - geometry.WorldDistance(geometry.AsWorld(t.End()), last)/maxDist)
	return (start + end) / 2
}

// matchKeyPoints assigns a sample to every key point in drawing order.
// Samples assigned to earlier key points are blocked so they cannot be
// reused.
func (r *Recognizer) matchKeyPoints(t *pattern.Template, d *Drawn) ([]int, bool) {
	n := len(d.Samples)
	if n < r.cfg.MinSamples {
		return nil, false
	}

	blocked := make([]bool, n)
	remaining := n
	indices := make([]int, 0, t.Len())
	prev := -1
	for i := 0; i < t.Len(); i++ {
		if r.cfg.Blocking == BlockRadius && remaining < r.cfg.MinSamples {
			return indices, false
		}
		idx := r.closestSample(t.KeyPoint(i), d.Samples, blocked)
		if idx < 0 {
			return indices, false
		}
		indices = append(indices, idx)
		remaining -= r.block(blocked, prev, idx)
		prev = idx
	}
	return indices, true
}

// closestSample scans the unblocked samples for the one nearest to kp. The
// scan keeps going past a local minimum so that a sample merely on the way
// towards kp is not taken, but once the best distance is inside the
// acceptance radius and LockAfter samples in a row failed to improve on it,
// the best index is locked in. It returns -1 if no sample gets inside the
// radius.
func (r *Recognizer) closestSample(kp models.GridPoint, samples []models.Point, blocked []bool) int {
	radius := r.cfg.AcceptRadius
	if kp.X == 0 || kp.Y == 0 {
		radius = r.cfg.EdgeAcceptRadius
	}
	target := geometry.AsWorld(kp)

	index := -1
	best := math.Inf(1)
	repeat := 0
	for i, p := range samples {
		if blocked[i] {
			continue
		}
		dist := geometry.WorldDistance(target, p)
		if dist < best {
			best, index, repeat = dist, i, 0
			continue
		}
		if best < radius {
			repeat++
			if repeat >= r.cfg.LockAfter {
				break
			}
		}
	}

	if index < 0 || best >= radius {
		return -1
	}
	return index
}

// block marks the samples owned by the match at idx and returns how many
// were newly blocked.
func (r *Recognizer) block(blocked []bool, prev, idx int) int {
	from, to := prev+1, idx
	if r.cfg.Blocking == BlockRadius {
		from = max(idx-r.cfg.BlockRadius, 0)
		to = min(idx+r.cfg.BlockRadius, len(blocked)-1)
	}

	count := 0
	for i := from; i <= to; i++ {
		if !blocked[i] {
			blocked[i] = true
			count++
		}
	}
	return count
}

// segmentResidual sums, over consecutive key points, how far the drawn
// length between their samples is from the template segment length.
func (r *Recognizer) segmentResidual(t *pattern.Template, d *Drawn, indices []int) float64 {
	var sum float64
	for i := 0; i+1 < len(indices); i++ {
		sum += math.Abs(r.arc(d, indices[i], indices[i+1]) - t.SegmentLength(i))
	}
	return sum
}

func (r *Recognizer) arc(d *Drawn, from, to int) float64 {
	if r.cfg.LengthMode == LengthSampled {
		return float64(to-from) * r.cfg.StepLength * d.Scale
	}
	return d.cumulative[to] - d.cumulative[from]
}

func strictlyIncreasing(indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
