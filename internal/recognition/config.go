package recognition

import "math"

// LengthMode selects how the drawn length of a stroke is measured.
type LengthMode string

const (
	// LengthPolyline sums the distances between consecutive normalized samples.
	LengthPolyline LengthMode = "polyline"
	// LengthSampled assumes a constant sampling step: count × StepLength × scale.
	LengthSampled LengthMode = "sampled"
)

// Blocking selects which samples are taken out of play once a key point has
// been matched.
type Blocking string

const (
	// BlockWindow blocks everything after the previous match up to and
	// including the current one.
	BlockWindow Blocking = "window"
	// BlockRadius blocks BlockRadius samples on either side of the match.
	BlockRadius Blocking = "radius"
)

// Config holds the tunables of the recognition pipeline.
type Config struct {
	// GridSize is the side of the authoring grid. Templates live in
	// [0, GridSize-1] on both axes.
	GridSize int

	// MinLikelihood is the threshold for the length and endpoint stages.
	MinLikelihood float64

	// LengthTolerance is the relative length difference at which the length
	// likelihood reaches zero. Larger is more permissive.
	LengthTolerance float64

	LengthMode LengthMode

	// StepLength is the raw world distance between two samples, used by
	// LengthSampled.
	StepLength float64

	// LockAfter is the number of consecutive non-improving samples after
	// which the closest sample found so far is locked in.
	LockAfter int

	// AcceptRadius is the largest distance at which a sample may stand in
	// for a key point. EdgeAcceptRadius applies to key points with x == 0 or
	// y == 0.
	AcceptRadius     float64
	EdgeAcceptRadius float64

	// MinSamples is the smallest stroke able to localise key points.
	MinSamples int

	Blocking    Blocking
	BlockRadius int

	// SegmentResidual bounds the summed per-segment length error as a
	// fraction of the template length. Zero disables the check.
	SegmentResidual float64

	// VertexCheck additionally requires the simplified stroke to have as many
	// vertices as the template has key points.
	VertexCheck       bool
	SimplifyTolerance float64
}

func DefaultConfig() Config {
	return Config{
		GridSize:          7,
		MinLikelihood:     0.6,
		LengthTolerance:   1.0,
		LengthMode:        LengthPolyline,
		StepLength:        0.1,
		LockAfter:         10,
		AcceptRadius:      1.0,
		EdgeAcceptRadius:  1.5,
		MinSamples:        8,
		Blocking:          BlockWindow,
		BlockRadius:       5,
		SegmentResidual:   0.5,
		VertexCheck:       false,
		SimplifyTolerance: 0.5,
	}
}

// MaxEndpointDistance is the grid diagonal, the distance at which the
// endpoint likelihood reaches zero.
func (c Config) MaxEndpointDistance() float64 {
	return float64(c.GridSize-1) * math.Sqrt2
}
