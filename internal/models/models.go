package models

// GridPoint is a cell on the authoring grid.
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point is a sampled stroke position in world space. The system is planar,
// so there is no z component.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// TemplateConfig is the persisted form of a template. Segment and total
// lengths are derived and recomputed on load.
type TemplateConfig struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Command   string      `json:"command,omitempty"`
	KeyPoints []GridPoint `json:"keyPoints"`
}

type EventType string

const (
	EventDown EventType = "down"
	EventMove EventType = "move"
	EventUp   EventType = "up"
)

// Event is a single pointer event fed to the stroke capture loop.
type Event struct {
	Type EventType `json:"type"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
}

// StrokeInput is a finished stroke as handed over by a capture
// collaborator. Bounds may be omitted, in which case they are computed from
// the samples.
type StrokeInput struct {
	Samples []Point `json:"samples"`
	Bounds  *Bounds `json:"bounds,omitempty"`
}
