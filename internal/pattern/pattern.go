package pattern

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/google/uuid"
)

var ErrInvalidTemplate = errors.New("pattern: template needs at least two key points")

// Template is an ordered sequence of grid key points together with the
// lengths derived from it. The order of the key points is the order in
// which the glyph has to be drawn.
type Template struct {
	ID      string
	Name    string
	Command string

	keyPoints      []models.GridPoint
	segmentLengths []float64
	totalLength    float64
}

func New(name string, keyPoints []models.GridPoint) (*Template, error) {
	t := &Template{ID: uuid.NewString(), Name: name}
	if err := t.SetKeyPoints(keyPoints); err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return t, nil
}

// FromConfig rebuilds a template from its persisted form, recomputing the
// derived lengths.
func FromConfig(cfg models.TemplateConfig) (*Template, error) {
	t, err := New(cfg.Name, cfg.KeyPoints)
	if err != nil {
		return nil, err
	}
	if cfg.ID != "" {
		t.ID = cfg.ID
	}
	t.Command = cfg.Command
	return t, nil
}

func (t *Template) Config() models.TemplateConfig {
	return models.TemplateConfig{
		ID:        t.ID,
		Name:      t.Name,
		Command:   t.Command,
		KeyPoints: t.KeyPoints(),
	}
}

// SetKeyPoints replaces the key points and recalculates the segment and
// total lengths. It must not be called while the template is being matched.
func (t *Template) SetKeyPoints(keyPoints []models.GridPoint) error {
	if len(keyPoints) < 2 {
		return ErrInvalidTemplate
	}
	t.keyPoints = slices.Clone(keyPoints)
	t.recalculate()
	return nil
}

func (t *Template) recalculate() {
	t.segmentLengths = make([]float64, len(t.keyPoints)-1)
	t.totalLength = 0
	for i := 0; i < len(t.keyPoints)-1; i++ {
		d := geometry.Distance(t.keyPoints[i], t.keyPoints[i+1])
		t.segmentLengths[i] = d
		t.totalLength += d
	}
}

func (t *Template) KeyPoints() []models.GridPoint {
	return slices.Clone(t.keyPoints)
}

func (t *Template) SegmentLengths() []float64 {
	return slices.Clone(t.segmentLengths)
}

func (t *Template) TotalLength() float64 { return t.totalLength }

func (t *Template) Len() int { return len(t.keyPoints) }

func (t *Template) KeyPoint(i int) models.GridPoint { return t.keyPoints[i] }

func (t *Template) SegmentLength(i int) float64 { return t.segmentLengths[i] }

func (t *Template) Start() models.GridPoint { return t.keyPoints[0] }

func (t *Template) End() models.GridPoint { return t.keyPoints[len(t.keyPoints)-1] }

// SpansGrid reports whether the key points reach both side columns and the
// bottom row. Drawn strokes are scaled by their width and shifted to their
// lowest point, so a template that does not fill the grid this way can
// never match its own shape.
func (t *Template) SpansGrid(gridSize int) bool {
	minX, maxX, minY := t.keyPoints[0].X, t.keyPoints[0].X, t.keyPoints[0].Y
	for _, p := range t.keyPoints[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
	}
	return minX == 0 && maxX == gridSize-1 && minY == 0
}

func (t *Template) String() string {
	return fmt.Sprintf("%s %v (length %.2f)", t.Name, t.keyPoints, t.totalLength)
}
