package authoring

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
)

var ErrOutOfGrid = errors.New("authoring: point outside the grid")

// Editor turns clicks on a square grid into template key points. Clicks are
// in the grid's top-down screen convention; Confirm converts them to the
// bottom-up convention used for matching.
type Editor struct {
	gridSize int
	points   []models.GridPoint
	redo     []models.GridPoint
}

func NewEditor(gridSize int) *Editor {
	return &Editor{gridSize: gridSize}
}

func (e *Editor) GridSize() int { return e.gridSize }

// Select applies a click at p. Repeated clicks are ignored, and a straight
// run of clicks collapses to its two ends: a click between the last two
// points is dropped, a click extending their line replaces the last one.
func (e *Editor) Select(p models.GridPoint) (bool, error) {
	if p.X < 0 || p.Y < 0 || p.X >= e.gridSize || p.Y >= e.gridSize {
		return false, fmt.Errorf("%w: (%d,%d) on a %dx%d grid", ErrOutOfGrid, p.X, p.Y, e.gridSize, e.gridSize)
	}

	n := len(e.points)
	if n > 0 && e.points[n-1] == p {
		return false, nil
	}
	if n > 1 && geometry.IsCollinear(e.points[n-2], p, e.points[n-1]) {
		if geometry.IsCloser(e.points[n-2], p, e.points[n-1]) {
			return false, nil
		}
		e.points = e.points[:n-1]
	}

	e.points = append(e.points, p)
	e.redo = e.redo[:0]
	return true, nil
}

// Undo removes the last accepted point.
func (e *Editor) Undo() bool {
	n := len(e.points)
	if n == 0 {
		return false
	}
	e.redo = append(e.redo, e.points[n-1])
	e.points = e.points[:n-1]
	return true
}

// Redo restores the most recently undone point.
func (e *Editor) Redo() bool {
	n := len(e.redo)
	if n == 0 {
		return false
	}
	e.points = append(e.points, e.redo[n-1])
	e.redo = e.redo[:n-1]
	return true
}

func (e *Editor) Reset() {
	e.points = nil
	e.redo = nil
}

func (e *Editor) Points() []models.GridPoint {
	return slices.Clone(e.points)
}

// LastPressed is the point a new click continues from.
func (e *Editor) LastPressed() (models.GridPoint, bool) {
	if len(e.points) == 0 {
		return models.GridPoint{}, false
	}
	return e.points[len(e.points)-1], true
}

// Confirm builds a template from the accepted points, flipping them
// vertically into matching space.
func (e *Editor) Confirm(name string) (*pattern.Template, error) {
	flipped := make([]models.GridPoint, len(e.points))
	for i, p := range e.points {
		flipped[i] = models.GridPoint{X: p.X, Y: e.gridSize - 1 - p.Y}
	}
	return pattern.New(name, flipped)
}
