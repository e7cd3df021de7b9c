package geometry

import (
	"math"
	"testing"

	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gp(x, y int) models.GridPoint { return models.GridPoint{X: x, Y: y} }

func pt(x, y float64) models.Point { return models.Point{X: x, Y: y} }

func TestIsCollinear(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 models.GridPoint
		want       bool
	}{
		{"horizontal", gp(0, 0), gp(3, 0), gp(1, 0), true},
		{"diagonal", gp(0, 0), gp(2, 2), gp(5, 5), true},
		{"vertical", gp(4, 1), gp(4, 6), gp(4, 3), true},
		{"bend", gp(0, 0), gp(1, 1), gp(2, 1), false},
		{"knight", gp(0, 0), gp(1, 2), gp(2, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCollinear(tt.p1, tt.p2, tt.p3))
		})
	}
}

func TestIsCloser(t *testing.T) {
	assert.True(t, IsCloser(gp(0, 0), gp(1, 0), gp(3, 0)))
	assert.False(t, IsCloser(gp(0, 0), gp(4, 0), gp(3, 0)))
	assert.False(t, IsCloser(gp(0, 0), gp(3, 0), gp(0, 3)), "equal distances are not closer")
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(gp(0, 0), gp(3, 4)))
	assert.InDelta(t, 6*math.Sqrt2, Distance(gp(0, 0), gp(6, 6)), 1e-12)
	assert.Equal(t, 5.0, WorldDistance(pt(1, 1), pt(4, 5)))
}

func TestPolylineLength(t *testing.T) {
	assert.Zero(t, PolylineLength(nil))
	assert.Zero(t, PolylineLength([]models.Point{pt(2, 2)}))
	assert.InDelta(t, 12.0, PolylineLength([]models.Point{pt(0, 6), pt(0, 0), pt(6, 0)}), 1e-12)
}

func TestCumulativeLength(t *testing.T) {
	got := CumulativeLength([]models.Point{pt(0, 0), pt(3, 4), pt(3, 6)})
	assert.Equal(t, []float64{0, 5, 7}, got)
	assert.Nil(t, CumulativeLength(nil))
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	b, ok := BoundsOf([]models.Point{pt(2, -1), pt(-3, 4), pt(5, 0)})
	require.True(t, ok)
	assert.Equal(t, models.Bounds{Min: pt(-3, -1), Max: pt(5, 4)}, b)
	assert.Equal(t, 8.0, b.Width())

	b = Extend(b, pt(10, -7))
	assert.Equal(t, models.Bounds{Min: pt(-3, -7), Max: pt(10, 4)}, b)
}

func TestAsWorld(t *testing.T) {
	assert.Equal(t, pt(3, 6), AsWorld(gp(3, 6)))
}
