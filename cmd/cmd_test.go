package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/Ellandq/Wizard-Duelling/internal/authoring"
	"github.com/Ellandq/Wizard-Duelling/internal/catalog"
	gestures "github.com/Ellandq/Wizard-Duelling/internal/gesture"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ell = []models.GridPoint{{X: 0, Y: 6}, {X: 0, Y: 0}, {X: 6, Y: 0}}

func TestParseCell(t *testing.T) {
	p, err := parseCell("3,4")
	require.NoError(t, err)
	assert.Equal(t, models.GridPoint{X: 3, Y: 4}, p)

	for _, bad := range []string{"3", "a,4", "3,b", ""} {
		_, err := parseCell(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildTemplate(t *testing.T) {
	tests := []struct {
		name   string
		clicks string
	}{
		{"straight run collapses", "0,0 0,3 0,6 6,6"},
		{"undo", "0,0 3,3 undo 0,6 6,6"},
		{"redo", "0,0 0,6 undo redo 6,6"},
		{"reset", "5,5 2,2 reset 0,0 0,6 6,6"},
		{"repeated click", "0,0 0,0 0,6 6,6 6,6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := buildTemplate("ell", strings.Fields(tt.clicks), 7)
			require.NoError(t, err)
			assert.Equal(t, "ell", tmpl.Name)
			if diff := cmp.Diff(ell, tmpl.KeyPoints()); diff != "" {
				t.Errorf("key points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAuthorRequiresPoints(t *testing.T) {
	flag := authorCmd.Flags().Lookup("points")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestBuildTemplateErrors(t *testing.T) {
	_, err := buildTemplate("x", []string{"7,0"}, 7)
	assert.ErrorIs(t, err, authoring.ErrOutOfGrid)

	_, err = buildTemplate("x", []string{"0,0"}, 7)
	assert.ErrorIs(t, err, pattern.ErrInvalidTemplate)

	_, err = buildTemplate("x", []string{"0,0", "nope"}, 7)
	assert.Error(t, err)
}

func TestBuildTemplateWarnsWhenUnreachable(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	// Clicks are in screen space, so row 6 is the bottom row.
	_, err := buildTemplate("floor", []string{"0,6", "6,6"}, 7)
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	for _, clicks := range []string{"0,0 6,0", "1,1 5,5", "0,0 0,6"} {
		logs.Reset()
		_, err := buildTemplate("stray", strings.Fields(clicks), 7)
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "template stray does not span the grid", clicks)
	}
}

func TestRenderGrid(t *testing.T) {
	tmpl, err := pattern.New("ell", ell)
	require.NoError(t, err)

	want := "1......\n" + strings.Repeat(".......\n", 5) + "2.....3\n"
	assert.Equal(t, want, renderGrid(tmpl, 7))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, nil)
	assert.Equal(t, "No match\n", buf.String())

	tmpl, err := pattern.New("dash", []models.GridPoint{{X: 0, Y: 0}, {X: 6, Y: 0}})
	require.NoError(t, err)
	buf.Reset()
	report(&buf, tmpl)
	assert.Equal(t, "Matched: dash\n", buf.String())
}

func TestReadStroke(t *testing.T) {
	in := `{"samples": [{"x": 1, "y": 2}, {"x": 4, "y": -1}]}`
	stroke, err := readStroke(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, stroke.Samples, 2)
	assert.Nil(t, stroke.Bounds)

	bounds := strokeBounds(stroke)
	assert.Equal(t, models.Point{X: 1, Y: -1}, bounds.Min)
	assert.Equal(t, models.Point{X: 4, Y: 2}, bounds.Max)

	explicit := models.Bounds{Min: models.Point{X: -10, Y: -10}, Max: models.Point{X: 10, Y: 10}}
	stroke.Bounds = &explicit
	assert.Equal(t, explicit, strokeBounds(stroke))

	_, err = readStroke(strings.NewReader("{"))
	assert.Error(t, err)
}

func dashCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	tmpl, err := pattern.New("dash", []models.GridPoint{{X: 0, Y: 0}, {X: 6, Y: 0}})
	require.NoError(t, err)
	c := catalog.New()
	c.Add(tmpl)
	return c
}

func event(typ models.EventType, x, y float64) string {
	return fmt.Sprintf(`{"type": %q, "x": %g, "y": %g}`, typ, x, y)
}

func TestRunEvents(t *testing.T) {
	var lines []string
	lines = append(lines, event(models.EventDown, 0, 0))
	for i := 1; i <= 24; i++ {
		lines = append(lines, event(models.EventMove, float64(i)*0.25, 0))
	}
	lines = append(lines, event(models.EventUp, 6, 0))

	// A vertical stroke has no width and is never matched.
	lines = append(lines, event(models.EventDown, 0, 0))
	for i := 1; i <= 10; i++ {
		lines = append(lines, event(models.EventMove, 0, float64(i)))
	}
	lines = append(lines, event(models.EventUp, 0, 10))

	in := strings.NewReader(strings.Join(lines, "\n"))
	var out bytes.Buffer
	rec := recognition.New(recognition.DefaultConfig())
	require.NoError(t, runEvents(in, &out, rec, dashCatalog(t), 0.01, false))

	assert.Equal(t, "Matched: dash\nNo match\n", out.String())
}

func TestRunEventsIgnoresNoise(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"",
		"not json",
		event(models.EventUp, 1, 1),
		event(models.EventMove, 2, 2),
		`{"type": "hover", "x": 0, "y": 0}`,
	}, "\n"))
	var out bytes.Buffer
	rec := recognition.New(recognition.DefaultConfig())
	require.NoError(t, runEvents(in, &out, rec, dashCatalog(t), 0.01, false))

	assert.Empty(t, out.String())
}

type closeCounter struct {
	gestures.Store
	closed   int
	closeErr error
}

func (c *closeCounter) Close() error {
	c.closed++
	return c.closeErr
}

func TestUseStoreAlwaysCloses(t *testing.T) {
	failed := errors.New("load failed")
	closeFailed := errors.New("close failed")

	tests := []struct {
		name     string
		fnErr    error
		closeErr error
		want     error
	}{
		{"success", nil, nil, nil},
		{"fn error is returned", failed, nil, failed},
		{"fn error wins over close error", failed, closeFailed, failed},
		{"close error is returned", nil, closeFailed, closeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &closeCounter{closeErr: tt.closeErr}
			err := useStore(store, func(s gestures.Store) error {
				assert.Zero(t, store.closed)
				return tt.fnErr
			})
			assert.Equal(t, tt.want, err)
			assert.Equal(t, 1, store.closed)
		})
	}
}
