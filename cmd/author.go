package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Ellandq/Wizard-Duelling/internal/authoring"
	gestures "github.com/Ellandq/Wizard-Duelling/internal/gesture"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/spf13/cobra"
)

var (
	authorPoints  string
	authorCommand string
)

var authorCmd = &cobra.Command{
	Use:   "author [name]",
	Short: "Create a template from clicks on the grid",
	Long: `Create a template from clicks on the grid.

Clicks are "x,y" cells separated by spaces, with the top row as y=0 as on
screen. The words undo, redo and reset step through the click history.
Straight runs of clicks collapse to their two ends.`,
	Example: `  glyph author fireball --points "0,0 0,6 6,6" --command "notify-send fireball"`,
	Args:    cobra.ExactArgs(1),
	Run:     authorTemplate,
}

func init() {
	rootCmd.AddCommand(authorCmd)
	authorCmd.Flags().StringVarP(&authorPoints, "points", "p", "", "Grid clicks, e.g. \"0,0 3,0 undo 6,0\"")
	authorCmd.Flags().StringVarP(&authorCommand, "command", "c", "", "Shell command to launch when the template is recognised")
	cobra.CheckErr(authorCmd.MarkFlagRequired("points"))
}

func authorTemplate(cmd *cobra.Command, args []string) {
	settings := loadSettings()

	t, err := buildTemplate(args[0], strings.Fields(authorPoints), settings.GridSize)
	if err != nil {
		log.Fatal("Failed to author template:", err)
	}
	t.Command = authorCommand

	err = useStore(openStore(settings), func(store gestures.Store) error {
		return gestures.SaveTemplate(store, t)
	})
	if err != nil {
		log.Fatal(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved template %s %v (length %.2f)\n", t.Name, t.KeyPoints(), t.TotalLength())
	fmt.Fprint(out, renderGrid(t, settings.GridSize))
}

// buildTemplate replays clicks through an editor and confirms the result.
func buildTemplate(name string, clicks []string, gridSize int) (*pattern.Template, error) {
	editor := authoring.NewEditor(gridSize)
	for _, click := range clicks {
		switch click {
		case "undo":
			editor.Undo()
		case "redo":
			editor.Redo()
		case "reset":
			editor.Reset()
		default:
			p, err := parseCell(click)
			if err != nil {
				return nil, err
			}
			if _, err := editor.Select(p); err != nil {
				return nil, err
			}
		}
	}
	t, err := editor.Confirm(name)
	if err != nil {
		return nil, err
	}
	if !t.SpansGrid(editor.GridSize()) {
		log.Printf("Warning: template %s does not span the grid from column 0 to %d with a point on the bottom row, it will never be recognised",
			name, editor.GridSize()-1)
	}
	return t, nil
}

func parseCell(s string) (models.GridPoint, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return models.GridPoint{}, fmt.Errorf("invalid cell %q, want x,y", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return models.GridPoint{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return models.GridPoint{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return models.GridPoint{X: x, Y: y}, nil
}
