package cmd

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"strings"

	"github.com/Ellandq/Wizard-Duelling/internal/catalog"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
	"github.com/Ellandq/Wizard-Duelling/internal/stroke"
	"github.com/spf13/cobra"
)

var runExec bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Recognise strokes from a stream of pointer events",
	Long: `Read pointer events as JSON lines from stdin, one per line:
{"type": "down" | "move" | "up", "x": 1.5, "y": 2.0}
A stroke is captured between down and up and recognised on up.`,
	Run: Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runExec, "exec", "x", false, "Launch the command bound to each recognised template")
}

func Run(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	c := loadCatalog(settings)

	rec := recognition.New(settings.Recognition())
	if err := runEvents(cmd.InOrStdin(), cmd.OutOrStdout(), rec, c, settings.MinSampleDelta, runExec); err != nil {
		log.Fatal("Failed to read events:", err)
	}
}

// runEvents drives stroke capture from pointer events and recognises each
// stroke when the pointer is released.
func runEvents(in io.Reader, out io.Writer, rec *recognition.Recognizer, c *catalog.Catalog, minDelta float64, launchMatches bool) error {
	recorder := stroke.NewRecorder(minDelta)
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var ev models.Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			log.Printf("Skipping malformed event on line %d: %v", line, err)
			continue
		}
		p := models.Point{X: ev.X, Y: ev.Y}

		switch ev.Type {
		case models.EventDown:
			recorder.Begin(p)
		case models.EventMove:
			recorder.Add(p)
		case models.EventUp:
			if !recorder.Drawing() {
				continue
			}
			recorder.Add(p)
			samples, bounds := recorder.End()
			match := recognize(rec, c, samples, bounds)
			report(out, match)
			if match != nil && launchMatches {
				launch(match)
			}
		default:
			log.Printf("Unknown event type %q on line %d", ev.Type, line)
		}
	}
	return scanner.Err()
}
