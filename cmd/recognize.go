package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Ellandq/Wizard-Duelling/internal/geometry"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
	"github.com/spf13/cobra"
)

var recognizeExec bool

var recognizeCmd = &cobra.Command{
	Use:   "recognize [file]",
	Short: "Recognise a finished stroke",
	Long: `Recognise a finished stroke read from a JSON file, or stdin when the
file is omitted or "-". The stroke has the form
{"samples": [{"x": 0, "y": 0}, ...], "bounds": {"min": {...}, "max": {...}}}
where bounds are optional and computed from the samples when absent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: recognizeFile,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().BoolVarP(&recognizeExec, "exec", "x", false, "Launch the command bound to the recognised template")
}

func recognizeFile(cmd *cobra.Command, args []string) error {
	var stroke models.StrokeInput
	var err error
	if len(args) == 1 && args[0] != "-" {
		stroke, err = readStrokeFile(args[0])
	} else {
		stroke, err = readStroke(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	settings := loadSettings()
	c := loadCatalog(settings)

	rec := recognition.New(settings.Recognition())
	match := recognize(rec, c, stroke.Samples, strokeBounds(stroke))
	report(cmd.OutOrStdout(), match)
	if match != nil && recognizeExec {
		launch(match)
	}
	return nil
}

func readStrokeFile(path string) (models.StrokeInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.StrokeInput{}, err
	}
	defer f.Close()
	return readStroke(f)
}

func readStroke(r io.Reader) (models.StrokeInput, error) {
	var stroke models.StrokeInput
	if err := json.NewDecoder(r).Decode(&stroke); err != nil {
		return stroke, fmt.Errorf("failed to parse stroke: %w", err)
	}
	return stroke, nil
}

func strokeBounds(stroke models.StrokeInput) models.Bounds {
	if stroke.Bounds != nil {
		return *stroke.Bounds
	}
	bounds, _ := geometry.BoundsOf(stroke.Samples)
	return bounds
}
