package cmd

import (
	"fmt"
	"log"

	gestures "github.com/Ellandq/Wizard-Duelling/internal/gesture"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/spf13/cobra"
)

var listShowGrid bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored templates",
	Run:   listTemplates,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listShowGrid, "grid", "g", false, "Draw each template on the grid")
}

func listTemplates(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	var templates []models.TemplateConfig
	err := useStore(openStore(settings), func(store gestures.Store) error {
		var err error
		templates, err = store.Load()
		return err
	})
	if err != nil {
		log.Fatal("Failed to load templates:", err)
	}

	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintln(out, "No templates stored")
		return
	}

	fmt.Fprintln(out, "Stored templates:")
	for _, tc := range templates {
		t, err := pattern.FromConfig(tc)
		if err != nil {
			fmt.Fprintf(out, "   %s (invalid: %v)\n", tc.Name, err)
			continue
		}
		fmt.Fprintf(out, "   %s  %v  length %.2f", t.Name, t.KeyPoints(), t.TotalLength())
		if t.Command != "" {
			fmt.Fprintf(out, "  -> %s", t.Command)
		}
		fmt.Fprintln(out)
		if listShowGrid {
			fmt.Fprint(out, renderGrid(t, settings.GridSize))
		}
	}
}
