package cmd

import (
	"fmt"
	"log"

	gestures "github.com/Ellandq/Wizard-Duelling/internal/gesture"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [template]",
	Short: "Remove a template by name",
	Run:   removeTemplate,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	log.SetFlags(0)
}

func removeTemplate(cmd *cobra.Command, args []string) {
	if len(args) <= 0 {
		log.Fatalf("Please specify a template")
	}

	settings := loadSettings()
	err := useStore(openStore(settings), func(store gestures.Store) error {
		return store.Remove(args[0])
	})
	if err != nil {
		log.Fatalf("Failed to remove template: %v", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Removed template:", args[0])
}
