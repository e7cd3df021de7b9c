package cmd

import (
	"github.com/spf13/cobra"
)

var (
	storeFlag string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:          "glyph",
	Short:        "Author and recognise glyphs drawn on a grid",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Template store backend (json or sqlite), overrides the settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log the verdict of every template")
}
