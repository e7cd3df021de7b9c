package main

import (
	"os"

	"github.com/Ellandq/Wizard-Duelling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
