package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Ellandq/Wizard-Duelling/internal/catalog"
	"github.com/Ellandq/Wizard-Duelling/internal/config"
	"github.com/Ellandq/Wizard-Duelling/internal/execute"
	gestures "github.com/Ellandq/Wizard-Duelling/internal/gesture"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
)

func loadSettings() *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if storeFlag != "" {
		settings.Store = storeFlag
	}
	return settings
}

func openStore(settings *config.Settings) gestures.Store {
	store, err := gestures.Open(settings)
	if err != nil {
		log.Fatal("Failed to open template store:", err)
	}
	return store
}

// useStore runs fn against store and closes the store before returning, so
// callers can log.Fatal on the result without leaking the handle.
func useStore(store gestures.Store, fn func(gestures.Store) error) error {
	err := fn(store)
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	return err
}

func loadCatalog(settings *config.Settings) *catalog.Catalog {
	var c *catalog.Catalog
	err := useStore(openStore(settings), func(store gestures.Store) error {
		var err error
		c, err = gestures.LoadCatalog(store)
		return err
	})
	if err != nil {
		log.Fatal("Failed to load templates:", err)
	}
	log.Printf("Loaded %d template(s)", c.Len())
	return c
}

// recognize matches a finished stroke, logging every verdict in verbose mode.
func recognize(rec *recognition.Recognizer, c *catalog.Catalog, samples []models.Point, bounds models.Bounds) *pattern.Template {
	if !verbose {
		return rec.Recognize(c, samples, bounds)
	}

	verdicts := rec.EvaluateAll(c, samples, bounds)
	if verdicts == nil {
		log.Printf("Stroke of %d sample(s) cannot be matched, ignoring", len(samples))
		return nil
	}
	var match *pattern.Template
	for i, v := range verdicts {
		log.Printf("Template %d (%s): length %.3f, endpoints %.3f, indices %v, rejected at %s",
			i, v.Template.Name, v.LengthLikelihood, v.EndpointLikelihood, v.Indices, v.Rejected)
		if match == nil && v.Matched() {
			match = v.Template
		}
	}
	return match
}

func report(w io.Writer, match *pattern.Template) {
	if match == nil {
		fmt.Fprintln(w, "No match")
		return
	}
	fmt.Fprintf(w, "Matched: %s\n", match.Name)
}

func launch(t *pattern.Template) {
	if t.Command == "" {
		log.Printf("Template %s has no command", t.Name)
		return
	}
	done, err := execute.Template(t)
	if err != nil {
		log.Printf("Failed to execute command: %v", err)
		return
	}
	log.Printf("Executed: %s", t.Command)
	go func() {
		if err := <-done; err != nil {
			log.Printf("Command %q exited: %v", t.Command, err)
		}
	}()
}

// renderGrid draws the key points of t on a text grid, top row first. Each
// key point is labelled with its position in drawing order.
func renderGrid(t *pattern.Template, gridSize int) string {
	cells := make([][]byte, gridSize)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", gridSize))
	}
	for i, p := range t.KeyPoints() {
		if p.X < 0 || p.Y < 0 || p.X >= gridSize || p.Y >= gridSize {
			continue
		}
		cells[gridSize-1-p.Y][p.X] = "123456789abcdefghijklmnopqrstuvwxyz"[i%35]
	}

	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
