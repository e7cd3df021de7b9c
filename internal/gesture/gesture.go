package gestures

import (
	"errors"
	"fmt"
	"log"

	"github.com/Ellandq/Wizard-Duelling/internal/catalog"
	"github.com/Ellandq/Wizard-Duelling/internal/config"
	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("template not found")

// Store persists templates by name. Saving a template whose name already
// exists replaces it in place.
type Store interface {
	Load() ([]models.TemplateConfig, error)
	Save(models.TemplateConfig) error
	Remove(name string) error
	Close() error
}

// Open returns the store selected by the settings, located in the config
// directory.
func Open(settings *config.Settings) (Store, error) {
	path, err := config.GetPath(settings.Store)
	if err != nil {
		return nil, err
	}
	switch settings.Store {
	case config.StoreSQLite:
		return OpenSQLite(path)
	case config.StoreJSON:
		return NewJSONStore(path), nil
	}
	return nil, fmt.Errorf("unknown store %q", settings.Store)
}

// SaveTemplate persists t, assigning it an ID first if it has none.
func SaveTemplate(s Store, t *pattern.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.Save(t.Config()); err != nil {
		return fmt.Errorf("failed to save template %q: %w", t.Name, err)
	}
	return nil
}

// LoadCatalog reads every stored template into a new catalog. Entries that
// no longer form a valid template are logged and skipped.
func LoadCatalog(s Store) (*catalog.Catalog, error) {
	configs, err := s.Load()
	if err != nil {
		return nil, err
	}
	return BuildCatalog(configs), nil
}

func BuildCatalog(configs []models.TemplateConfig) *catalog.Catalog {
	c := catalog.New()
	for _, cfg := range configs {
		t, err := pattern.FromConfig(cfg)
		if err != nil {
			log.Printf("Skipping stored template: %v", err)
			continue
		}
		c.Add(t)
	}
	return c
}
