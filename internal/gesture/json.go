package gestures

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/google/uuid"
)

// JSONStore keeps all templates in a single JSON array on disk.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]models.TemplateConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.TemplateConfig{}, nil
		}
		return nil, err
	}

	var templates []models.TemplateConfig
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return templates, nil
}

// Save replaces the template with the same name in place. A template that
// only shares the ID is renamed in place, and when both exist on different
// entries the one holding the ID is dropped. A missing ID is generated.
func (s *JSONStore) Save(tc models.TemplateConfig) error {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	templates, err := s.Load()
	if err != nil {
		return err
	}

	byName, byID := -1, -1
	for i, t := range templates {
		if t.Name == tc.Name {
			byName = i
		} else if tc.ID != "" && t.ID == tc.ID {
			byID = i
		}
	}

	switch {
	case byName >= 0:
		templates[byName] = tc
		if byID >= 0 {
			templates = append(templates[:byID], templates[byID+1:]...)
		}
	case byID >= 0:
		templates[byID] = tc
	default:
		templates = append(templates, tc)
	}
	return s.write(templates)
}

func (s *JSONStore) Remove(name string) error {
	templates, err := s.Load()
	if err != nil {
		return err
	}

	for i, t := range templates {
		if t.Name == name {
			templates = append(templates[:i], templates[i+1:]...)
			return s.write(templates)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) write(templates []models.TemplateConfig) error {
	data, err := json.Marshal(templates)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
