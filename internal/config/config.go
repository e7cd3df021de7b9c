package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Ellandq/Wizard-Duelling/internal/recognition"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Settings struct {
	GridSize          int     `json:"grid_size"`
	MinLikelihood     float64 `json:"min_likelihood"`
	LengthTolerance   float64 `json:"length_tolerance"`
	LengthMode        string  `json:"length_mode"`
	StepLength        float64 `json:"step_length"`
	LockAfter         int     `json:"lock_after"`
	AcceptRadius      float64 `json:"accept_radius"`
	EdgeAcceptRadius  float64 `json:"edge_accept_radius"`
	MinSamples        int     `json:"min_samples"`
	Blocking          string  `json:"blocking"`
	BlockRadius       int     `json:"block_radius"`
	SegmentResidual   float64 `json:"segment_residual"`
	VertexCheck       bool    `json:"vertex_check"`
	SimplifyTolerance float64 `json:"simplify_tolerance"`
	MinSampleDelta    float64 `json:"min_sample_delta"`
	Store             string  `json:"store"`
}

func DefaultSettings() *Settings {
	rc := recognition.DefaultConfig()
	return &Settings{
		GridSize:          rc.GridSize,
		MinLikelihood:     rc.MinLikelihood,
		LengthTolerance:   rc.LengthTolerance,
		LengthMode:        string(rc.LengthMode),
		StepLength:        rc.StepLength,
		LockAfter:         rc.LockAfter,
		AcceptRadius:      rc.AcceptRadius,
		EdgeAcceptRadius:  rc.EdgeAcceptRadius,
		MinSamples:        rc.MinSamples,
		Blocking:          string(rc.Blocking),
		BlockRadius:       rc.BlockRadius,
		SegmentResidual:   rc.SegmentResidual,
		VertexCheck:       rc.VertexCheck,
		SimplifyTolerance: rc.SimplifyTolerance,
		MinSampleDelta:    0.01,
		Store:             StoreJSON,
	}
}

// Recognition converts the settings into a pipeline configuration.
func (s *Settings) Recognition() recognition.Config {
	return recognition.Config{
		GridSize:          s.GridSize,
		MinLikelihood:     s.MinLikelihood,
		LengthTolerance:   s.LengthTolerance,
		LengthMode:        recognition.LengthMode(s.LengthMode),
		StepLength:        s.StepLength,
		LockAfter:         s.LockAfter,
		AcceptRadius:      s.AcceptRadius,
		EdgeAcceptRadius:  s.EdgeAcceptRadius,
		MinSamples:        s.MinSamples,
		Blocking:          recognition.Blocking(s.Blocking),
		BlockRadius:       s.BlockRadius,
		SegmentResidual:   s.SegmentResidual,
		VertexCheck:       s.VertexCheck,
		SimplifyTolerance: s.SimplifyTolerance,
	}
}

func GetDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "wizard-duelling")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// GetPath returns the template file for the given store backend.
func GetPath(store string) (string, error) {
	configDir, err := GetDir()
	if err != nil {
		return "", err
	}
	if store == StoreSQLite {
		return filepath.Join(configDir, "templates.db"), nil
	}
	return filepath.Join(configDir, "templates.json"), nil
}

func GetSettingsPath() (string, error) {
	configDir, err := GetDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath)
}

// LoadSettingsFrom reads settings from path, creating the file with defaults
// if it does not exist. Invalid values fall back to their defaults.
func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	defaultSettings := DefaultSettings()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := createDefaultSettings(settingsPath, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	// Missing keys keep their defaults.
	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	settings.validate(defaultSettings)
	return settings, nil
}

func (s *Settings) validate(d *Settings) {
	if s.GridSize < 2 {
		log.Printf("Invalid grid_size value %d, must be at least 2, using default %d", s.GridSize, d.GridSize)
		s.GridSize = d.GridSize
	}
	if s.MinLikelihood <= 0.0 || s.MinLikelihood >= 1.0 {
		log.Printf("Invalid min_likelihood value %.2f, must be between 0.0 and 1.0, using default %.2f",
			s.MinLikelihood, d.MinLikelihood)
		s.MinLikelihood = d.MinLikelihood
	}
	if s.LengthTolerance <= 0.0 {
		log.Printf("Invalid length_tolerance value %.2f, must be positive, using default %.2f",
			s.LengthTolerance, d.LengthTolerance)
		s.LengthTolerance = d.LengthTolerance
	}
	if s.LengthMode != string(recognition.LengthPolyline) && s.LengthMode != string(recognition.LengthSampled) {
		log.Printf("Invalid length_mode value '%s', using default '%s'", s.LengthMode, d.LengthMode)
		s.LengthMode = d.LengthMode
	}
	if s.StepLength <= 0.0 {
		log.Printf("Invalid step_length value %.3f, must be positive, using default %.3f", s.StepLength, d.StepLength)
		s.StepLength = d.StepLength
	}
	if s.LockAfter < 1 {
		log.Printf("Invalid lock_after value %d, must be at least 1, using default %d", s.LockAfter, d.LockAfter)
		s.LockAfter = d.LockAfter
	}
	if s.AcceptRadius <= 0.0 {
		log.Printf("Invalid accept_radius value %.2f, must be positive, using default %.2f", s.AcceptRadius, d.AcceptRadius)
		s.AcceptRadius = d.AcceptRadius
	}
	if s.EdgeAcceptRadius <= 0.0 {
		log.Printf("Invalid edge_accept_radius value %.2f, must be positive, using default %.2f",
			s.EdgeAcceptRadius, d.EdgeAcceptRadius)
		s.EdgeAcceptRadius = d.EdgeAcceptRadius
	}
	if s.MinSamples < 2 {
		log.Printf("Invalid min_samples value %d, must be at least 2, using default %d", s.MinSamples, d.MinSamples)
		s.MinSamples = d.MinSamples
	}
	if s.Blocking != string(recognition.BlockWindow) && s.Blocking != string(recognition.BlockRadius) {
		log.Printf("Invalid blocking value '%s', using default '%s'", s.Blocking, d.Blocking)
		s.Blocking = d.Blocking
	}
	if s.BlockRadius < 0 {
		log.Printf("Invalid block_radius value %d, must not be negative, using default %d", s.BlockRadius, d.BlockRadius)
		s.BlockRadius = d.BlockRadius
	}
	if s.SegmentResidual < 0.0 {
		log.Printf("Invalid segment_residual value %.2f, must not be negative, using default %.2f",
			s.SegmentResidual, d.SegmentResidual)
		s.SegmentResidual = d.SegmentResidual
	}
	if s.SimplifyTolerance <= 0.0 {
		log.Printf("Invalid simplify_tolerance value %.2f, must be positive, using default %.2f",
			s.SimplifyTolerance, d.SimplifyTolerance)
		s.SimplifyTolerance = d.SimplifyTolerance
	}
	if s.MinSampleDelta < 0.0 {
		log.Printf("Invalid min_sample_delta value %.3f, must not be negative, using default %.3f",
			s.MinSampleDelta, d.MinSampleDelta)
		s.MinSampleDelta = d.MinSampleDelta
	}
	if s.Store != StoreJSON && s.Store != StoreSQLite {
		log.Printf("Invalid store value '%s', using default '%s'", s.Store, d.Store)
		s.Store = d.Store
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
