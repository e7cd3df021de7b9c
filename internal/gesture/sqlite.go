package gestures

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Ellandq/Wizard-Duelling/internal/models"
	"github.com/google/uuid"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps templates in a SQLite database, one row per template
// with its key points encoded as JSON.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrateUp() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	// Closing m would close the shared database handle.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() ([]models.TemplateConfig, error) {
	rows, err := s.db.Query(`SELECT id, name, command, key_points FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.TemplateConfig{}
	for rows.Next() {
		var tc models.TemplateConfig
		var keyPoints string
		if err := rows.Scan(&tc.ID, &tc.Name, &tc.Command, &keyPoints); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(keyPoints), &tc.KeyPoints); err != nil {
			return nil, fmt.Errorf("template %q: bad key points: %w", tc.Name, err)
		}
		templates = append(templates, tc)
	}
	return templates, rows.Err()
}

// Save replaces the template with the same name in place. A template that
// only shares the ID is renamed in place, and when both exist on different
// rows the one holding the ID is dropped. A missing ID is generated.
func (s *SQLiteStore) Save(tc models.TemplateConfig) error {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	keyPoints, err := json.Marshal(tc.KeyPoints)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM templates
		WHERE id = ? AND name <> ?
			AND EXISTS (SELECT 1 FROM templates WHERE name = ?)`,
		tc.ID, tc.Name, tc.Name)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO templates (id, name, command, key_points) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			command = excluded.command,
			key_points = excluded.key_points
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			command = excluded.command,
			key_points = excluded.key_points`,
		tc.ID, tc.Name, tc.Command, string(keyPoints))
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Remove(name string) error {
	res, err := s.db.Exec(`DELETE FROM templates WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
