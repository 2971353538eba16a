package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

const schema = `
CREATE TABLE IF NOT EXISTS enclosures (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS animals (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	species              TEXT NOT NULL DEFAULT '',
	age                  INTEGER NOT NULL DEFAULT 0 CHECK (age BETWEEN 0 AND 150),
	size                 TEXT NOT NULL,
	dietary_class        TEXT NOT NULL,
	activity_pattern     TEXT NOT NULL,
	feeding_schedule     TEXT NOT NULL DEFAULT '',
	prey_id              TEXT REFERENCES animals(id) ON DELETE SET NULL,
	enclosure_id         TEXT REFERENCES enclosures(id) ON DELETE SET NULL,
	category_id          TEXT REFERENCES categories(id) ON DELETE SET NULL,
	space_requirement    REAL NOT NULL DEFAULT 0,
	security_requirement TEXT NOT NULL,
	version              INTEGER NOT NULL DEFAULT 1,
	created_at           TEXT NOT NULL,
	updated_at           TEXT NOT NULL,
	CHECK (prey_id IS NULL OR prey_id <> id)
);

CREATE INDEX IF NOT EXISTS animals_enclosure_id_idx ON animals (enclosure_id);
CREATE INDEX IF NOT EXISTS animals_category_id_idx ON animals (category_id);
CREATE INDEX IF NOT EXISTS animals_prey_id_idx ON animals (prey_id);
`

// Store es la persistencia embebida (un archivo, sin servidor).
// Usa una sola conexión: SQLite serializa las escrituras igual.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path y aplica el esquema.
// path ":memory:" sirve para tests.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "zoo.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *Store) Animals() animals.Repository       { return &animalRepo{db: s.db} }
func (s *Store) Enclosures() enclosures.Repository { return &enclosureRepo{db: s.db} }
func (s *Store) Categories() categories.Repository { return &categoryRepo{db: s.db} }

func (s *Store) Close() error { return s.db.Close() }

// Path devuelve la ruta configurada.
func (s *Store) Path() string { return s.path }

// Los tiempos se guardan como TEXT RFC3339 en UTC para que ordenen bien.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func isConstraintViolation(err error) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	switch sqlErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return true
	default:
		return false
	}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
