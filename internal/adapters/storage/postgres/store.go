package postgres

import (
	"database/sql"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

// Store agrupa los repos sobre un mismo pool.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Animals() animals.Repository       { return NewAnimalsRepo(s.db) }
func (s *Store) Enclosures() enclosures.Repository { return NewEnclosuresRepo(s.db) }
func (s *Store) Categories() categories.Repository { return NewCategoriesRepo(s.db) }

func (s *Store) Close() error { return s.db.Close() }
