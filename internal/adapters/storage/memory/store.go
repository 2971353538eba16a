package memory

import (
	"sync"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

// Store guarda las tres tablas bajo un mismo lock para poder limpiar
// referencias (presa, recinto, categoría) en el mismo paso que el borrado,
// igual que hace ON DELETE SET NULL en las bases SQL.
type Store struct {
	mu         sync.RWMutex
	animals    map[string]animals.Animal
	enclosures map[string]enclosures.Enclosure
	categories map[string]categories.Category
}

func NewStore() *Store {
	return &Store{
		animals:    make(map[string]animals.Animal),
		enclosures: make(map[string]enclosures.Enclosure),
		categories: make(map[string]categories.Category),
	}
}

func (s *Store) Animals() animals.Repository       { return &animalRepo{s: s} }
func (s *Store) Enclosures() enclosures.Repository { return &enclosureRepo{s: s} }
func (s *Store) Categories() categories.Repository { return &categoryRepo{s: s} }

func (s *Store) Close() error { return nil }

func cloneRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
