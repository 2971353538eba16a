package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zoo-admin/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.s.animals[a.ID]; exists {
		return errors.New("animal already exists")
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.animals[a.ID] = copyAnimal(a)
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, exists := r.s.animals[a.ID]
	if !exists {
		return animals.ErrNotFound
	}
	if current.Version != expectedVersion {
		return animals.ErrConflict
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.animals[a.ID] = copyAnimal(a)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return copyAnimal(a), nil
}

func (r *animalRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.s.animals {
		if filter.Matches(a) {
			out = append(out, copyAnimal(a))
		}
	}
	// el orden lo define el service
	return out, nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[id]; !ok {
		return nil
	}
	delete(r.s.animals, id)

	// sin cascada: el predador se queda, solo pierde la presa
	for k, a := range r.s.animals {
		if a.PreyID != nil && *a.PreyID == id {
			a.PreyID = nil
			r.s.animals[k] = a
		}
	}
	return nil
}

// checkRefs repite bajo el lock lo que en SQL hacen las foreign keys:
// el service valida antes, pero un borrado concurrente puede colarse en el medio.
// Requiere r.s.mu tomado.
func (r *animalRepo) checkRefs(a animals.Animal) error {
	if a.PreyID != nil {
		if *a.PreyID == a.ID {
			return fmt.Errorf("%w: prey_id must reference a different animal", animals.ErrInvalidInput)
		}
		if _, ok := r.s.animals[*a.PreyID]; !ok {
			return fmt.Errorf("%w: unknown prey %s", animals.ErrInvalidInput, *a.PreyID)
		}
	}
	if a.EnclosureID != nil {
		if _, ok := r.s.enclosures[*a.EnclosureID]; !ok {
			return fmt.Errorf("%w: unknown enclosure %s", animals.ErrInvalidInput, *a.EnclosureID)
		}
	}
	if a.CategoryID != nil {
		if _, ok := r.s.categories[*a.CategoryID]; !ok {
			return fmt.Errorf("%w: unknown category %s", animals.ErrInvalidInput, *a.CategoryID)
		}
	}
	return nil
}

// copyAnimal evita compartir punteros de referencias con el llamador.
func copyAnimal(a animals.Animal) animals.Animal {
	a.PreyID = cloneRef(a.PreyID)
	a.EnclosureID = cloneRef(a.EnclosureID)
	a.CategoryID = cloneRef(a.CategoryID)
	return a
}
