package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"zoo-admin/internal/domain/enclosures"
)

type enclosureRepo struct {
	s *Store
}

func (r *enclosureRepo) Create(ctx context.Context, e enclosures.Enclosure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("enclosure id required")
	}
	if _, exists := r.s.enclosures[e.ID]; exists {
		return errors.New("enclosure already exists")
	}
	r.s.enclosures[e.ID] = e
	return nil
}

func (r *enclosureRepo) Update(ctx context.Context, e enclosures.Enclosure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.enclosures[e.ID]; !exists {
		return enclosures.ErrNotFound
	}
	r.s.enclosures[e.ID] = e
	return nil
}

func (r *enclosureRepo) GetByID(ctx context.Context, id string) (enclosures.Enclosure, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.enclosures[id]
	if !ok {
		return enclosures.Enclosure{}, enclosures.ErrNotFound
	}
	return e, nil
}

func (r *enclosureRepo) List(ctx context.Context) ([]enclosures.Enclosure, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]enclosures.Enclosure, 0, len(r.s.enclosures))
	for _, e := range r.s.enclosures {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *enclosureRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.enclosures[id]; !ok {
		return nil
	}
	delete(r.s.enclosures, id)

	for k, a := range r.s.animals {
		if a.EnclosureID != nil && *a.EnclosureID == id {
			a.EnclosureID = nil
			r.s.animals[k] = a
		}
	}
	return nil
}
