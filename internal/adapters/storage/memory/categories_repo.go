package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"zoo-admin/internal/domain/categories"
)

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(ctx context.Context, c categories.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("category id required")
	}
	if _, exists := r.s.categories[c.ID]; exists {
		return errors.New("category already exists")
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c categories.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.categories[c.ID]; !exists {
		return categories.ErrNotFound
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return categories.Category{}, categories.ErrNotFound
	}
	return c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]categories.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]categories.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return nil
	}
	delete(r.s.categories, id)

	for k, a := range r.s.animals {
		if a.CategoryID != nil && *a.CategoryID == id {
			a.CategoryID = nil
			r.s.animals[k] = a
		}
	}
	return nil
}
