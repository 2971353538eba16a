package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"zoo-admin/internal/adapters/storage/sqlite"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/domain/status"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "zoo.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func strPtr(s string) *string { return &s }

func newAnimal(id, name string) animals.Animal {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return animals.Animal{
		ID:                  id,
		Name:                name,
		Species:             "Panthera leo",
		Age:                 4,
		Size:                animals.SizeLarge,
		DietaryClass:        animals.DietCarnivore,
		ActivityPattern:     status.Diurnal,
		FeedingSchedule:     "12-13",
		SpaceRequirement:    50,
		SecurityRequirement: animals.SecurityHigh,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func TestAnimals_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Animals()

	a := newAnimal("a-1", "Leo")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Leo" || got.FeedingSchedule != "12-13" || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("unexpected animal: %+v", got)
	}

	got.Name = "Leo II"
	got.Version = 2
	if err := repo.Update(ctx, got, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	// versión vieja => conflicto
	got.Version = 3
	if err := repo.Update(ctx, got, 1); !errors.Is(err, animals.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	missing := newAnimal("nope", "Ghost")
	if err := repo.Update(ctx, missing, 1); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnimals_DeleteClearsPrey(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Animals()

	prey := newAnimal("zebra", "Zebra")
	lion := newAnimal("lion", "Lion")
	lion.PreyID = strPtr("zebra")

	for _, a := range []animals.Animal{prey, lion} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	if err := repo.Delete(ctx, "zebra"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "zebra"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}

	got, err := repo.GetByID(ctx, "lion")
	if err != nil {
		t.Fatalf("get lion: %v", err)
	}
	if got.PreyID != nil {
		t.Fatalf("expected prey cleared, got %q", *got.PreyID)
	}
}

func TestAnimals_SelfPreyRejected(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Animals()

	a := newAnimal("a-1", "Ouroboros")
	a.PreyID = strPtr("a-1")
	if err := repo.Create(ctx, a); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnimals_ListFilters(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	now := time.Now()
	if err := st.Enclosures().Create(ctx, enclosures.Enclosure{ID: "savanna", Name: "Savanna", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create enclosure: %v", err)
	}

	lion := newAnimal("lion", "Lion")
	lion.EnclosureID = strPtr("savanna")
	owl := newAnimal("owl", "owl")
	owl.Species = "Bubo bubo"
	owl.ActivityPattern = status.Nocturnal

	for _, a := range []animals.Animal{owl, lion} {
		if err := st.Animals().Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	cases := []struct {
		name   string
		filter animals.ListFilter
		want   []string
	}{
		{"all sorted by name", animals.ListFilter{}, []string{"lion", "owl"}},
		{"by enclosure", animals.ListFilter{EnclosureID: "savanna"}, []string{"lion"}},
		{"by pattern", animals.ListFilter{ActivityPattern: status.Nocturnal}, []string{"owl"}},
		{"query matches species", animals.ListFilter{Query: "BUBO"}, []string{"owl"}},
		{"no match", animals.ListFilter{Query: "zebra"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := st.Animals().List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(items) != len(tc.want) {
				t.Fatalf("expected %v, got %d items", tc.want, len(items))
			}
			for i, id := range tc.want {
				if items[i].ID != id {
					t.Fatalf("item %d: expected %s, got %s", i, id, items[i].ID)
				}
			}
		})
	}

	// borrar el recinto deja al león sin recinto
	if err := st.Enclosures().Delete(ctx, "savanna"); err != nil {
		t.Fatalf("delete enclosure: %v", err)
	}
	got, err := st.Animals().GetByID(ctx, "lion")
	if err != nil {
		t.Fatalf("get lion: %v", err)
	}
	if got.EnclosureID != nil {
		t.Fatalf("expected enclosure cleared")
	}
}

func TestEnclosures_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Enclosures()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, enclosures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, enclosures.Enclosure{ID: "missing", Name: "x"}); !errors.Is(err, enclosures.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
