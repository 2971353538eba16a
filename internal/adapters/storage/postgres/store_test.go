package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/domain/status"
)

func TestMapWriteErr(t *testing.T) {
	other := errors.New("connection reset")

	cases := []struct {
		name        string
		err         error
		wantInvalid bool
	}{
		{"nil", nil, false},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, true},
		{"check", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.CheckViolation}), true},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, false},
		{"other", other, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapWriteErr(tc.err)
			if errors.Is(got, animals.ErrInvalidInput) != tc.wantInvalid {
				t.Fatalf("mapWriteErr(%v) = %v, wantInvalid=%v", tc.err, got, tc.wantInvalid)
			}
			if tc.err == nil && got != nil {
				t.Fatalf("expected nil, got %v", got)
			}
		})
	}
}

// openTestStore necesita una base real: ZOO_TEST_DB_DSN=postgres://...
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("ZOO_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("ZOO_TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db, Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := NewStore(db)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newAnimal(name string) animals.Animal {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return animals.Animal{
		ID:                  uuid.NewString(),
		Name:                name,
		Size:                animals.SizeMedium,
		DietaryClass:        animals.DietCarnivore,
		ActivityPattern:     status.Diurnal,
		SecurityRequirement: animals.SecurityLow,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func TestStore_ConstraintsMapToInvalidInput(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	repo := st.Animals()

	missing := uuid.NewString()
	dangling := newAnimal("Dangling")
	dangling.EnclosureID = &missing
	if err := repo.Create(ctx, dangling); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("unknown enclosure: expected ErrInvalidInput, got %v", err)
	}

	old := newAnimal("Methuselah")
	old.Age = 500
	if err := repo.Create(ctx, old); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("age out of range: expected ErrInvalidInput, got %v", err)
	}

	lion := newAnimal("Lion")
	if err := repo.Create(ctx, lion); err != nil {
		t.Fatalf("create lion: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, lion.ID) })

	self := lion
	self.PreyID = &lion.ID
	self.Version = 2
	if err := repo.Update(ctx, self, 1); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("self prey: expected ErrInvalidInput, got %v", err)
	}

	lion.Version = 2
	if err := repo.Update(ctx, lion, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.Update(ctx, lion, 1); !errors.Is(err, animals.ErrConflict) {
		t.Fatalf("stale update: expected ErrConflict, got %v", err)
	}
}

func TestStore_DeleteEnclosureClearsReference(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	now := time.Now().UTC()
	encl := enclosures.Enclosure{ID: uuid.NewString(), Name: "Savanna", CreatedAt: now, UpdatedAt: now}
	if err := st.Enclosures().Create(ctx, encl); err != nil {
		t.Fatalf("create enclosure: %v", err)
	}

	zebra := newAnimal("Zebra")
	zebra.EnclosureID = &encl.ID
	if err := st.Animals().Create(ctx, zebra); err != nil {
		t.Fatalf("create zebra: %v", err)
	}
	t.Cleanup(func() { _ = st.Animals().Delete(ctx, zebra.ID) })

	if err := st.Enclosures().Delete(ctx, encl.ID); err != nil {
		t.Fatalf("delete enclosure: %v", err)
	}
	got, err := st.Animals().GetByID(ctx, zebra.ID)
	if err != nil {
		t.Fatalf("get zebra: %v", err)
	}
	if got.EnclosureID != nil {
		t.Fatalf("expected enclosure cleared, got %v", *got.EnclosureID)
	}
}
