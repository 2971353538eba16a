package animals_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"zoo-admin/internal/adapters/storage/memory"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/domain/status"
)

type fixture struct {
	svc        *animals.Service
	enclosures *enclosures.Service
	categories *categories.Service
	recorded   *countingRecorder
}

type countingRecorder struct {
	results []status.Result
}

func (c *countingRecorder) ObserveStatus(r status.Result) { c.results = append(c.results, r) }

func newFixture(t *testing.T, opts ...animals.Option) fixture {
	t.Helper()
	st := memory.NewStore()
	rec := &countingRecorder{}

	enclSvc := enclosures.NewService(st.Enclosures())
	catSvc := categories.NewService(st.Categories())
	opts = append(opts, animals.WithStatusRecorder(rec))

	return fixture{
		svc:        animals.NewService(st.Animals(), enclSvc, catSvc, opts...),
		enclosures: enclSvc,
		categories: catSvc,
		recorded:   rec,
	}
}

func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, svc *animals.Service, in animals.Input) animals.Animal {
	t.Helper()
	a, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create %q: %v", in.Name, err)
	}
	return a
}

func TestCreate_AppliesDefaults(t *testing.T) {
	f := newFixture(t)

	a := mustCreate(t, f.svc, animals.Input{Name: "  Leo  "})
	if a.Name != "Leo" || a.Version != 1 {
		t.Fatalf("unexpected animal: %+v", a)
	}
	if a.Size != animals.SizeMicroscopic || a.DietaryClass != animals.DietCarnivore ||
		a.ActivityPattern != status.Diurnal || a.SecurityRequirement != animals.SecurityLow {
		t.Fatalf("defaults not applied: %+v", a)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), animals.Input{
		Age:             151,
		Size:            "huge",
		FeedingSchedule: "twice a day",
		EnclosureID:     strPtr("4b3c1b9e-7e43-4a39-9b1c-1f7a1d2f9a10"),
	})
	if !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var verr *animals.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	for _, field := range []string{"name", "age", "size", "feeding_schedule", "enclosure_id"} {
		if verr.Fields[field] == "" {
			t.Fatalf("expected error on %q, got %v", field, verr.Fields)
		}
	}
}

func TestUpdate_PreyRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	zebra := mustCreate(t, f.svc, animals.Input{Name: "Zebra", DietaryClass: animals.DietHerbivore})
	lion := mustCreate(t, f.svc, animals.Input{Name: "Lion", PreyID: strPtr(zebra.ID)})

	// un animal no puede ser su propia presa
	_, err := f.svc.Update(ctx, lion.ID, animals.UpdateInput{Input: animals.Input{Name: "Lion", PreyID: strPtr(lion.ID)}})
	var verr *animals.ValidationError
	if !errors.As(err, &verr) || verr.Fields["prey_id"] == "" {
		t.Fatalf("expected prey_id validation error, got %v", err)
	}

	if err := f.svc.Delete(ctx, zebra.ID); err != nil {
		t.Fatalf("delete zebra: %v", err)
	}
	got, err := f.svc.GetByID(ctx, lion.ID)
	if err != nil {
		t.Fatalf("get lion: %v", err)
	}
	if got.PreyID != nil {
		t.Fatalf("expected prey cleared after delete")
	}
}

func TestUpdate_VersionAndIDChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := mustCreate(t, f.svc, animals.Input{Name: "Owl", ActivityPattern: status.Nocturnal})

	updated, err := f.svc.Update(ctx, a.ID, animals.UpdateInput{
		Version: 1,
		Input:   animals.Input{Name: "Barn owl", ActivityPattern: status.Nocturnal},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 2 || updated.Name != "Barn owl" {
		t.Fatalf("unexpected animal after update: %+v", updated)
	}

	_, err = f.svc.Update(ctx, a.ID, animals.UpdateInput{Version: 1, Input: animals.Input{Name: "Stale"}})
	if !errors.Is(err, animals.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = f.svc.Update(ctx, a.ID, animals.UpdateInput{ID: "other-id", Input: animals.Input{Name: "X"}})
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on id mismatch, got %v", err)
	}

	_, err = f.svc.Update(ctx, "missing", animals.UpdateInput{Input: animals.Input{Name: "X"}})
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusAt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mustCreate(t, f.svc, animals.Input{Name: "Lion", FeedingSchedule: "12-13"})
	mustCreate(t, f.svc, animals.Input{Name: "Owl", ActivityPattern: status.Nocturnal, FeedingSchedule: "22-2"})

	cases := []struct {
		hour                   int
		lionActive, lionEating bool
		owlEating              bool
	}{
		{hour: 6},
		{hour: 7, lionActive: true},
		{hour: 12, lionActive: true, lionEating: true},
		{hour: 17, lionActive: true},
		{hour: 18},
		{hour: 23, owlEating: true},
		{hour: 1, owlEating: true},
	}
	for _, tc := range cases {
		views, err := f.svc.StatusAt(ctx, tc.hour, animals.ListFilter{})
		if err != nil {
			t.Fatalf("hour %d: %v", tc.hour, err)
		}
		if len(views) != 2 || views[0].Name != "Lion" || views[1].Name != "Owl" {
			t.Fatalf("hour %d: unexpected views %+v", tc.hour, views)
		}
		lion, owl := views[0], views[1]
		if lion.IsActive != tc.lionActive || lion.IsEating != tc.lionEating {
			t.Fatalf("hour %d: lion active=%v eating=%v", tc.hour, lion.IsActive, lion.IsEating)
		}
		if owl.IsActive || owl.IsEating != tc.owlEating {
			t.Fatalf("hour %d: owl active=%v eating=%v", tc.hour, owl.IsActive, owl.IsEating)
		}
	}

	if got := len(f.recorded.results); got != 2*len(cases) {
		t.Fatalf("expected %d recorded evaluations, got %d", 2*len(cases), got)
	}

	if _, err := f.svc.StatusAt(ctx, 24, animals.ListFilter{}); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for hour 24, got %v", err)
	}
}

func TestCurrentHour_UsesZooLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	clock := func() time.Time { return time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC) }

	f := newFixture(t, animals.WithClock(clock), animals.WithLocation(loc))
	if got := f.svc.CurrentHour(); got != 11 {
		t.Fatalf("expected hour 11 in UTC-3, got %d", got)
	}
}

func TestFormOptions_ExcludesSelf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.enclosures.Create(ctx, "Savanna"); err != nil {
		t.Fatalf("create enclosure: %v", err)
	}
	if _, err := f.categories.Create(ctx, "Mammals"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	lion := mustCreate(t, f.svc, animals.Input{Name: "Lion"})
	mustCreate(t, f.svc, animals.Input{Name: "Zebra"})

	opts, err := f.svc.FormOptions(ctx, lion.ID)
	if err != nil {
		t.Fatalf("form options: %v", err)
	}
	if len(opts.Prey) != 1 || opts.Prey[0].Name != "Zebra" {
		t.Fatalf("expected only Zebra as prey, got %+v", opts.Prey)
	}
	if len(opts.Enclosures) != 1 || len(opts.Categories) != 1 {
		t.Fatalf("expected one enclosure and one category, got %+v", opts)
	}
	if len(opts.Sizes) != len(animals.Sizes) || len(opts.ActivityPatterns) != 3 {
		t.Fatalf("unexpected enum options: %+v", opts)
	}
}
