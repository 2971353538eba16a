package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
)

var ErrNoSink = errors.New("backup sink not configured")

// Sink guarda el JSON serializado bajo key (archivo local, bucket S3...).
type Sink interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
}

type Service struct {
	animals    *animals.Service
	enclosures *enclosures.Service
	categories *categories.Service
	now        func() time.Time
}

func NewService(animalsSvc *animals.Service, enclosuresSvc *enclosures.Service, categoriesSvc *categories.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		animals:    animalsSvc,
		enclosures: enclosuresSvc,
		categories: categoriesSvc,
		now:        now,
	}
}

// Take lee los tres listados. No es transaccional entre tablas: una baja
// concurrente puede dejar una referencia a un id que no está en la foto.
func (s *Service) Take(ctx context.Context) (Snapshot, error) {
	encl, err := s.enclosures.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing enclosures: %w", err)
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing categories: %w", err)
	}
	items, err := s.animals.List(ctx, animals.ListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing animals: %w", err)
	}

	snap := Snapshot{
		FormatVersion: FormatVersion,
		TakenAt:       s.now().UTC(),
		Enclosures:    make([]NamedItem, 0, len(encl)),
		Categories:    make([]NamedItem, 0, len(cats)),
		Animals:       make([]Animal, 0, len(items)),
	}
	for _, e := range encl {
		snap.Enclosures = append(snap.Enclosures, NamedItem{ID: e.ID, Name: e.Name, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt})
	}
	for _, c := range cats {
		snap.Categories = append(snap.Categories, NamedItem{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
	}
	for _, a := range items {
		snap.Animals = append(snap.Animals, fromAnimal(a))
	}
	return snap, nil
}

// Run toma la foto y la escribe en sink con una key con timestamp.
func (s *Service) Run(ctx context.Context, sink Sink) (Result, error) {
	if sink == nil {
		return Result{}, ErrNoSink
	}
	snap, err := s.Take(ctx)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return Result{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	key := Key(snap.TakenAt)
	size := buf.Len()
	if err := sink.Put(ctx, key, bytes.NewReader(buf.Bytes()), "application/json"); err != nil {
		return Result{}, fmt.Errorf("writing backup %s: %w", key, err)
	}

	return Result{
		Key:        key,
		Bytes:      size,
		Enclosures: len(snap.Enclosures),
		Categories: len(snap.Categories),
		Animals:    len(snap.Animals),
	}, nil
}

// Key: zoo-backup-20240102T150405Z.json
func Key(t time.Time) string {
	return "zoo-backup-" + t.UTC().Format("20060102T150405Z") + ".json"
}

func fromAnimal(a animals.Animal) Animal {
	return Animal{
		ID:                  a.ID,
		Name:                a.Name,
		Species:             a.Species,
		Age:                 a.Age,
		Size:                string(a.Size),
		DietaryClass:        string(a.DietaryClass),
		ActivityPattern:     string(a.ActivityPattern),
		FeedingSchedule:     a.FeedingSchedule,
		PreyID:              a.PreyID,
		EnclosureID:         a.EnclosureID,
		CategoryID:          a.CategoryID,
		SpaceRequirement:    a.SpaceRequirement,
		SecurityRequirement: string(a.SecurityRequirement),
		Version:             a.Version,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}
