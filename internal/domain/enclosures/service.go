package enclosures

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("enclosure not found")
)

const maxNameLen = 120

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, name string) (Enclosure, error) {
	name, err := cleanName(name)
	if err != nil {
		return Enclosure{}, err
	}

	now := s.now()
	e := Enclosure{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Enclosure{}, err
	}
	return e, nil
}

func (s *Service) Rename(ctx context.Context, id, name string) (Enclosure, error) {
	name, err := cleanName(name)
	if err != nil {
		return Enclosure{}, err
	}

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return Enclosure{}, err
	}
	e.Name = name
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return Enclosure{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Enclosure, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Enclosure{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Enclosure, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

// Exists lo usa animals para validar EnclosureID sin acoplarse al repo.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return "", ErrInvalidInput
	}
	return name, nil
}
