package animals

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/domain/status"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	ErrConflict     = errors.New("animal was modified concurrently")
)

// StatusRecorder recibe cada resultado del motor de estado (métricas).
type StatusRecorder interface {
	ObserveStatus(r status.Result)
}

type Service struct {
	repo       Repository
	enclosures *enclosures.Service
	categories *categories.Service

	now      func() time.Time
	loc      *time.Location
	recorder StatusRecorder
}

type Option func(*Service)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation fija la zona horaria del zoo para calcular la hora actual.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithStatusRecorder(r StatusRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(repo Repository, enclosuresSvc *enclosures.Service, categoriesSvc *categories.Service, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		enclosures: enclosuresSvc,
		categories: categoriesSvc,
		now:        time.Now,
		loc:        time.Local,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Input son los campos editables del formulario de animal.
type Input struct {
	Name                string                 `json:"name" validate:"required,max=120"`
	Species             string                 `json:"species" validate:"max=120"`
	Age                 int                    `json:"age" validate:"min=0,max=150"`
	Size                Size                   `json:"size" validate:"oneof=microscopic very_small small medium large very_large"`
	DietaryClass        DietaryClass           `json:"dietary_class" validate:"oneof=carnivore herbivore omnivore insectivore piscivore"`
	ActivityPattern     status.ActivityPattern `json:"activity_pattern" validate:"oneof=diurnal nocturnal cathemeral"`
	FeedingSchedule     string                 `json:"feeding_schedule" validate:"max=500,feeding_schedule"`
	PreyID              *string                `json:"prey_id" validate:"omitempty,uuid"`
	EnclosureID         *string                `json:"enclosure_id" validate:"omitempty,uuid"`
	CategoryID          *string                `json:"category_id" validate:"omitempty,uuid"`
	SpaceRequirement    float64                `json:"space_requirement" validate:"gte=0"`
	SecurityRequirement SecurityLevel          `json:"security_requirement" validate:"oneof=low medium high"`
}

// UpdateInput es la edición completa. ID y Version son opcionales:
// ID distinto al de la ruta => not found; Version distinta a la guardada => conflicto.
type UpdateInput struct {
	ID      string
	Version int
	Input
}

func (s *Service) Create(ctx context.Context, in Input) (Animal, error) {
	in = normalize(in)
	if err := s.validate(ctx, "", in); err != nil {
		return Animal{}, err
	}

	now := s.now()
	a := apply(Animal{
		ID:        uuid.NewString(),
		Version:   1,
		CreatedAt: now,
	}, in)
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Animal, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortByName(items)
	return items, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if in.ID = strings.TrimSpace(in.ID); in.ID != "" && in.ID != id {
		return Animal{}, ErrNotFound
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if in.Version != 0 && in.Version != current.Version {
		return Animal{}, ErrConflict
	}

	fields := normalize(in.Input)
	if err := s.validate(ctx, id, fields); err != nil {
		return Animal{}, err
	}

	updated := apply(current, fields)
	updated.Version = current.Version + 1
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated, current.Version); err != nil {
		return Animal{}, err
	}
	return updated, nil
}

// Delete no falla si el animal ya no existe.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

// CurrentHour es la hora (0-23) del reloj en la zona del zoo.
func (s *Service) CurrentHour() int {
	return s.now().In(s.loc).Hour()
}

// StatusAt calcula el estado de los animales filtrados para la hora dada.
func (s *Service) StatusAt(ctx context.Context, hour int, filter ListFilter) ([]StatusView, error) {
	if err := checkHour(hour); err != nil {
		return nil, err
	}

	items, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]StatusView, 0, len(items))
	for _, a := range items {
		out = append(out, s.statusOf(a, hour))
	}
	return out, nil
}

func (s *Service) StatusOf(ctx context.Context, id string, hour int) (StatusView, error) {
	if err := checkHour(hour); err != nil {
		return StatusView{}, err
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return StatusView{}, err
	}
	return s.statusOf(a, hour), nil
}

func (s *Service) statusOf(a Animal, hour int) StatusView {
	r := status.Evaluate(a.ActivityPattern, a.FeedingSchedule, hour)
	if s.recorder != nil {
		s.recorder.ObserveStatus(r)
	}
	return StatusView{
		ID:              a.ID,
		Name:            a.Name,
		Species:         a.Species,
		ActivityPattern: a.ActivityPattern,
		Hour:            hour,
		IsActive:        r.IsActive,
		IsEating:        r.IsEating,
	}
}

// FormOptions arma los desplegables del formulario. excludeID saca al propio
// animal de la lista de presas (un animal no puede ser su propia presa).
func (s *Service) FormOptions(ctx context.Context, excludeID string) (FormOptions, error) {
	encl, err := s.enclosures.List(ctx)
	if err != nil {
		return FormOptions{}, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return FormOptions{}, err
	}
	all, err := s.List(ctx, ListFilter{})
	if err != nil {
		return FormOptions{}, err
	}

	opts := FormOptions{
		Sizes:            Sizes,
		DietaryClasses:   DietaryClasses,
		ActivityPatterns: status.ActivityPatterns,
		SecurityLevels:   SecurityLevels,
		Enclosures:       make([]Ref, 0, len(encl)),
		Categories:       make([]Ref, 0, len(cats)),
		Prey:             make([]Ref, 0, len(all)),
	}
	for _, e := range encl {
		opts.Enclosures = append(opts.Enclosures, Ref{ID: e.ID, Name: e.Name})
	}
	for _, c := range cats {
		opts.Categories = append(opts.Categories, Ref{ID: c.ID, Name: c.Name})
	}
	excludeID = strings.TrimSpace(excludeID)
	for _, a := range all {
		if a.ID == excludeID {
			continue
		}
		opts.Prey = append(opts.Prey, Ref{ID: a.ID, Name: a.Name})
	}
	sortRefs(opts.Enclosures)
	sortRefs(opts.Categories)

	return opts, nil
}

// EnclosureNames devuelve id => nombre para embeber el recinto en los listados.
func (s *Service) EnclosureNames(ctx context.Context) (map[string]string, error) {
	items, err := s.enclosures.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, e := range items {
		out[e.ID] = e.Name
	}
	return out, nil
}

func apply(a Animal, in Input) Animal {
	a.Name = in.Name
	a.Species = in.Species
	a.Age = in.Age
	a.Size = in.Size
	a.DietaryClass = in.DietaryClass
	a.ActivityPattern = in.ActivityPattern
	a.FeedingSchedule = in.FeedingSchedule
	a.PreyID = in.PreyID
	a.EnclosureID = in.EnclosureID
	a.CategoryID = in.CategoryID
	a.SpaceRequirement = in.SpaceRequirement
	a.SecurityRequirement = in.SecurityRequirement
	return a
}

// normalize recorta textos, pasa enums a minúscula y aplica los defaults
// (primer valor de cada enum).
func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)
	in.FeedingSchedule = strings.TrimSpace(in.FeedingSchedule)

	in.Size = Size(lowerOr(string(in.Size), string(SizeMicroscopic)))
	in.DietaryClass = DietaryClass(lowerOr(string(in.DietaryClass), string(DietCarnivore)))
	in.ActivityPattern = status.ActivityPattern(lowerOr(string(in.ActivityPattern), string(status.Diurnal)))
	in.SecurityRequirement = SecurityLevel(lowerOr(string(in.SecurityRequirement), string(SecurityLow)))

	in.PreyID = cleanRef(in.PreyID)
	in.EnclosureID = cleanRef(in.EnclosureID)
	in.CategoryID = cleanRef(in.CategoryID)
	return in
}

func lowerOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

func cleanRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

func checkHour(hour int) error {
	if hour < 0 || hour > 23 {
		return &ValidationError{Fields: map[string]string{"hour": "must be between 0 and 23"}}
	}
	return nil
}

func sortByName(items []Animal) {
	sort.SliceStable(items, func(i, j int) bool {
		ni, nj := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return items[i].ID < items[j].ID
	})
}

func sortRefs(refs []Ref) {
	sort.SliceStable(refs, func(i, j int) bool {
		return strings.ToLower(refs[i].Name) < strings.ToLower(refs[j].Name)
	})
}
