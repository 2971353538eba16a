package animals

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/domain/status"
	"zoo-admin/internal/middleware"
	"zoo-admin/internal/platform/httpjson"
	"zoo-admin/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc, log))
		ar.With(middleware.RequireClaims).Post("/", createAnimalHandler(svc, log))

		// Datos para los desplegables del formulario
		ar.Get("/options", formOptionsHandler(svc, log))

		// Vista de estado (activo / comiendo), calculada al vuelo
		ar.Get("/status", statusListHandler(svc, log))

		ar.Get("/{animalID}", getAnimalHandler(svc, log))
		ar.Get("/{animalID}/status", animalStatusHandler(svc, log))
		ar.With(middleware.RequireClaims).Put("/{animalID}", updateAnimalHandler(svc, log))
		ar.With(middleware.RequireClaims).Delete("/{animalID}", deleteAnimalHandler(svc, log))
	})

	// Miembros de recintos y categorías (la relación vive en Animal)
	r.Get("/enclosures/{enclosureID}/animals", enclosureAnimalsHandler(svc, log))
	r.Get("/categories/{categoryID}/animals", categoryAnimalsHandler(svc, log))
}

// animalRequest es el cuerpo de alta y edición de un animal.
// En edición, id y version son opcionales (ver UpdateInput).
type animalRequest struct {
	ID                  string                 `json:"id,omitempty"`
	Version             int                    `json:"version,omitempty"`
	Name                string                 `json:"name"`
	Species             string                 `json:"species"`
	Age                 int                    `json:"age"`
	Size                Size                   `json:"size" enums:"microscopic,very_small,small,medium,large,very_large"`
	DietaryClass        DietaryClass           `json:"dietary_class" enums:"carnivore,herbivore,omnivore,insectivore,piscivore"`
	ActivityPattern     status.ActivityPattern `json:"activity_pattern" enums:"diurnal,nocturnal,cathemeral"`
	FeedingSchedule     string                 `json:"feeding_schedule"` // ej: "8-9, 16:00-17:00"
	PreyID              *string                `json:"prey_id"`
	EnclosureID         *string                `json:"enclosure_id"`
	CategoryID          *string                `json:"category_id"`
	SpaceRequirement    float64                `json:"space_requirement"`
	SecurityRequirement SecurityLevel          `json:"security_requirement" enums:"low,medium,high"`
}

type refResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Species             string                 `json:"species"`
	Age                 int                    `json:"age"`
	Size                Size                   `json:"size"`
	DietaryClass        DietaryClass           `json:"dietary_class"`
	ActivityPattern     status.ActivityPattern `json:"activity_pattern"`
	FeedingSchedule     string                 `json:"feeding_schedule"`
	PreyID              *string                `json:"prey_id"`
	EnclosureID         *string                `json:"enclosure_id"`
	Enclosure           *refResponse           `json:"enclosure,omitempty"`
	CategoryID          *string                `json:"category_id"`
	SpaceRequirement    float64                `json:"space_requirement"`
	SecurityRequirement SecurityLevel          `json:"security_requirement"`
	Version             int                    `json:"version"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// statusResponse es una fila de la vista de estado.
type statusResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Species         string                 `json:"species"`
	ActivityPattern status.ActivityPattern `json:"activity_pattern"`
	Hour            int                    `json:"hour"`
	IsActive        bool                   `json:"is_active"`
	IsEating        bool                   `json:"is_eating"`
}

type formOptionsResponse struct {
	Sizes            []Size                   `json:"sizes"`
	DietaryClasses   []DietaryClass           `json:"dietary_classes"`
	ActivityPatterns []status.ActivityPattern `json:"activity_patterns"`
	SecurityLevels   []SecurityLevel          `json:"security_levels"`
	Enclosures       []refResponse            `json:"enclosures"`
	Categories       []refResponse            `json:"categories"`
	Prey             []refResponse            `json:"prey"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista los animales ordenados por nombre, con el recinto embebido. Filtros opcionales por recinto, categoría, patrón de actividad y texto libre (nombre/especie).
// @Tags animals
// @Produce json
// @Param enclosure_id query string false "ID de recinto"
// @Param category_id query string false "ID de categoría"
// @Param activity_pattern query string false "diurnal | nocturnal | cathemeral"
// @Param q query string false "Texto en nombre o especie"
// @Success 200 {array} animalResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 500 {string} string "internal error"
// @Router /animals [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		writeAnimals(w, r, svc, log, items)
	}
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Da de alta un animal. Requiere usuario autenticado (`X-Debug-User-ID` en dev o `Authorization: Bearer <token>`). La presa, el recinto y la categoría deben existir.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body animalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		writeAnimal(w, r, svc, log, http.StatusCreated, a)
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		writeAnimal(w, r, svc, log, http.StatusOK, a)
	}
}

// updateAnimalHandler godoc
// @Summary Editar animal
// @Description Reemplaza todos los campos editables. Si el cuerpo trae `id` distinto al de la ruta responde 404; si trae `version` y no coincide con la guardada responde 409.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body animalRequest true "Datos del animal"
// @Success 200 {object} animalResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "conflict"
// @Router /animals/{animalID} [put]
func updateAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			ID:      req.ID,
			Version: req.Version,
			Input:   req.toInput(),
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		writeAnimal(w, r, svc, log, http.StatusOK, a)
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Description Borra el animal. Es idempotente (204 aunque no exista). Los predadores que lo tenían como presa quedan sin presa; no hay borrado en cascada.
// @Tags animals
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			writeError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// formOptionsHandler godoc
// @Summary Opciones del formulario de animal
// @Description Valores de los enums, recintos, categorías y presas posibles. `exclude` saca un animal de la lista de presas (el que se está editando).
// @Tags animals
// @Produce json
// @Param exclude query string false "ID del animal a excluir de las presas"
// @Success 200 {object} formOptionsResponse
// @Router /animals/options [get]
func formOptionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.FormOptions(r.Context(), r.URL.Query().Get("exclude"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, formOptionsResponse{
			Sizes:            opts.Sizes,
			DietaryClasses:   opts.DietaryClasses,
			ActivityPatterns: opts.ActivityPatterns,
			SecurityLevels:   opts.SecurityLevels,
			Enclosures:       toRefResponses(opts.Enclosures),
			Categories:       toRefResponses(opts.Categories),
			Prey:             toRefResponses(opts.Prey),
		})
	}
}

// statusListHandler godoc
// @Summary Estado de los animales
// @Description Calcula para cada animal si está activo (diurnos entre las 7 y las 17) y si está comiendo (según su horario de alimentación). La hora sale del reloj del servidor en la zona del zoo, salvo que se pase `hour`.
// @Tags animals
// @Produce json
// @Param hour query int false "Hora 0-23 a evaluar"
// @Param enclosure_id query string false "ID de recinto"
// @Param category_id query string false "ID de categoría"
// @Param activity_pattern query string false "diurnal | nocturnal | cathemeral"
// @Success 200 {array} statusResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Router /animals/status [get]
func statusListHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hour, err := parseHour(r, svc)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		filter, err := parseListFilter(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		items, err := svc.StatusAt(r.Context(), hour, filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]statusResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toStatusResponse(v))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// animalStatusHandler godoc
// @Summary Estado de un animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param hour query int false "Hora 0-23 a evaluar"
// @Success 200 {object} statusResponse
// @Failure 400 {object} httpjson.ErrorBody
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/status [get]
func animalStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hour, err := parseHour(r, svc)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		v, err := svc.StatusOf(r.Context(), chi.URLParam(r, "animalID"), hour)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toStatusResponse(v))
	}
}

// enclosureAnimalsHandler godoc
// @Summary Animales de un recinto
// @Tags enclosures
// @Produce json
// @Param enclosureID path string true "ID del recinto"
// @Success 200 {array} animalResponse
// @Failure 404 {string} string "enclosure not found"
// @Router /enclosures/{enclosureID}/animals [get]
func enclosureAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "enclosureID")
		if _, err := svc.enclosures.GetByID(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{EnclosureID: id})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeAnimals(w, r, svc, log, items)
	}
}

// categoryAnimalsHandler godoc
// @Summary Animales de una categoría
// @Tags categories
// @Produce json
// @Param categoryID path string true "ID de la categoría"
// @Success 200 {array} animalResponse
// @Failure 404 {string} string "category not found"
// @Router /categories/{categoryID}/animals [get]
func categoryAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "categoryID")
		if _, err := svc.categories.GetByID(r.Context(), id); err != nil {
			writeError(w, r, log, err)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{CategoryID: id})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeAnimals(w, r, svc, log, items)
	}
}

func writeAnimals(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, items []Animal) {
	names, err := svc.EnclosureNames(r.Context())
	if err != nil {
		writeError(w, r, log, err)
		return
	}

	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a, names))
	}
	httpjson.Write(w, http.StatusOK, out)
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	filter := ListFilter{
		EnclosureID: strings.TrimSpace(q.Get("enclosure_id")),
		CategoryID:  strings.TrimSpace(q.Get("category_id")),
		Query:       strings.TrimSpace(q.Get("q")),
	}

	if v := strings.TrimSpace(q.Get("activity_pattern")); v != "" {
		p, ok := status.ParseActivityPattern(v)
		if !ok {
			return ListFilter{}, &ValidationError{Fields: map[string]string{
				"activity_pattern": "must be one of: diurnal, nocturnal, cathemeral",
			}}
		}
		filter.ActivityPattern = p
	}

	return filter, nil
}

// parseHour usa ?hour= si viene; si no, la hora actual del zoo.
func parseHour(r *http.Request, svc *Service) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("hour"))
	if v == "" {
		return svc.CurrentHour(), nil
	}
	h, err := strconv.Atoi(v)
	if err != nil || h < 0 || h > 23 {
		return 0, &ValidationError{Fields: map[string]string{"hour": "must be between 0 and 23"}}
	}
	return h, nil
}

// writeAnimal responde con la misma forma que el listado (recinto embebido).
func writeAnimal(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, code int, a Animal) {
	names, err := svc.EnclosureNames(r.Context())
	if err != nil {
		writeError(w, r, log, err)
		return
	}
	httpjson.Write(w, code, toAnimalResponse(a, names))
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpjson.WriteError(w, http.StatusBadRequest, ErrInvalidInput.Error(), verr.Fields)
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, enclosures.ErrNotFound):
		http.Error(w, "enclosure not found", http.StatusNotFound)
	case errors.Is(err, categories.ErrNotFound):
		http.Error(w, "category not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.Canceled):
		// el cliente se fue; no hay a quién responder
	default:
		log.Error("animals handler failed", map[string]any{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
			"error":      err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (req animalRequest) toInput() Input {
	return Input{
		Name:                req.Name,
		Species:             req.Species,
		Age:                 req.Age,
		Size:                req.Size,
		DietaryClass:        req.DietaryClass,
		ActivityPattern:     req.ActivityPattern,
		FeedingSchedule:     req.FeedingSchedule,
		PreyID:              req.PreyID,
		EnclosureID:         req.EnclosureID,
		CategoryID:          req.CategoryID,
		SpaceRequirement:    req.SpaceRequirement,
		SecurityRequirement: req.SecurityRequirement,
	}
}

// toAnimalResponse embebe el recinto cuando está en enclosureNames.
func toAnimalResponse(a Animal, enclosureNames map[string]string) animalResponse {
	out := animalResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Species:             a.Species,
		Age:                 a.Age,
		Size:                a.Size,
		DietaryClass:        a.DietaryClass,
		ActivityPattern:     a.ActivityPattern,
		FeedingSchedule:     a.FeedingSchedule,
		PreyID:              a.PreyID,
		EnclosureID:         a.EnclosureID,
		CategoryID:          a.CategoryID,
		SpaceRequirement:    a.SpaceRequirement,
		SecurityRequirement: a.SecurityRequirement,
		Version:             a.Version,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if a.EnclosureID != nil {
		if name, ok := enclosureNames[*a.EnclosureID]; ok {
			out.Enclosure = &refResponse{ID: *a.EnclosureID, Name: name}
		}
	}
	return out
}

func toStatusResponse(v StatusView) statusResponse {
	return statusResponse{
		ID:              v.ID,
		Name:            v.Name,
		Species:         v.Species,
		ActivityPattern: v.ActivityPattern,
		Hour:            v.Hour,
		IsActive:        v.IsActive,
		IsEating:        v.IsEating,
	}
}

func toRefResponses(refs []Ref) []refResponse {
	out := make([]refResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, refResponse{ID: r.ID, Name: r.Name})
	}
	return out
}
