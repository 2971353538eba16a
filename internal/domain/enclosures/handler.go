package enclosures

import (
	"errors"
	"net/http"
	"time"

	"zoo-admin/internal/middleware"
	"zoo-admin/internal/platform/httpjson"
	"zoo-admin/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/enclosures", func(er chi.Router) {
		er.Get("/", listEnclosuresHandler(svc, log))
		er.With(middleware.RequireClaims).Post("/", createEnclosureHandler(svc, log))

		er.Get("/{enclosureID}", getEnclosureHandler(svc, log))
		er.With(middleware.RequireClaims).Put("/{enclosureID}", updateEnclosureHandler(svc, log))
		er.With(middleware.RequireClaims).Delete("/{enclosureID}", deleteEnclosureHandler(svc, log))
	})
}

// enclosureRequest es el cuerpo de alta y edición de un recinto.
type enclosureRequest struct {
	Name string `json:"name"`
}

// enclosureResponse representa un recinto devuelto por la API.
type enclosureResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listEnclosuresHandler godoc
// @Summary Listar recintos
// @Tags enclosures
// @Produce json
// @Success 200 {array} enclosureResponse
// @Router /enclosures [get]
func listEnclosuresHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]enclosureResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEnclosureResponse(e))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// createEnclosureHandler godoc
// @Summary Crear recinto
// @Tags enclosures
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body enclosureRequest true "Nombre del recinto"
// @Success 201 {object} enclosureResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /enclosures [post]
func createEnclosureHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enclosureRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toEnclosureResponse(e))
	}
}

// getEnclosureHandler godoc
// @Summary Obtener recinto
// @Tags enclosures
// @Produce json
// @Param enclosureID path string true "ID del recinto"
// @Success 200 {object} enclosureResponse
// @Failure 404 {string} string "enclosure not found"
// @Router /enclosures/{enclosureID} [get]
func getEnclosureHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "enclosureID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toEnclosureResponse(e))
	}
}

// updateEnclosureHandler godoc
// @Summary Renombrar recinto
// @Tags enclosures
// @Accept json
// @Produce json
// @Param enclosureID path string true "ID del recinto"
// @Param payload body enclosureRequest true "Nuevo nombre"
// @Success 200 {object} enclosureResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "enclosure not found"
// @Router /enclosures/{enclosureID} [put]
func updateEnclosureHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enclosureRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Rename(r.Context(), chi.URLParam(r, "enclosureID"), req.Name)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toEnclosureResponse(e))
	}
}

// deleteEnclosureHandler godoc
// @Summary Borrar recinto
// @Description Idempotente. Los animales del recinto quedan sin recinto.
// @Tags enclosures
// @Param enclosureID path string true "ID del recinto"
// @Success 204
// @Router /enclosures/{enclosureID} [delete]
func deleteEnclosureHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "enclosureID")); err != nil {
			writeError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "name is required (max 120 characters)", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "enclosure not found", http.StatusNotFound)
	default:
		log.Error("enclosures handler failed", map[string]any{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
			"error":      err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEnclosureResponse(e Enclosure) enclosureResponse {
	return enclosureResponse{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
