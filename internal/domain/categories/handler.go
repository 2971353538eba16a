package categories

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
	r.Route("/categories", func(cr chi.Router) {
		cr.Get("/", listCategoriesHandler(svc, log))
		cr.With(middleware.RequireClaims).Post("/", createCategoryHandler(svc, log))

		cr.Get("/{categoryID}", getCategoryHandler(svc, log))
		cr.With(middleware.RequireClaims).Put("/{categoryID}", updateCategoryHandler(svc, log))
		cr.With(middleware.RequireClaims).Delete("/{categoryID}", deleteCategoryHandler(svc, log))
	})
}

// categoryRequest es el cuerpo de alta y edición de una categoría.
type categoryRequest struct {
	Name string `json:"name"`
}

// categoryResponse representa una categoría devuelta por la API.
type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listCategoriesHandler godoc
// @Summary Listar categorías
// @Tags categories
// @Produce json
// @Success 200 {array} categoryResponse
// @Router /categories [get]
func listCategoriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]categoryResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCategoryResponse(c))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// createCategoryHandler godoc
// @Summary Crear categoría
// @Tags categories
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body categoryRequest true "Nombre de la categoría"
// @Success 201 {object} categoryResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /categories [post]
func createCategoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toCategoryResponse(c))
	}
}

// getCategoryHandler godoc
// @Summary Obtener categoría
// @Tags categories
// @Produce json
// @Param categoryID path string true "ID de la categoría"
// @Success 200 {object} categoryResponse
// @Failure 404 {string} string "category not found"
// @Router /categories/{categoryID} [get]
func getCategoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCategoryResponse(c))
	}
}

// updateCategoryHandler godoc
// @Summary Renombrar categoría
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "ID de la categoría"
// @Param payload body categoryRequest true "Nuevo nombre"
// @Success 200 {object} categoryResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "category not found"
// @Router /categories/{categoryID} [put]
func updateCategoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Rename(r.Context(), chi.URLParam(r, "categoryID"), req.Name)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toCategoryResponse(c))
	}
}

// deleteCategoryHandler godoc
// @Summary Borrar categoría
// @Description Idempotente. Los animales de la categoría quedan sin categoría.
// @Tags categories
// @Param categoryID path string true "ID de la categoría"
// @Success 204
// @Router /categories/{categoryID} [delete]
func deleteCategoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
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
		http.Error(w, "category not found", http.StatusNotFound)
	default:
		log.Error("categories handler failed", map[string]any{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
			"error":      err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
