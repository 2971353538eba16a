package backup

import (
	"net/http"

	"zoo-admin/internal/middleware"
	"zoo-admin/internal/platform/httpjson"
	"zoo-admin/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.With(middleware.RequireClaims).Get("/backup", snapshotHandler(svc, log))
}

// snapshotHandler godoc
// @Summary Exportar el zoo
// @Description Devuelve recintos, categorías y animales en un único JSON (mismo formato que "zoo backup").
// @Tags backup
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Snapshot
// @Failure 401 {string} string "unauthorized"
// @Router /backup [get]
func snapshotHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Take(r.Context())
		if err != nil {
			log.Error("backup snapshot failed", map[string]any{
				"request_id": middleware.RequestID(r.Context()),
				"error":      err,
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+Key(snap.TakenAt)+`"`)
		httpjson.Write(w, http.StatusOK, snap)
	}
}
