package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID devuelve el id asignado por chimw.RequestID ("" si no hay).
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
