package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AnimalStatus es una fila de GET /animals/status.
type AnimalStatus struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Species         string `json:"species"`
	ActivityPattern string `json:"activity_pattern"`
	Hour            int    `json:"hour"`
	IsActive        bool   `json:"is_active"`
	IsEating        bool   `json:"is_eating"`
}

// StatusFilter son los parámetros opcionales de la vista de estado.
// Hour nil => la hora actual del server.
type StatusFilter struct {
	Hour            *int
	EnclosureID     string
	CategoryID      string
	ActivityPattern string
}

func (f StatusFilter) values() url.Values {
	q := url.Values{}
	if f.Hour != nil {
		q.Set("hour", strconv.Itoa(*f.Hour))
	}
	if f.EnclosureID != "" {
		q.Set("enclosure_id", f.EnclosureID)
	}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if f.ActivityPattern != "" {
		q.Set("activity_pattern", f.ActivityPattern)
	}
	return q
}

func (c *Client) Status(ctx context.Context, f StatusFilter) ([]AnimalStatus, error) {
	var out []AnimalStatus
	if err := c.DoJSON(ctx, http.MethodGet, "/animals/status", f.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health devuelve nil si /health responde 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.DoJSON(ctx, http.MethodGet, "/health", nil, nil, nil)
}
