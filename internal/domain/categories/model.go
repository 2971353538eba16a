package categories

import "time"

// Category agrupa animales (mamíferos, aves, reptiles...).
// Referencia no-dueña desde Animal.CategoryID.
type Category struct {
	ID   string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
