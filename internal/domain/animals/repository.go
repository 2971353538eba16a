package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	// Update reemplaza el registro si la versión guardada es expectedVersion.
	// Devuelve ErrNotFound o ErrConflict.
	Update(ctx context.Context, a Animal, expectedVersion int) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, filter ListFilter) ([]Animal, error)
	// Delete es idempotente y limpia PreyID en los predadores que apuntaban al animal.
	Delete(ctx context.Context, id string) error
}
