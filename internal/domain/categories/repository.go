package categories

import "context"

type Repository interface {
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, c Category) error
	GetByID(ctx context.Context, id string) (Category, error)
	List(ctx context.Context) ([]Category, error)
	// Delete es idempotente; los animales de la categoría quedan sin categoría.
	Delete(ctx context.Context, id string) error
}
