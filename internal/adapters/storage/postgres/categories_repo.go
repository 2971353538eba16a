package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zoo-admin/internal/domain/categories"
)

type CategoriesRepo struct {
	db *sql.DB
}

func NewCategoriesRepo(db *sql.DB) *CategoriesRepo {
	return &CategoriesRepo{db: db}
}

func (r *CategoriesRepo) Create(ctx context.Context, c categories.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CategoriesRepo) Update(ctx context.Context, c categories.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1
	`, c.ID, c.Name, c.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	var c categories.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return categories.Category{}, categories.ErrNotFound
		}
		return categories.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) List(ctx context.Context) ([]categories.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY lower(name) ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]categories.Category, 0)
	for rows.Next() {
		var c categories.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete: animals.category_id tiene ON DELETE SET NULL.
func (r *CategoriesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
