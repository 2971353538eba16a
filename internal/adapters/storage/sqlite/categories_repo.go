package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"zoo-admin/internal/domain/categories"
)

type categoryRepo struct {
	db *sql.DB
}

func (r *categoryRepo) Create(ctx context.Context, c categories.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	return err
}

func (r *categoryRepo) Update(ctx context.Context, c categories.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		c.Name, formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return categories.Category{}, categories.ErrNotFound
	}
	return c, err
}

func (r *categoryRepo) List(ctx context.Context) ([]categories.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY lower(name) ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]categories.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoryRepo) Delete(ctx context.Context, id string) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE animals SET category_id = NULL WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanCategory(s rowScanner) (categories.Category, error) {
	var (
		c                    categories.Category
		createdAt, updatedAt string
	)
	if err := s.Scan(&c.ID, &c.Name, &createdAt, &updatedAt); err != nil {
		return categories.Category{}, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return categories.Category{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return categories.Category{}, err
	}
	return c, nil
}
