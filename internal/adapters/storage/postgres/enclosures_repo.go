package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zoo-admin/internal/domain/enclosures"
)

type EnclosuresRepo struct {
	db *sql.DB
}

func NewEnclosuresRepo(db *sql.DB) *EnclosuresRepo {
	return &EnclosuresRepo{db: db}
}

func (r *EnclosuresRepo) Create(ctx context.Context, e enclosures.Enclosure) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO enclosures (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, e.ID, e.Name, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *EnclosuresRepo) Update(ctx context.Context, e enclosures.Enclosure) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE enclosures SET name = $2, updated_at = $3 WHERE id = $1
	`, e.ID, e.Name, e.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return enclosures.ErrNotFound
	}
	return nil
}

func (r *EnclosuresRepo) GetByID(ctx context.Context, id string) (enclosures.Enclosure, error) {
	var e enclosures.Enclosure
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM enclosures WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return enclosures.Enclosure{}, enclosures.ErrNotFound
		}
		return enclosures.Enclosure{}, err
	}
	return e, nil
}

func (r *EnclosuresRepo) List(ctx context.Context) ([]enclosures.Enclosure, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM enclosures
		ORDER BY lower(name) ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]enclosures.Enclosure, 0)
	for rows.Next() {
		var e enclosures.Enclosure
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete: animals.enclosure_id tiene ON DELETE SET NULL.
func (r *EnclosuresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM enclosures WHERE id = $1`, id)
	return err
}
