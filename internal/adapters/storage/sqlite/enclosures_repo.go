package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"zoo-admin/internal/domain/enclosures"
)

type enclosureRepo struct {
	db *sql.DB
}

func (r *enclosureRepo) Create(ctx context.Context, e enclosures.Enclosure) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO enclosures (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return err
}

func (r *enclosureRepo) Update(ctx context.Context, e enclosures.Enclosure) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE enclosures SET name = ?, updated_at = ? WHERE id = ?`,
		e.Name, formatTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return enclosures.ErrNotFound
	}
	return nil
}

func (r *enclosureRepo) GetByID(ctx context.Context, id string) (enclosures.Enclosure, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM enclosures WHERE id = ?`, id)
	e, err := scanEnclosure(row)
	if errors.Is(err, sql.ErrNoRows) {
		return enclosures.Enclosure{}, enclosures.ErrNotFound
	}
	return e, err
}

func (r *enclosureRepo) List(ctx context.Context) ([]enclosures.Enclosure, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM enclosures ORDER BY lower(name) ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]enclosures.Enclosure, 0)
	for rows.Next() {
		e, err := scanEnclosure(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *enclosureRepo) Delete(ctx context.Context, id string) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE animals SET enclosure_id = NULL WHERE enclosure_id = ?`, id); err != nil {
		return fmt.Errorf("clear enclosure: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM enclosures WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanEnclosure(s rowScanner) (enclosures.Enclosure, error) {
	var (
		e                    enclosures.Enclosure
		createdAt, updatedAt string
	)
	if err := s.Scan(&e.ID, &e.Name, &createdAt, &updatedAt); err != nil {
		return enclosures.Enclosure{}, err
	}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return enclosures.Enclosure{}, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return enclosures.Enclosure{}, err
	}
	return e, nil
}
