package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/status"
)

type animalRepo struct {
	db *sql.DB
}

const animalColumns = `
	id, name, species, age,
	size, dietary_class, activity_pattern, feeding_schedule,
	prey_id, enclosure_id, category_id,
	space_requirement, security_requirement,
	version, created_at, updated_at
`

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Age,
		string(a.Size),
		string(a.DietaryClass),
		string(a.ActivityPattern),
		a.FeedingSchedule,
		nullString(a.PreyID),
		nullString(a.EnclosureID),
		nullString(a.CategoryID),
		a.SpaceRequirement,
		string(a.SecurityRequirement),
		a.Version,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = ?,
			species = ?,
			age = ?,
			size = ?,
			dietary_class = ?,
			activity_pattern = ?,
			feeding_schedule = ?,
			prey_id = ?,
			enclosure_id = ?,
			category_id = ?,
			space_requirement = ?,
			security_requirement = ?,
			version = ?,
			updated_at = ?
		WHERE id = ? AND version = ?
	`,
		a.Name,
		a.Species,
		a.Age,
		string(a.Size),
		string(a.DietaryClass),
		string(a.ActivityPattern),
		a.FeedingSchedule,
		nullString(a.PreyID),
		nullString(a.EnclosureID),
		nullString(a.CategoryID),
		a.SpaceRequirement,
		string(a.SecurityRequirement),
		a.Version,
		formatTime(a.UpdatedAt),
		a.ID,
		expectedVersion,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return animals.ErrConflict
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *animalRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + animalColumns + ` FROM animals WHERE 1 = 1`)
	args := []any{}

	if filter.EnclosureID != "" {
		sb.WriteString(" AND enclosure_id = ?")
		args = append(args, filter.EnclosureID)
	}
	if filter.CategoryID != "" {
		sb.WriteString(" AND category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.ActivityPattern != "" {
		sb.WriteString(" AND activity_pattern = ?")
		args = append(args, string(filter.ActivityPattern))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		// LIKE ya es case-insensitive para ASCII en SQLite
		sb.WriteString(" AND (name LIKE ? OR species LIKE ?)")
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	sb.WriteString(" ORDER BY lower(name) ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *animalRepo) Delete(ctx context.Context, id string) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE animals SET prey_id = NULL WHERE prey_id = ?`, id); err != nil {
		return fmt.Errorf("clear prey: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s rowScanner) (animals.Animal, error) {
	var (
		a                               animals.Animal
		size, diet, pattern, security   string
		preyID, enclosureID, categoryID sql.NullString
		createdAt, updatedAt            string
	)
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Age,
		&size,
		&diet,
		&pattern,
		&a.FeedingSchedule,
		&preyID,
		&enclosureID,
		&categoryID,
		&a.SpaceRequirement,
		&security,
		&a.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return animals.Animal{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return animals.Animal{}, err
	}
	a.Size = animals.Size(size)
	a.DietaryClass = animals.DietaryClass(diet)
	a.ActivityPattern = status.ActivityPattern(pattern)
	a.SecurityRequirement = animals.SecurityLevel(security)
	a.PreyID = fromNullString(preyID)
	a.EnclosureID = fromNullString(enclosureID)
	a.CategoryID = fromNullString(categoryID)
	return a, nil
}

func mapWriteErr(err error) error {
	if err != nil && isConstraintViolation(err) {
		return fmt.Errorf("%w: %v", animals.ErrInvalidInput, err)
	}
	return err
}
