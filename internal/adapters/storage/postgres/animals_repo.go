package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/status"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, name, species, age,
	size, dietary_class, activity_pattern, feeding_schedule,
	prey_id, enclosure_id, category_id,
	space_requirement, security_requirement,
	version, created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
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
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapWriteErr(err)
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			age = $4,
			size = $5,
			dietary_class = $6,
			activity_pattern = $7,
			feeding_schedule = $8,
			prey_id = $9,
			enclosure_id = $10,
			category_id = $11,
			space_requirement = $12,
			security_requirement = $13,
			version = $14,
			updated_at = $15
		WHERE id = $1 AND version = $16
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
		a.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	// 0 filas: o no existe o cambió la versión
	if _, err := r.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return animals.ErrConflict
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + animalColumns + ` FROM animals WHERE TRUE`)

	args := []any{}
	argN := 1

	if filter.EnclosureID != "" {
		sb.WriteString(fmt.Sprintf(" AND enclosure_id = $%d", argN))
		args = append(args, filter.EnclosureID)
		argN++
	}
	if filter.CategoryID != "" {
		sb.WriteString(fmt.Sprintf(" AND category_id = $%d", argN))
		args = append(args, filter.CategoryID)
		argN++
	}
	if filter.ActivityPattern != "" {
		sb.WriteString(fmt.Sprintf(" AND activity_pattern = $%d", argN))
		args = append(args, string(filter.ActivityPattern))
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR species ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}
	sb.WriteString(" ORDER BY lower(name) ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

// Delete confía en ON DELETE SET NULL para soltar a los predadores.
func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s rowScanner) (animals.Animal, error) {
	var (
		a                               animals.Animal
		size, diet, pattern, security   string
		preyID, enclosureID, categoryID sql.NullString
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
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
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
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) || isCheckViolation(err) {
		return fmt.Errorf("%w: %v", animals.ErrInvalidInput, err)
	}
	return err
}
