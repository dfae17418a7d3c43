package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"plantcare/internal/platform/postgres"
	"plantcare/internal/species/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// PostgresStore persists species in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const speciesColumns = `id, name, common_name, description, care_instructions, ideal_conditions, photo, created_at, updated_at`

func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, sp *models.Species) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO species (`+speciesColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(sp.ID), sp.Name, sp.CommonName, sp.Description, sp.CareInstructions, sp.IdealConditions,
		id.PhotoValue(sp.Photo), sp.CreatedAt, sp.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("species name %q: %w", sp.Name, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert species: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, speciesID id.SpeciesID) (*models.Species, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+speciesColumns+` FROM species WHERE id = $1`, uuid.UUID(speciesID))
	return scanOne(row)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Species, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+speciesColumns+` FROM species WHERE lower(name) = lower($1)`, name)
	return scanOne(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Species, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+speciesColumns+` FROM species ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	defer rows.Close()

	var out []*models.Species
	for rows.Next() {
		sp, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, sp *models.Species) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE species SET name = $2, common_name = $3, description = $4, care_instructions = $5,
			ideal_conditions = $6, photo = $7, updated_at = $8
		WHERE id = $1
	`, uuid.UUID(sp.ID), sp.Name, sp.CommonName, sp.Description, sp.CareInstructions, sp.IdealConditions,
		id.PhotoValue(sp.Photo), sp.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("species name %q: %w", sp.Name, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update species: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a species. Plants still referencing it make the foreign key
// refuse the delete, reported as ErrInUse.
func (s *PostgresStore) Delete(ctx context.Context, speciesID id.SpeciesID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM species WHERE id = $1`, uuid.UUID(speciesID))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("species referenced by plants: %w", sentinel.ErrInUse)
		}
		return fmt.Errorf("delete species: %w", err)
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Species, error) {
	var (
		sp    models.Species
		rawID uuid.UUID
		photo sql.NullString
	)
	if err := row.Scan(&rawID, &sp.Name, &sp.CommonName, &sp.Description, &sp.CareInstructions,
		&sp.IdealConditions, &photo, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return nil, err
	}
	sp.ID = id.SpeciesID(rawID)
	if photo.Valid {
		sp.Photo = id.PhotoFromNullable(&photo.String)
	}
	return &sp, nil
}

func scanOne(row *sql.Row) (*models.Species, error) {
	sp, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find species: %w", err)
	}
	return sp, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("species not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
