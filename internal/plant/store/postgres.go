package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"plantcare/internal/platform/postgres"
	"plantcare/internal/plant/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// PostgresStore persists plants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const plantColumns = `id, name, species_id, location_id, purchase_date, notes, photo, created_at, updated_at`

func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, p *models.Plant) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO plants (`+plantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(p.ID), p.Name, uuid.UUID(p.SpeciesID), uuid.UUID(p.LocationID), p.PurchaseDate,
		p.Notes, id.PhotoValue(p.Photo), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, p.Name, "insert plant")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, plantID id.PlantID) (*models.Plant, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+plantColumns+` FROM plants WHERE id = $1`, uuid.UUID(plantID))
	return scanOne(row)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Plant, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+plantColumns+` FROM plants WHERE lower(name) = lower($1)`, name)
	return scanOne(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Plant, error) {
	return s.query(ctx, `SELECT `+plantColumns+` FROM plants ORDER BY lower(name)`)
}

func (s *PostgresStore) ListBySpecies(ctx context.Context, speciesID id.SpeciesID) ([]*models.Plant, error) {
	return s.query(ctx, `SELECT `+plantColumns+` FROM plants WHERE species_id = $1 ORDER BY lower(name)`,
		uuid.UUID(speciesID))
}

func (s *PostgresStore) ListByLocation(ctx context.Context, locationID id.LocationID) ([]*models.Plant, error) {
	return s.query(ctx, `SELECT `+plantColumns+` FROM plants WHERE location_id = $1 ORDER BY lower(name)`,
		uuid.UUID(locationID))
}

func (s *PostgresStore) CountBySpecies(ctx context.Context, speciesID id.SpeciesID) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM plants WHERE species_id = $1`, uuid.UUID(speciesID))
}

func (s *PostgresStore) CountByLocation(ctx context.Context, locationID id.LocationID) (int, error) {
	return s.count(ctx, `SELECT count(*) FROM plants WHERE location_id = $1`, uuid.UUID(locationID))
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Plant) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE plants SET name = $2, species_id = $3, location_id = $4, purchase_date = $5,
			notes = $6, photo = $7, updated_at = $8
		WHERE id = $1
	`, uuid.UUID(p.ID), p.Name, uuid.UUID(p.SpeciesID), uuid.UUID(p.LocationID), p.PurchaseDate,
		p.Notes, id.PhotoValue(p.Photo), p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, p.Name, "update plant")
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, plantID id.PlantID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, uuid.UUID(plantID))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("plant has dependents: %w", sentinel.ErrInUse)
		}
		return fmt.Errorf("delete plant: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM plants`)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("plants have dependents: %w", sentinel.ErrInUse)
		}
		return 0, fmt.Errorf("delete plants: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Plant, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	var out []*models.Plant
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count plants: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Plant, error) {
	var (
		p                          models.Plant
		rawID, speciesID, location uuid.UUID
		photo                      sql.NullString
	)
	if err := row.Scan(&rawID, &p.Name, &speciesID, &location, &p.PurchaseDate, &p.Notes, &photo,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.PlantID(rawID)
	p.SpeciesID = id.SpeciesID(speciesID)
	p.LocationID = id.LocationID(location)
	if photo.Valid {
		p.Photo = id.PhotoFromNullable(&photo.String)
	}
	return &p, nil
}

func scanOne(row *sql.Row) (*models.Plant, error) {
	p, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	return p, nil
}

func mapWriteErr(err error, name, op string) error {
	switch {
	case postgres.IsUniqueViolation(err):
		return fmt.Errorf("plant name %q: %w", name, sentinel.ErrAlreadyUsed)
	case postgres.IsForeignKeyViolation(err):
		return fmt.Errorf("plant references missing species or location: %w", sentinel.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plant not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
