package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"plantcare/internal/location/models"
	"plantcare/internal/platform/postgres"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// PostgresStore persists locations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const locationColumns = `id, name, type, sunlight, humidity, description, photo, created_at, updated_at`

func (s *PostgresStore) CreateIfNameAvailable(ctx context.Context, loc *models.Location) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(loc.ID), loc.Name, string(loc.Type), string(loc.Sunlight), string(loc.Humidity),
		loc.Description, id.PhotoValue(loc.Photo), loc.CreatedAt, loc.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("location name %q: %w", loc.Name, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, locationID id.LocationID) (*models.Location, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, uuid.UUID(locationID))
	return scanOne(row)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Location, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE lower(name) = lower($1)`, name)
	return scanOne(row)
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Location, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Sunlight != "" {
		args = append(args, string(filter.Sunlight))
		where = append(where, fmt.Sprintf("sunlight = $%d", len(args)))
	}
	query := `SELECT ` + locationColumns + ` FROM locations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY lower(name)`

	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*models.Location
	for rows.Next() {
		loc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, loc *models.Location) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE locations SET name = $2, type = $3, sunlight = $4, humidity = $5, description = $6,
			photo = $7, updated_at = $8
		WHERE id = $1
	`, uuid.UUID(loc.ID), loc.Name, string(loc.Type), string(loc.Sunlight), string(loc.Humidity),
		loc.Description, id.PhotoValue(loc.Photo), loc.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("location name %q: %w", loc.Name, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update location: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, locationID id.LocationID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, uuid.UUID(locationID))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("location holds plants: %w", sentinel.ErrInUse)
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Location, error) {
	var (
		loc               models.Location
		rawID             uuid.UUID
		locType, sun, hum string
		photo             sql.NullString
	)
	if err := row.Scan(&rawID, &loc.Name, &locType, &sun, &hum, &loc.Description, &photo,
		&loc.CreatedAt, &loc.UpdatedAt); err != nil {
		return nil, err
	}
	loc.ID = id.LocationID(rawID)
	loc.Type = id.LocationType(locType)
	loc.Sunlight = id.Sunlight(sun)
	loc.Humidity = id.Humidity(hum)
	if photo.Valid {
		loc.Photo = id.PhotoFromNullable(&photo.String)
	}
	return &loc, nil
}

func scanOne(row *sql.Row) (*models.Location, error) {
	loc, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find location: %w", err)
	}
	return loc, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("location not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
