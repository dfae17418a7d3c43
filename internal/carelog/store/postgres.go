package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"plantcare/internal/carelog/models"
	"plantcare/internal/platform/postgres"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// PostgresStore persists care logs in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const logColumns = `id, plant_id, type, date, notes, success, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, l *models.CareLog) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO care_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.UUID(l.ID), uuid.UUID(l.PlantID), string(l.Type), l.Date, l.Notes, l.Success, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("plant for care log: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert care log: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, logID id.CareLogID) (*models.CareLog, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM care_logs WHERE id = $1`, uuid.UUID(logID))
	l, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("care log not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find care log: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.CareLog, error) {
	var (
		where []string
		args  []any
	)
	if !filter.PlantID.IsNil() {
		args = append(args, uuid.UUID(filter.PlantID))
		where = append(where, fmt.Sprintf("plant_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	query := `SELECT ` + logColumns + ` FROM care_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at`

	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list care logs: %w", err)
	}
	defer rows.Close()

	var out []*models.CareLog
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan care log: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list care logs: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, l *models.CareLog) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE care_logs SET type = $2, date = $3, notes = $4, success = $5, updated_at = $6
		WHERE id = $1
	`, uuid.UUID(l.ID), string(l.Type), l.Date, l.Notes, l.Success, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update care log: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, logID id.CareLogID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM care_logs WHERE id = $1`, uuid.UUID(logID))
	if err != nil {
		return fmt.Errorf("delete care log: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error) {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM care_logs WHERE plant_id = ANY($1::uuid[])`, pq.Array(id.Strings(plantIDs)))
	if err != nil {
		return 0, fmt.Errorf("delete care logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.CareLog, error) {
	var (
		l              models.CareLog
		rawID, plantID uuid.UUID
		logType        string
	)
	if err := row.Scan(&rawID, &plantID, &logType, &l.Date, &l.Notes, &l.Success, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.ID = id.CareLogID(rawID)
	l.PlantID = id.PlantID(plantID)
	l.Type = id.CareLogType(logType)
	return &l, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("care log not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
