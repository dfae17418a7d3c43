package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"plantcare/internal/platform/postgres"
	"plantcare/internal/reminder/models"
	id "plantcare/pkg/domain"
	"plantcare/pkg/platform/sentinel"
)

// PostgresStore persists care reminders in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reminderColumns = `id, plant_id, type, frequency, last_done, next_due, notes, is_active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, r *models.Reminder) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO care_reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.UUID(r.ID), uuid.UUID(r.PlantID), string(r.Type), r.Frequency, r.LastDone, r.NextDue,
		r.Notes, r.IsActive, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("plant for care reminder: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert care reminder: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, reminderID id.ReminderID) (*models.Reminder, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM care_reminders WHERE id = $1`, uuid.UUID(reminderID))
	r, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("care reminder not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find care reminder: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Reminder, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if !filter.PlantID.IsNil() {
		args = append(args, uuid.UUID(filter.PlantID))
		where = append(where, fmt.Sprintf("plant_id = $%d", len(args)))
	}
	query := `SELECT ` + reminderColumns + ` FROM care_reminders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at`

	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list care reminders: %w", err)
	}
	defer rows.Close()

	var out []*models.Reminder
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan care reminder: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list care reminders: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, r *models.Reminder) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE care_reminders SET type = $2, frequency = $3, last_done = $4, next_due = $5,
			notes = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`, uuid.UUID(r.ID), string(r.Type), r.Frequency, r.LastDone, r.NextDue, r.Notes, r.IsActive, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update care reminder: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, reminderID id.ReminderID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM care_reminders WHERE id = $1`, uuid.UUID(reminderID))
	if err != nil {
		return fmt.Errorf("delete care reminder: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) DeleteByPlants(ctx context.Context, plantIDs []id.PlantID) (int, error) {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM care_reminders WHERE plant_id = ANY($1::uuid[])`, pq.Array(id.Strings(plantIDs)))
	if err != nil {
		return 0, fmt.Errorf("delete care reminders: %w", err)
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

func scan(row scanner) (*models.Reminder, error) {
	var (
		r              models.Reminder
		rawID, plantID uuid.UUID
		reminderType   string
	)
	if err := row.Scan(&rawID, &plantID, &reminderType, &r.Frequency, &r.LastDone, &r.NextDue,
		&r.Notes, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ID = id.ReminderID(rawID)
	r.PlantID = id.PlantID(plantID)
	r.Type = id.ReminderType(reminderType)
	return &r, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("care reminder not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
