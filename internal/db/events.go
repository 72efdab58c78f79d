// internal/db/events.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/models"
)

var ErrNotFound = errors.New("not found")

const eventColumns = "id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at"

type CreateEventParams struct {
	OwnerID         string
	Name            string
	Description     string
	DurationMinutes int64
	IsActive        bool
}

func (q *Queries) CreateEvent(ctx context.Context, params CreateEventParams) (models.EventType, error) {
	event := models.EventType{
		ID:              uuid.New().String(),
		OwnerID:         params.OwnerID,
		Name:            params.Name,
		Description:     params.Description,
		DurationMinutes: params.DurationMinutes,
		IsActive:        params.IsActive,
		CreatedAt:       time.Now().UTC(),
	}
	event.UpdatedAt = event.CreatedAt

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO events (id, owner_id, name, description, duration_minutes, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.OwnerID, event.Name, event.Description, event.DurationMinutes, event.IsActive, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return models.EventType{}, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// GetEvent loads an event by owner and id. Both keys are required so one owner
// can never read another owner's event by guessing ids.
func (q *Queries) GetEvent(ctx context.Context, ownerID, eventID string) (models.EventType, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE owner_id = ? AND id = ?",
		ownerID, eventID,
	)
	return scanEvent(row)
}

func (q *Queries) ListEventsByOwner(ctx context.Context, ownerID string) ([]models.EventType, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE owner_id = ? ORDER BY name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.EventType
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

type UpdateEventParams struct {
	OwnerID         string
	EventID         string
	Name            string
	Description     string
	DurationMinutes int64
	IsActive        bool
}

func (q *Queries) UpdateEvent(ctx context.Context, params UpdateEventParams) (models.EventType, error) {
	result, err := q.db.ExecContext(ctx,
		"UPDATE events SET name = ?, description = ?, duration_minutes = ?, is_active = ?, updated_at = ? WHERE owner_id = ? AND id = ?",
		params.Name, params.Description, params.DurationMinutes, params.IsActive, time.Now().UTC(), params.OwnerID, params.EventID,
	)
	if err != nil {
		return models.EventType{}, fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.EventType{}, fmt.Errorf("update event rows affected: %w", err)
	}
	if affected == 0 {
		return models.EventType{}, ErrNotFound
	}
	return q.GetEvent(ctx, params.OwnerID, params.EventID)
}

func (q *Queries) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	result, err := q.db.ExecContext(ctx,
		"DELETE FROM events WHERE owner_id = ? AND id = ?",
		ownerID, eventID,
	)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.EventType, error) {
	var event models.EventType
	err := row.Scan(
		&event.ID,
		&event.OwnerID,
		&event.Name,
		&event.Description,
		&event.DurationMinutes,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EventType{}, ErrNotFound
	}
	if err != nil {
		return models.EventType{}, fmt.Errorf("scan event: %w", err)
	}
	return event, nil
}
