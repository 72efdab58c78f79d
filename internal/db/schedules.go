// internal/db/schedules.go
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

// GetScheduleByOwner loads an owner's schedule with all of its availability
// windows. A missing schedule returns (nil, nil) so callers can distinguish
// "no availability configured" from a store failure.
func (q *Queries) GetScheduleByOwner(ctx context.Context, ownerID string) (*models.Schedule, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, owner_id, timezone, created_at, updated_at FROM schedules WHERE owner_id = ?",
		ownerID,
	)

	var schedule models.Schedule
	err := row.Scan(&schedule.ID, &schedule.OwnerID, &schedule.Timezone, &schedule.CreatedAt, &schedule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}

	rows, err := q.db.QueryContext(ctx,
		"SELECT id, day_of_week, start_time, end_time FROM schedule_windows WHERE schedule_id = ?",
		schedule.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedule windows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			window models.AvailabilityWindow
			day    string
			start  string
			end    string
		)
		if err := rows.Scan(&window.ID, &day, &start, &end); err != nil {
			return nil, fmt.Errorf("scan schedule window: %w", err)
		}
		if window.Day, err = models.ParseDayOfWeek(day); err != nil {
			return nil, fmt.Errorf("stored window %s: %w", window.ID, err)
		}
		if window.Start, err = models.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("stored window %s: %w", window.ID, err)
		}
		if window.End, err = models.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("stored window %s: %w", window.ID, err)
		}
		schedule.Windows = append(schedule.Windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule windows: %w", err)
	}

	return &schedule, nil
}

type ReplaceScheduleParams struct {
	OwnerID  string
	Timezone string
	Windows  []models.AvailabilityWindow
}

// ReplaceSchedule saves an owner's availability with full-replace semantics:
// the old window set is discarded and the new set persisted atomically.
func (db *DB) ReplaceSchedule(ctx context.Context, params ReplaceScheduleParams) (*models.Schedule, error) {
	var saved *models.Schedule
	err := db.RunInTx(ctx, func(tx *DB) error {
		existing, err := tx.Queries.GetScheduleByOwner(ctx, params.OwnerID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		scheduleID := uuid.New().String()
		if existing != nil {
			scheduleID = existing.ID
			if _, err := tx.Queries.db.ExecContext(ctx,
				"UPDATE schedules SET timezone = ?, updated_at = ? WHERE id = ?",
				params.Timezone, now, scheduleID,
			); err != nil {
				return fmt.Errorf("update schedule: %w", err)
			}
			if _, err := tx.Queries.db.ExecContext(ctx,
				"DELETE FROM schedule_windows WHERE schedule_id = ?",
				scheduleID,
			); err != nil {
				return fmt.Errorf("clear schedule windows: %w", err)
			}
		} else {
			if _, err := tx.Queries.db.ExecContext(ctx,
				"INSERT INTO schedules (id, owner_id, timezone, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
				scheduleID, params.OwnerID, params.Timezone, now, now,
			); err != nil {
				return fmt.Errorf("insert schedule: %w", err)
			}
		}

		for _, window := range params.Windows {
			if _, err := tx.Queries.db.ExecContext(ctx,
				"INSERT INTO schedule_windows (id, schedule_id, day_of_week, start_time, end_time) VALUES (?, ?, ?, ?, ?)",
				uuid.New().String(), scheduleID, window.Day.String(), window.Start.String(), window.End.String(),
			); err != nil {
				return fmt.Errorf("insert schedule window: %w", err)
			}
		}

		saved, err = tx.Queries.GetScheduleByOwner(ctx, params.OwnerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
