// internal/db/bookings.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/models"
)

const bookingColumns = "id, event_type_id, owner_id, guest_name, guest_email, guest_phone, guest_notes, guest_timezone, start_time, end_time, calendar_event_id, created_at"

type CreateBookingParams struct {
	EventTypeID     string
	OwnerID         string
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	GuestNotes      string
	GuestTimezone   string
	StartTime       time.Time
	EndTime         time.Time
	CalendarEventID string
}

// CreateBooking records a confirmed meeting. Callers must only invoke this
// after the external calendar create succeeded.
func (q *Queries) CreateBooking(ctx context.Context, params CreateBookingParams) (models.Booking, error) {
	booking := models.Booking{
		ID:              uuid.New().String(),
		EventTypeID:     params.EventTypeID,
		OwnerID:         params.OwnerID,
		GuestName:       params.GuestName,
		GuestEmail:      params.GuestEmail,
		GuestPhone:      params.GuestPhone,
		GuestNotes:      params.GuestNotes,
		GuestTimezone:   params.GuestTimezone,
		StartTime:       params.StartTime.UTC(),
		EndTime:         params.EndTime.UTC(),
		CalendarEventID: params.CalendarEventID,
		CreatedAt:       time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		booking.ID, booking.EventTypeID, booking.OwnerID, booking.GuestName, booking.GuestEmail,
		booking.GuestPhone, booking.GuestNotes, booking.GuestTimezone, booking.StartTime,
		booking.EndTime, booking.CalendarEventID, booking.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return booking, nil
}

// ListBookingsStartingBetween returns bookings across all owners whose start
// instant falls in [start, end). Used by the reminder job.
func (q *Queries) ListBookingsStartingBetween(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE start_time >= ? AND start_time < ? ORDER BY start_time",
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.EventTypeID, &b.OwnerID, &b.GuestName, &b.GuestEmail,
			&b.GuestPhone, &b.GuestNotes, &b.GuestTimezone, &b.StartTime,
			&b.EndTime, &b.CalendarEventID, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
