// internal/db/db_test.go
package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/models"
	"github.com/slotbook/slotbook/internal/testutil"
)

func TestEventCRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	created, err := database.Queries.CreateEvent(ctx, db.CreateEventParams{
		OwnerID:         "owner-1",
		Name:            "Intro call",
		Description:     "A quick chat",
		DurationMinutes: 30,
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created event has no id")
	}

	got, err := database.Queries.GetEvent(ctx, "owner-1", created.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Name != "Intro call" || got.DurationMinutes != 30 || !got.IsActive {
		t.Errorf("GetEvent = %+v", got)
	}

	// Ownership is part of the key.
	if _, err := database.Queries.GetEvent(ctx, "owner-2", created.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("cross-owner GetEvent err = %v, want ErrNotFound", err)
	}

	updated, err := database.Queries.UpdateEvent(ctx, db.UpdateEventParams{
		OwnerID:         "owner-1",
		EventID:         created.ID,
		Name:            "Long call",
		Description:     "A longer chat",
		DurationMinutes: 60,
		IsActive:        false,
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Name != "Long call" || updated.DurationMinutes != 60 || updated.IsActive {
		t.Errorf("UpdateEvent = %+v", updated)
	}

	events, err := database.Queries.ListEventsByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListEventsByOwner: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	if err := database.Queries.DeleteEvent(ctx, "owner-1", created.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := database.Queries.DeleteEvent(ctx, "owner-1", created.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("second DeleteEvent err = %v, want ErrNotFound", err)
	}
}

func TestUpdateMissingEvent(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := database.Queries.UpdateEvent(context.Background(), db.UpdateEventParams{
		OwnerID:         "owner-1",
		EventID:         "nope",
		Name:            "Call",
		DurationMinutes: 30,
	})
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestScheduleReplace(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	missing, err := database.Queries.GetScheduleByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetScheduleByOwner: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil schedule before save, got %+v", missing)
	}

	first, err := database.ReplaceSchedule(ctx, db.ReplaceScheduleParams{
		OwnerID:  "owner-1",
		Timezone: "America/New_York",
		Windows: []models.AvailabilityWindow{
			{Day: models.Monday, Start: models.TimeOfDay{Hour: 9}, End: models.TimeOfDay{Hour: 12}},
			{Day: models.Wednesday, Start: models.TimeOfDay{Hour: 13}, End: models.TimeOfDay{Hour: 17}},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceSchedule: %v", err)
	}
	if first.Timezone != "America/New_York" || len(first.Windows) != 2 {
		t.Fatalf("first save = %+v", first)
	}

	// Saving again discards the old window set entirely.
	second, err := database.ReplaceSchedule(ctx, db.ReplaceScheduleParams{
		OwnerID:  "owner-1",
		Timezone: "Europe/London",
		Windows: []models.AvailabilityWindow{
			{Day: models.Friday, Start: models.TimeOfDay{Hour: 10, Minute: 30}, End: models.TimeOfDay{Hour: 15}},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceSchedule (second): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("schedule id changed on replace: %s -> %s", first.ID, second.ID)
	}
	if second.Timezone != "Europe/London" {
		t.Errorf("timezone = %q", second.Timezone)
	}
	if len(second.Windows) != 1 {
		t.Fatalf("got %d windows after replace, want 1", len(second.Windows))
	}
	w := second.Windows[0]
	if w.Day != models.Friday || w.Start.String() != "10:30" || w.End.String() != "15:00" {
		t.Errorf("window = %+v", w)
	}
}

func TestBookingsStartingBetween(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	base := time.Date(2030, time.January, 2, 14, 0, 0, 0, time.UTC)
	insert := func(start time.Time) {
		t.Helper()
		_, err := database.Queries.CreateBooking(ctx, db.CreateBookingParams{
			EventTypeID:     "event-1",
			OwnerID:         "owner-1",
			GuestName:       "Jane Roe",
			GuestEmail:      "jane@example.com",
			GuestTimezone:   "UTC",
			StartTime:       start,
			EndTime:         start.Add(30 * time.Minute),
			CalendarEventID: "cal-1",
		})
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
	}
	insert(base.Add(-time.Hour))
	insert(base)
	insert(base.Add(10 * time.Minute))
	insert(base.Add(15 * time.Minute)) // exactly at the exclusive end

	got, err := database.Queries.ListBookingsStartingBetween(ctx, base, base.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("ListBookingsStartingBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2: %+v", len(got), got)
	}
	if !got[0].StartTime.Equal(base) || !got[1].StartTime.Equal(base.Add(10*time.Minute)) {
		t.Errorf("bookings out of order or wrong set: %+v", got)
	}
}

func TestCalendarTokenUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.Queries.GetCalendarToken(ctx, "owner-1"); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := database.Queries.UpsertCalendarToken(ctx, "owner-1", `{"access_token":"a"}`); err != nil {
		t.Fatalf("UpsertCalendarToken: %v", err)
	}
	if err := database.Queries.UpsertCalendarToken(ctx, "owner-1", `{"access_token":"b"}`); err != nil {
		t.Fatalf("UpsertCalendarToken (replace): %v", err)
	}

	token, err := database.Queries.GetCalendarToken(ctx, "owner-1")
	if err != nil {
		t.Fatalf("GetCalendarToken: %v", err)
	}
	if token != `{"access_token":"b"}` {
		t.Errorf("token = %q", token)
	}
}
