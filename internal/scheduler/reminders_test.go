// internal/scheduler/reminders_test.go
package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/testutil"
)

type recordingSender struct {
	recipients []string
	subjects   []string
}

func (r *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	r.recipients = append(r.recipients, to)
	r.subjects = append(r.subjects, subject)
	return nil
}

func TestRunReminderPass(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	event, err := database.Queries.CreateEvent(ctx, db.CreateEventParams{
		OwnerID:         "owner-1",
		Name:            "Intro call",
		DurationMinutes: 30,
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	windowStart := time.Date(2030, time.January, 2, 14, 0, 0, 0, time.UTC)
	book := func(guestEmail string, start time.Time) {
		t.Helper()
		_, err := database.Queries.CreateBooking(ctx, db.CreateBookingParams{
			EventTypeID:     event.ID,
			OwnerID:         "owner-1",
			GuestName:       "Jane Roe",
			GuestEmail:      guestEmail,
			GuestTimezone:   "UTC",
			StartTime:       start,
			EndTime:         start.Add(30 * time.Minute),
			CalendarEventID: "cal-1",
		})
		if err != nil {
			t.Fatalf("create booking: %v", err)
		}
	}
	book("due@example.com", windowStart.Add(5*time.Minute))
	book("early@example.com", windowStart.Add(-time.Hour))
	book("late@example.com", windowStart.Add(20*time.Minute))

	sender := &recordingSender{}
	runReminderPass(ctx, database, sender, windowStart, zerolog.Nop())

	if len(sender.recipients) != 1 || sender.recipients[0] != "due@example.com" {
		t.Fatalf("recipients = %v, want exactly [due@example.com]", sender.recipients)
	}
	if !strings.HasPrefix(sender.subjects[0], "Reminder: Intro call") {
		t.Errorf("subject = %q", sender.subjects[0])
	}
}
