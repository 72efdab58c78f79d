// internal/scheduler/reminders.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/email"
)

const reminderJobWindow = 15 * time.Minute

// RegisterReminderJob registers the recurring task that emails guests whose
// meetings start roughly hoursBefore from now. The job window matches the cron
// cadence so each booking is picked up exactly once.
func RegisterReminderJob(svc *Service, database *db.DB, sender email.Sender, hoursBefore int) error {
	if database == nil {
		return fmt.Errorf("reminder job requires database")
	}

	jobName := "booking_reminders"
	cronExpr := "*/15 * * * *"
	jobLogger := log.With().
		Str("component", "booking_reminders_job").
		Str("job_name", jobName).
		Logger()

	_, err := svc.AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if sender == nil {
			jobLogger.Debug().Msg("Reminder job skipped: email sender not configured")
			return
		}

		windowStart := time.Now().UTC().Add(time.Duration(hoursBefore) * time.Hour)
		runReminderPass(ctx, database, sender, windowStart, jobLogger)
	})
	return err
}

// runReminderPass emails every guest whose booking starts in
// [windowStart, windowStart + reminderJobWindow).
func runReminderPass(ctx context.Context, database *db.DB, sender email.Sender, windowStart time.Time, logger zerolog.Logger) {
	bookings, err := database.Queries.ListBookingsStartingBetween(ctx, windowStart, windowStart.Add(reminderJobWindow))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings for reminder job")
		return
	}

	for _, booking := range bookings {
		event, err := database.Queries.GetEvent(ctx, booking.OwnerID, booking.EventTypeID)
		if err != nil {
			logger.Error().Err(err).Str("booking_id", booking.ID).Msg("Failed to load event for reminder")
			continue
		}
		email.SendBookingReminder(ctx, sender, booking, event, &logger)
	}
}
