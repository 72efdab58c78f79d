// internal/email/booking.go
package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slotbook/slotbook/internal/models"
)

const bookingEmailTimeout = 5 * time.Second

// SendBookingConfirmation sends the guest's confirmation email asynchronously.
// Delivery failure is logged, never surfaced: the booking already succeeded.
func SendBookingConfirmation(ctx context.Context, sender Sender, booking models.Booking, event models.EventType, logger *zerolog.Logger) {
	if sender == nil {
		return
	}
	recipient := strings.TrimSpace(booking.GuestEmail)
	if recipient == "" {
		return
	}

	message := BuildBookingConfirmation(bookingDetails(booking, event))

	sendCtx, cancel := newEmailContext(ctx, bookingEmailTimeout)
	go func() {
		defer cancel()
		if err := sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil && logger != nil {
			logger.Error().Err(err).Str("booking_id", booking.ID).Msg("Failed to send confirmation email")
		}
	}()
}

// SendBookingReminder sends a reminder email synchronously; the reminder job
// already runs off the request path.
func SendBookingReminder(ctx context.Context, sender Sender, booking models.Booking, event models.EventType, logger *zerolog.Logger) {
	if sender == nil {
		return
	}
	recipient := strings.TrimSpace(booking.GuestEmail)
	if recipient == "" {
		return
	}

	message := BuildBookingReminder(bookingDetails(booking, event))

	sendCtx, cancel := context.WithTimeout(ctx, bookingEmailTimeout)
	defer cancel()
	if err := sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
		if logger != nil {
			logger.Error().Err(err).Str("booking_id", booking.ID).Msg("Failed to send reminder email")
		}
		return
	}
	if logger != nil {
		logger.Info().Str("booking_id", booking.ID).Msg("Reminder email sent")
	}
}

// bookingDetails renders the meeting in the guest's timezone, falling back to
// UTC when the stored zone no longer loads.
func bookingDetails(booking models.Booking, event models.EventType) MeetingDetails {
	loc, err := time.LoadLocation(booking.GuestTimezone)
	if err != nil {
		loc = time.UTC
	}
	date, timeRange := FormatDateTimeRange(booking.StartTime.In(loc), booking.EndTime.In(loc))
	return MeetingDetails{
		EventName: event.Name,
		GuestName: booking.GuestName,
		Date:      date,
		TimeRange: timeRange,
		Notes:     booking.GuestNotes,
	}
}
