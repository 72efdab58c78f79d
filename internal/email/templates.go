// internal/email/templates.go
package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type MeetingDetails struct {
	EventName string
	GuestName string
	OwnerName string
	Date      string
	TimeRange string
	Notes     string
}

// FormatDateTimeRange renders a meeting's date and time span in the guest's
// timezone. Callers shift start/end into that zone first.
func FormatDateTimeRange(start, end time.Time) (string, string) {
	date := start.Format("Monday, Jan 2, 2006")
	timeRange := fmt.Sprintf("%s - %s %s", start.Format("3:04 PM"), end.Format("3:04 PM"), start.Format("MST"))
	return date, timeRange
}

// BuildBookingConfirmation builds the email sent to the guest right after a
// booking is confirmed on the owner's calendar.
func BuildBookingConfirmation(details MeetingDetails) Message {
	eventName := strings.TrimSpace(details.EventName)
	if eventName == "" {
		eventName = "Meeting"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", strings.TrimSpace(details.GuestName))
	fmt.Fprintf(&body, "Your %s is booked.\n\n", eventName)
	fmt.Fprintf(&body, "Date: %s\n", details.Date)
	fmt.Fprintf(&body, "Time: %s\n", details.TimeRange)
	if notes := strings.TrimSpace(details.Notes); notes != "" {
		fmt.Fprintf(&body, "Notes: %s\n", notes)
	}
	body.WriteString("\nA calendar invitation has been sent to this address.\n")

	return Message{
		Subject: fmt.Sprintf("Booking confirmed: %s", eventName),
		Body:    body.String(),
	}
}

// BuildBookingReminder builds the email sent shortly before a meeting starts.
func BuildBookingReminder(details MeetingDetails) Message {
	eventName := strings.TrimSpace(details.EventName)
	if eventName == "" {
		eventName = "Meeting"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", strings.TrimSpace(details.GuestName))
	fmt.Fprintf(&body, "This is a reminder about your upcoming %s.\n\n", eventName)
	fmt.Fprintf(&body, "Date: %s\n", details.Date)
	fmt.Fprintf(&body, "Time: %s\n", details.TimeRange)

	return Message{
		Subject: fmt.Sprintf("Reminder: %s on %s", eventName, details.Date),
		Body:    body.String(),
	}
}
