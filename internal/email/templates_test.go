// internal/email/templates_test.go
package email

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDateTimeRange(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, time.March, 6, 14, 0, 0, 0, time.UTC).In(ny)
	end := start.Add(30 * time.Minute)

	date, timeRange := FormatDateTimeRange(start, end)
	if date != "Wednesday, Mar 6, 2024" {
		t.Errorf("date = %q", date)
	}
	if timeRange != "9:00 AM - 9:30 AM EST" {
		t.Errorf("timeRange = %q", timeRange)
	}
}

func TestBuildBookingConfirmation(t *testing.T) {
	msg := BuildBookingConfirmation(MeetingDetails{
		EventName: "Intro call",
		GuestName: "Jane Roe",
		Date:      "Wednesday, Mar 6, 2024",
		TimeRange: "9:00 AM - 9:30 AM EST",
		Notes:     "Bring questions",
	})

	if msg.Subject != "Booking confirmed: Intro call" {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"Jane Roe", "Intro call", "Wednesday, Mar 6, 2024", "9:00 AM - 9:30 AM EST", "Bring questions"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestBuildBookingConfirmationOmitsEmptyNotes(t *testing.T) {
	msg := BuildBookingConfirmation(MeetingDetails{
		EventName: "Intro call",
		GuestName: "Jane Roe",
		Notes:     "   ",
	})
	if strings.Contains(msg.Body, "Notes:") {
		t.Errorf("body should omit blank notes:\n%s", msg.Body)
	}
}

func TestBuildBookingReminder(t *testing.T) {
	msg := BuildBookingReminder(MeetingDetails{
		EventName: "",
		GuestName: "Jane Roe",
		Date:      "Wednesday, Mar 6, 2024",
		TimeRange: "9:00 AM - 9:30 AM EST",
	})

	if msg.Subject != "Reminder: Meeting on Wednesday, Mar 6, 2024" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "reminder about your upcoming Meeting") {
		t.Errorf("body missing reminder line:\n%s", msg.Body)
	}
}
