// internal/models/booking.go
package models

import "time"

// Booking is the local record of a confirmed meeting. The external calendar is
// the system of record for busy time; this row exists only after the calendar
// create succeeded, and feeds the reminder job and the confirmation screen.
type Booking struct {
	ID              string    `json:"id"`
	EventTypeID     string    `json:"eventTypeId"`
	OwnerID         string    `json:"ownerId"`
	GuestName       string    `json:"guestName"`
	GuestEmail      string    `json:"guestEmail"`
	GuestPhone      string    `json:"guestPhone,omitempty"`
	GuestNotes      string    `json:"guestNotes,omitempty"`
	GuestTimezone   string    `json:"guestTimezone"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	CalendarEventID string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}
