// internal/models/event.go
package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxEventNameLength        = 100
	maxEventDescriptionLength = 500
	maxEventDurationMinutes   = 720
)

// EventType is a bookable offering: a name, a meeting duration, and an active
// flag. Inactive event types are never bookable regardless of schedule state.
type EventType struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int64     `json:"durationInMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (e EventType) Validate() error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxEventNameLength {
		return fmt.Errorf("name must be at most %d characters", maxEventNameLength)
	}
	if len(e.Description) > maxEventDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxEventDescriptionLength)
	}
	if e.DurationMinutes <= 0 || e.DurationMinutes > maxEventDurationMinutes {
		return fmt.Errorf("duration must be between 1 and %d minutes", maxEventDurationMinutes)
	}
	return nil
}

// Duration returns the meeting length as a time.Duration.
func (e EventType) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// DurationLabel renders the duration for display, e.g. "30 minutes",
// "1 hour", "1 hour 30 minutes".
func (e EventType) DurationLabel() string {
	hours := e.DurationMinutes / 60
	minutes := e.DurationMinutes % 60

	hourLabel := fmt.Sprintf("%d hour", hours)
	if hours != 1 {
		hourLabel += "s"
	}
	minuteLabel := fmt.Sprintf("%d minute", minutes)
	if minutes != 1 {
		minuteLabel += "s"
	}

	switch {
	case hours == 0:
		return minuteLabel
	case minutes == 0:
		return hourLabel
	default:
		return hourLabel + " " + minuteLabel
	}
}
