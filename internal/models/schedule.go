// internal/models/schedule.go
package models

import (
	"fmt"
	"sort"
	"time"
)

// AvailabilityWindow is one recurring weekly slot. Start and End are wall-clock
// times in the owning schedule's timezone. Windows never span midnight.
type AvailabilityWindow struct {
	ID    string    `json:"id"`
	Day   DayOfWeek `json:"dayOfWeek"`
	Start TimeOfDay `json:"startTime"`
	End   TimeOfDay `json:"endTime"`
}

// Validate enforces the same-day invariant: start strictly before end.
func (w AvailabilityWindow) Validate() error {
	if !w.Day.Valid() {
		return fmt.Errorf("invalid day of week: %d", int(w.Day))
	}
	if !w.Start.Before(w.End) {
		return fmt.Errorf("window start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// Schedule is an owner's recurring weekly availability. Timezone is the IANA
// zone every window belonging to the schedule is interpreted in.
type Schedule struct {
	ID        string               `json:"id"`
	OwnerID   string               `json:"ownerId"`
	Timezone  string               `json:"timezone"`
	Windows   []AvailabilityWindow `json:"windows"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Validate checks the timezone and every window. The window set itself is
// unconstrained: overlapping or duplicate windows are allowed.
func (s Schedule) Validate() error {
	if s.OwnerID == "" {
		return fmt.Errorf("owner id is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	for _, w := range s.Windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Location resolves the schedule's IANA timezone.
func (s Schedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// WindowsByDay buckets the schedule's windows into seven weekday groups.
// Days with no availability are simply absent from the map.
func (s Schedule) WindowsByDay() map[DayOfWeek][]AvailabilityWindow {
	grouped := make(map[DayOfWeek][]AvailabilityWindow, 7)
	for _, w := range s.Windows {
		grouped[w.Day] = append(grouped[w.Day], w)
	}
	return grouped
}

// SortedWindows returns the windows ordered by day then start time. Storage
// order is unspecified; this ordering exists for display only.
func (s Schedule) SortedWindows() []AvailabilityWindow {
	sorted := make([]AvailabilityWindow, len(s.Windows))
	copy(sorted, s.Windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}
