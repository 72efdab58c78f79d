// internal/models/weekday.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek is a Monday-first weekday index (Monday=0 .. Sunday=6).
// Storage and the availability resolver both key windows by this type so the
// write path and the query path can never disagree on bucketing.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [7]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// DayOfWeekOf converts a time to its Monday-first weekday. The caller is
// responsible for shifting t into the relevant timezone first; this function
// only remaps Go's Sunday-first numbering.
func DayOfWeekOf(t time.Time) DayOfWeek {
	wd := int(t.Weekday()) // Sunday=0 .. Saturday=6
	if wd == 0 {
		return Sunday
	}
	return DayOfWeek(wd - 1)
}

// ParseDayOfWeek parses a lowercase weekday name ("monday" .. "sunday").
func ParseDayOfWeek(value string) (DayOfWeek, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for i, candidate := range dayNames {
		if candidate == name {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day of week: %q", value)
}

func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}
