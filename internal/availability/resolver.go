// internal/availability/resolver.go

// Package availability decides which proposed meeting start instants are
// actually bookable for an owner: inside a recurring weekly window in the
// owner's timezone, and clear of the owner's existing calendar commitments.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/slotbook/slotbook/internal/models"
)

// Event carries the resolver's view of an event type: whose calendar to check
// and how long the meeting runs.
type Event struct {
	OwnerID         string
	DurationMinutes int64
}

// ScheduleSource loads an owner's recurring schedule with its windows.
// A missing schedule is (nil, nil), not an error.
type ScheduleSource interface {
	GetScheduleByOwner(ctx context.Context, ownerID string) (*models.Schedule, error)
}

// BusySource reports the owner's existing commitments overlapping [start, end)
// as absolute UTC intervals. Implementations are remote and possibly slow; the
// resolver calls this exactly once per resolution.
type BusySource interface {
	ListBusyIntervals(ctx context.Context, ownerID string, start, end time.Time) ([]Interval, error)
}

type Resolver struct {
	schedules ScheduleSource
	calendar  BusySource
}

func NewResolver(schedules ScheduleSource, calendar BusySource) *Resolver {
	return &Resolver{schedules: schedules, calendar: calendar}
}

// ValidTimes filters candidates down to the bookable ones, preserving input
// order. Candidates must be non-decreasing instants. Errors from the schedule
// store or the busy source fail closed: no candidates are accepted.
func (r *Resolver) ValidTimes(ctx context.Context, candidates []time.Time, event Event) ([]time.Time, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	first := candidates[0]
	last := candidates[len(candidates)-1]
	if first.IsZero() || last.IsZero() {
		// Malformed input, not an error: nothing can be bookable.
		return nil, nil
	}

	schedule, err := r.schedules.GetScheduleByOwner(ctx, event.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load schedule for %s: %w", event.OwnerID, err)
	}
	if schedule == nil {
		// An owner with no configured availability is never bookable.
		return nil, nil
	}

	loc, err := schedule.Location()
	if err != nil {
		return nil, err
	}
	grouped := schedule.WindowsByDay()

	duration := time.Duration(event.DurationMinutes) * time.Minute

	// One batched gateway call covering every candidate's meeting interval.
	busy, err := r.calendar.ListBusyIntervals(ctx, event.OwnerID, first, last.Add(duration))
	if err != nil {
		return nil, fmt.Errorf("list busy intervals for %s: %w", event.OwnerID, err)
	}

	var valid []time.Time
	for _, candidate := range candidates {
		meeting := Interval{Start: candidate, End: candidate.Add(duration)}
		if !r.withinSchedule(meeting, candidate, grouped, loc) {
			continue
		}
		if overlapsAny(meeting, busy) {
			continue
		}
		valid = append(valid, candidate)
	}
	return valid, nil
}

// withinSchedule reports whether the meeting interval is fully contained in at
// least one of the owner's windows for the candidate's local weekday.
func (r *Resolver) withinSchedule(meeting Interval, candidate time.Time, grouped map[models.DayOfWeek][]models.AvailabilityWindow, loc *time.Location) bool {
	local := candidate.In(loc)
	windows := grouped[models.DayOfWeekOf(local)]
	if len(windows) == 0 {
		return false
	}

	for _, w := range windows {
		if windowInterval(w, local).Contains(meeting) {
			return true
		}
	}
	return false
}

// windowInterval anchors a wall-clock window on the candidate's local calendar
// date and composes (date, time-of-day, zone) into absolute instants.
func windowInterval(w models.AvailabilityWindow, local time.Time) Interval {
	year, month, day := local.Date()
	return Interval{
		Start: time.Date(year, month, day, w.Start.Hour, w.Start.Minute, 0, 0, local.Location()),
		End:   time.Date(year, month, day, w.End.Hour, w.End.Minute, 0, 0, local.Location()),
	}
}

func overlapsAny(meeting Interval, busy []Interval) bool {
	for _, b := range busy {
		if meeting.Overlaps(b) {
			return true
		}
	}
	return false
}
