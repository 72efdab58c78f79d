// internal/api/booking/handlers.go

// Package booking serves the guest-facing flow: listing open slots for an
// event type and booking one. Guests are unauthenticated; the owner and event
// ride in the URL.
package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slotbook/slotbook/internal/api/apiutil"
	"github.com/slotbook/slotbook/internal/availability"
	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/email"
	"github.com/slotbook/slotbook/internal/gcal"
	"github.com/slotbook/slotbook/internal/slotlock"
)

const (
	bookingQueryTimeout = 5 * time.Second
	// The gateway is a remote dependency; bound it separately so a slow
	// calendar cannot hold the request open indefinitely.
	gatewayTimeout = 10 * time.Second

	maxGuestNameLength  = 100
	maxGuestNotesLength = 500
	defaultSlotRange    = 7 * 24 * time.Hour
)

// Gateway is the external calendar dependency of the booking flow.
type Gateway interface {
	ListBusyIntervals(ctx context.Context, ownerID string, start, end time.Time) ([]availability.Interval, error)
	CreateEvent(ctx context.Context, params gcal.CreateEventParams) (string, error)
}

// Config carries the guest-facing booking knobs.
type Config struct {
	SlotIntervalMinutes int
	HorizonDays         int
}

var (
	database *db.DB
	gateway  Gateway
	sender   email.Sender
	locks    *slotlock.Locker
	resolver *availability.Resolver
	cfg      Config
	initOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// sender may be nil when email is not configured.
func InitHandlers(d *db.DB, g Gateway, s email.Sender, l *slotlock.Locker, c Config) {
	if d == nil || g == nil || l == nil {
		return
	}
	initOnce.Do(func() {
		database = d
		gateway = g
		sender = s
		locks = l
		cfg = c
		resolver = availability.NewResolver(d.Queries, g)
	})
}

func initialized() bool {
	return database != nil && gateway != nil && resolver != nil && locks != nil
}

// GET /book/{ownerId}/{eventId}/slots
//
// Returns the bookable start instants for the requested range, clamped to the
// booking horizon. The candidate grid is generated here so every client sees
// the same slots.
func HandleSlots(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !initialized() {
		logger.Error().Msg("Booking handlers not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := r.PathValue("ownerId")
	eventID := r.PathValue("eventId")

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	event, err := database.Queries.GetEvent(ctx, ownerID, eventID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("Failed to load event for slots")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}
	if !event.IsActive {
		apiutil.WriteError(w, http.StatusNotFound)
		return
	}

	rangeStart, rangeEnd, err := slotRange(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	candidates := candidateGrid(rangeStart, rangeEnd, time.Duration(cfg.SlotIntervalMinutes)*time.Minute)

	gatewayCtx, gatewayCancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer gatewayCancel()

	valid, err := resolver.ValidTimes(gatewayCtx, candidates, availability.Event{
		OwnerID:         ownerID,
		DurationMinutes: event.DurationMinutes,
	})
	if err != nil {
		// Fail closed: an unconfirmed slot is never offered.
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to resolve available slots")
		apiutil.WriteError(w, http.StatusBadGateway)
		return
	}

	slots := make([]string, 0, len(valid))
	for _, slot := range valid {
		slots = append(slots, slot.UTC().Format(time.RFC3339))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"eventName":         event.Name,
		"durationInMinutes": event.DurationMinutes,
		"slots":             slots,
	})
}

type bookRequest struct {
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	GuestNotes string `json:"guestNotes"`
	StartTime  string `json:"startTime"`
	Timezone   string `json:"timezone"`
}

// POST /api/v1/book/{ownerId}/{eventId}
func HandleBook(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !initialized() {
		logger.Error().Msg("Booking handlers not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := r.PathValue("ownerId")
	eventID := r.PathValue("eventId")

	var req bookRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	guest, err := validateGuest(req)
	if err != nil {
		logger.Debug().Err(err).Msg("Booking validation failed")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	startUTC, err := parseStartTime(req.StartTime, guest.timezone)
	if err != nil {
		logger.Debug().Err(err).Msg("Booking start time rejected")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	event, err := database.Queries.GetEvent(ctx, ownerID, eventID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("Failed to load event for booking")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}
	if !event.IsActive {
		apiutil.WriteError(w, http.StatusNotFound)
		return
	}

	// Serialize competing requests for the same slot in this process before
	// re-checking availability. The window between the check and the calendar
	// create is narrowed, not closed.
	if !locks.Acquire(ownerID, startUTC) {
		apiutil.WriteError(w, http.StatusConflict)
		return
	}
	defer locks.Release(ownerID, startUTC)

	gatewayCtx, gatewayCancel := context.WithTimeout(r.Context(), gatewayTimeout)
	defer gatewayCancel()

	valid, err := resolver.ValidTimes(gatewayCtx, []time.Time{startUTC}, availability.Event{
		OwnerID:         ownerID,
		DurationMinutes: event.DurationMinutes,
	})
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to confirm slot availability")
		apiutil.WriteError(w, http.StatusBadGateway)
		return
	}
	if len(valid) == 0 {
		// Slot no longer valid: raced with another booking or stale UI. The
		// guest sees the same error shape as any validation failure.
		apiutil.WriteError(w, http.StatusConflict)
		return
	}

	// One shot only. A blind retry of the create risks a duplicate calendar
	// event, which is worse than asking the guest to try again.
	calendarEventID, err := gateway.CreateEvent(gatewayCtx, gcal.CreateEventParams{
		OwnerID:         ownerID,
		GuestName:       guest.name,
		GuestEmail:      guest.email,
		StartTime:       startUTC,
		DurationMinutes: event.DurationMinutes,
		Title:           event.Name,
		Notes:           guest.notes,
	})
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Calendar event create failed")
		apiutil.WriteError(w, http.StatusBadGateway)
		return
	}

	// The resolver and create may have consumed the whole gateway budget, and
	// the guest may have hung up. The insert gets its own clock, detached from
	// the request, so a slow gateway or dropped client cannot lose the record.
	insertCtx, insertCancel := context.WithTimeout(context.WithoutCancel(r.Context()), bookingQueryTimeout)
	defer insertCancel()

	booking, err := database.Queries.CreateBooking(insertCtx, db.CreateBookingParams{
		EventTypeID:     event.ID,
		OwnerID:         ownerID,
		GuestName:       guest.name,
		GuestEmail:      guest.email,
		GuestPhone:      guest.phone,
		GuestNotes:      guest.notes,
		GuestTimezone:   guest.timezone,
		StartTime:       startUTC,
		EndTime:         startUTC.Add(event.Duration()),
		CalendarEventID: calendarEventID,
	})
	if err != nil {
		// The calendar event exists, so the meeting is booked; losing the
		// local record only degrades reminders and is not surfaced as failure.
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to record booking locally")
	} else {
		email.SendBookingConfirmation(r.Context(), sender, booking, event, logger)
	}

	apiutil.WriteJSON(w, http.StatusCreated, map[string]string{
		"redirectUrl": fmt.Sprintf("/book/%s/%s/success?startTime=%s", ownerID, eventID, startUTC.Format(time.RFC3339)),
	})
}

// GET /book/{ownerId}/{eventId}/success
func HandleSuccess(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !initialized() {
		logger.Error().Msg("Booking handlers not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	startTime, err := apiutil.ParseTimeField(r.URL.Query().Get("startTime"), "startTime")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), bookingQueryTimeout)
	defer cancel()

	event, err := database.Queries.GetEvent(ctx, r.PathValue("ownerId"), r.PathValue("eventId"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("Failed to load event for confirmation")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"eventName":         event.Name,
		"durationInMinutes": event.DurationMinutes,
		"durationLabel":     event.DurationLabel(),
		"startTime":         startTime.Format(time.RFC3339),
	})
}

type guestInput struct {
	name     string
	email    string
	phone    string
	notes    string
	timezone string
}

func validateGuest(req bookRequest) (guestInput, error) {
	var guest guestInput
	var err error

	if guest.name, err = apiutil.RequireStringField(req.GuestName, "guestName", maxGuestNameLength); err != nil {
		return guestInput{}, err
	}
	if guest.email, err = apiutil.ParseEmailField(req.GuestEmail, "guestEmail"); err != nil {
		return guestInput{}, err
	}
	if guest.phone, err = apiutil.ParseOptionalPhoneField(req.GuestPhone, "guestPhone"); err != nil {
		return guestInput{}, err
	}
	if len(req.GuestNotes) > maxGuestNotesLength {
		return guestInput{}, apiutil.FieldError{Field: "guestNotes", Reason: fmt.Sprintf("must be at most %d characters", maxGuestNotesLength)}
	}
	guest.notes = req.GuestNotes
	if guest.timezone, err = apiutil.ParseTimezoneField(req.Timezone, "timezone"); err != nil {
		return guestInput{}, err
	}
	return guest, nil
}

// parseStartTime composes the guest-supplied start with their timezone. A bare
// local timestamp is interpreted in the guest's zone; a timezone-qualified one
// is verified against it rather than trusted blindly.
func parseStartTime(raw, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	if local, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return local.UTC(), nil
	}
	if local, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return local.UTC(), nil
	}

	qualified, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("start time must be RFC3339 or local YYYY-MM-DDTHH:MM: %w", err)
	}
	_, wantOffset := qualified.In(loc).Zone()
	_, gotOffset := qualified.Zone()
	if wantOffset != gotOffset {
		return time.Time{}, fmt.Errorf("start time offset does not match timezone %s", timezone)
	}
	return qualified.UTC(), nil
}

// slotRange parses the optional start/end query bounds and clamps them to
// [now, now + horizon].
func slotRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	horizon := now.Add(time.Duration(cfg.HorizonDays) * 24 * time.Hour)

	rangeStart := now
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := apiutil.ParseTimeField(raw, "start")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		rangeStart = parsed
	}

	rangeEnd := rangeStart.Add(defaultSlotRange)
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := apiutil.ParseTimeField(raw, "end")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		rangeEnd = parsed
	}

	if rangeStart.Before(now) {
		rangeStart = now
	}
	if rangeEnd.After(horizon) {
		rangeEnd = horizon
	}
	if !rangeStart.Before(rangeEnd) {
		return time.Time{}, time.Time{}, fmt.Errorf("empty slot range")
	}
	return rangeStart, rangeEnd, nil
}

// candidateGrid produces step-aligned start instants in [start, end).
// A non-positive step yields no candidates rather than a runaway loop.
func candidateGrid(start, end time.Time, step time.Duration) []time.Time {
	if step <= 0 {
		return nil
	}
	first := start.Truncate(step)
	if first.Before(start) {
		first = first.Add(step)
	}

	var candidates []time.Time
	for t := first; t.Before(end); t = t.Add(step) {
		candidates = append(candidates, t)
	}
	return candidates
}
