// internal/api/schedule/handlers.go
package schedule

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slotbook/slotbook/internal/api/apiutil"
	"github.com/slotbook/slotbook/internal/api/auth"
	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/models"
)

const scheduleQueryTimeout = 5 * time.Second

var (
	database *db.DB
	initOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d *db.DB) {
	if d == nil {
		return
	}
	initOnce.Do(func() {
		database = d
	})
}

type windowRequest struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type scheduleRequest struct {
	Timezone string          `json:"timezone"`
	Windows  []windowRequest `json:"windows"`
}

type windowResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type scheduleResponse struct {
	Timezone string           `json:"timezone"`
	Windows  []windowResponse `json:"windows"`
}

func toResponse(schedule *models.Schedule) scheduleResponse {
	response := scheduleResponse{
		Timezone: schedule.Timezone,
		Windows:  make([]windowResponse, 0, len(schedule.Windows)),
	}
	for _, window := range schedule.SortedWindows() {
		response.Windows = append(response.Windows, windowResponse{
			DayOfWeek: window.Day.String(),
			StartTime: window.Start.String(),
			EndTime:   window.End.String(),
		})
	}
	return response
}

// GET /api/v1/schedule
func HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	schedule, err := database.Queries.GetScheduleByOwner(ctx, ownerID)
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to load schedule")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}
	if schedule == nil {
		apiutil.WriteError(w, http.StatusNotFound)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, toResponse(schedule))
}

// PUT /api/v1/schedule
//
// Saving availability is wholesale: the previous window set is discarded and
// the submitted set persisted. There is no partial-update API.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	var req scheduleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	timezone, err := apiutil.ParseTimezoneField(req.Timezone, "timezone")
	if err != nil {
		logger.Debug().Err(err).Msg("Schedule validation failed")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, raw := range req.Windows {
		window, err := parseWindow(raw)
		if err != nil {
			logger.Debug().Err(err).Msg("Schedule validation failed")
			apiutil.WriteError(w, http.StatusBadRequest)
			return
		}
		windows = append(windows, window)
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	saved, err := database.ReplaceSchedule(ctx, db.ReplaceScheduleParams{
		OwnerID:  ownerID,
		Timezone: timezone,
		Windows:  windows,
	})
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to save schedule")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, toResponse(saved))
}

func parseWindow(raw windowRequest) (models.AvailabilityWindow, error) {
	var window models.AvailabilityWindow
	var err error

	if window.Day, err = models.ParseDayOfWeek(raw.DayOfWeek); err != nil {
		return models.AvailabilityWindow{}, err
	}
	if window.Start, err = models.ParseTimeOfDay(raw.StartTime); err != nil {
		return models.AvailabilityWindow{}, err
	}
	if window.End, err = models.ParseTimeOfDay(raw.EndTime); err != nil {
		return models.AvailabilityWindow{}, err
	}
	return window, window.Validate()
}
