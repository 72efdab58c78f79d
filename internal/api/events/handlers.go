// internal/api/events/handlers.go
package events

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slotbook/slotbook/internal/api/apiutil"
	"github.com/slotbook/slotbook/internal/api/auth"
	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/models"
)

const eventQueryTimeout = 5 * time.Second

var (
	queries     *db.Queries
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *db.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

func loadQueries() *db.Queries {
	return queries
}

type eventRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	DurationInMinutes int64  `json:"durationInMinutes"`
	IsActive          *bool  `json:"isActive"`
}

type eventResponse struct {
	models.EventType
	DurationLabel string `json:"durationLabel"`
}

func toResponse(event models.EventType) eventResponse {
	return eventResponse{EventType: event, DurationLabel: event.DurationLabel()}
}

// GET /api/v1/events
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventQueryTimeout)
	defer cancel()

	events, err := q.ListEventsByOwner(ctx, ownerID)
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to list events")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	responses := make([]eventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toResponse(event))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"events": responses})
}

// POST /api/v1/events
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	var req eventRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	candidate := models.EventType{
		OwnerID:         ownerID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationInMinutes,
		IsActive:        isActive,
	}
	if err := candidate.Validate(); err != nil {
		logger.Debug().Err(err).Msg("Event validation failed")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventQueryTimeout)
	defer cancel()

	event, err := q.CreateEvent(ctx, db.CreateEventParams{
		OwnerID:         ownerID,
		Name:            candidate.Name,
		Description:     candidate.Description,
		DurationMinutes: candidate.DurationMinutes,
		IsActive:        candidate.IsActive,
	})
	if err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to create event")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, toResponse(event))
}

// GET /api/v1/events/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventQueryTimeout)
	defer cancel()

	event, err := q.GetEvent(ctx, ownerID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to load event")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, toResponse(event))
}

// PUT /api/v1/events/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	var req eventRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	candidate := models.EventType{
		OwnerID:         ownerID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationInMinutes,
		IsActive:        isActive,
	}
	if err := candidate.Validate(); err != nil {
		logger.Debug().Err(err).Msg("Event validation failed")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventQueryTimeout)
	defer cancel()

	event, err := q.UpdateEvent(ctx, db.UpdateEventParams{
		OwnerID:         ownerID,
		EventID:         r.PathValue("id"),
		Name:            candidate.Name,
		Description:     candidate.Description,
		DurationMinutes: candidate.DurationMinutes,
		IsActive:        candidate.IsActive,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to update event")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, toResponse(event))
}

// DELETE /api/v1/events/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), eventQueryTimeout)
	defer cancel()

	if err := q.DeleteEvent(ctx, ownerID, r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			apiutil.WriteError(w, http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to delete event")
		apiutil.WriteError(w, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
