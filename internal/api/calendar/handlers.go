// internal/api/calendar/handlers.go

// Package calendar handles the owner-side Google Calendar connection flow.
package calendar

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slotbook/slotbook/internal/api/apiutil"
	"github.com/slotbook/slotbook/internal/api/auth"
	"github.com/slotbook/slotbook/internal/gcal"
)

const exchangeTimeout = 10 * time.Second

var (
	client   *gcal.Client
	initOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *gcal.Client) {
	if c == nil {
		return
	}
	initOnce.Do(func() {
		client = c
	})
}

// GET /api/v1/calendar/connect
//
// Returns the Google consent URL for the authenticated owner.
func HandleConnect(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if client == nil {
		logger.Error().Msg("Calendar gateway not configured")
		apiutil.WriteError(w, http.StatusServiceUnavailable)
		return
	}

	ownerID := auth.OwnerFromContext(r.Context())
	if ownerID == "" {
		apiutil.WriteError(w, http.StatusUnauthorized)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]string{
		"authUrl": client.AuthURL(ownerID),
	})
}

// GET /oauth/google/callback
//
// Google redirects here after consent. The owner id rides in the state
// parameter set by HandleConnect.
func HandleCallback(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if client == nil {
		logger.Error().Msg("Calendar gateway not configured")
		apiutil.WriteError(w, http.StatusServiceUnavailable)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ownerID, ok := client.VerifyState(state)
	if !ok {
		logger.Warn().Msg("Calendar callback with invalid state")
		apiutil.WriteError(w, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), exchangeTimeout)
	defer cancel()

	if err := client.Exchange(ctx, ownerID, code); err != nil {
		logger.Error().Err(err).Str("owner_id", ownerID).Msg("Calendar authorization failed")
		apiutil.WriteError(w, http.StatusBadGateway)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]bool{"connected": true})
}
