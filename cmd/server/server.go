// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/slotbook/slotbook/internal/api"
	"github.com/slotbook/slotbook/internal/api/auth"
	"github.com/slotbook/slotbook/internal/api/booking"
	calendarapi "github.com/slotbook/slotbook/internal/api/calendar"
	"github.com/slotbook/slotbook/internal/api/events"
	scheduleapi "github.com/slotbook/slotbook/internal/api/schedule"
	"github.com/slotbook/slotbook/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Owner-facing routes (Clerk-authenticated)
	owner := func(h http.HandlerFunc) http.Handler {
		return auth.RequireOwner(h)
	}
	mux.Handle("GET /api/v1/events", owner(events.HandleList))
	mux.Handle("POST /api/v1/events", owner(events.HandleCreate))
	mux.Handle("GET /api/v1/events/{id}", owner(events.HandleGet))
	mux.Handle("PUT /api/v1/events/{id}", owner(events.HandleUpdate))
	mux.Handle("DELETE /api/v1/events/{id}", owner(events.HandleDelete))
	mux.Handle("GET /api/v1/schedule", owner(scheduleapi.HandleGet))
	mux.Handle("PUT /api/v1/schedule", owner(scheduleapi.HandleUpdate))
	mux.Handle("GET /api/v1/calendar/connect", owner(calendarapi.HandleConnect))

	// Google redirects here; authentication rides in the state parameter.
	mux.HandleFunc("GET /oauth/google/callback", calendarapi.HandleCallback)

	// Guest-facing booking routes (unauthenticated)
	mux.HandleFunc("GET /book/{ownerId}/{eventId}/slots", booking.HandleSlots)
	mux.HandleFunc("POST /api/v1/book/{ownerId}/{eventId}", booking.HandleBook)
	mux.HandleFunc("GET /book/{ownerId}/{eventId}/success", booking.HandleSuccess)
}
