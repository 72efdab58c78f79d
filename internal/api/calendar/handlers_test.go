// internal/api/calendar/handlers_test.go
package calendar

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/slotbook/slotbook/internal/config"
	"github.com/slotbook/slotbook/internal/gcal"
)

func setup(t *testing.T) *gcal.Client {
	t.Helper()

	c := gcal.New(config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/oauth/google/callback",
	}, nil)
	if c == nil {
		t.Fatal("gateway client not constructed")
	}

	initOnce = sync.Once{}
	InitHandlers(c)
	t.Cleanup(func() {
		client = nil
		initOnce = sync.Once{}
	})
	return c
}

func TestHandleCallbackRejectsUnsignedState(t *testing.T) {
	setup(t)

	// A bare owner id is what an attacker can supply without the secret; it
	// must never reach the token exchange.
	r := httptest.NewRequest(http.MethodGet, "/oauth/google/callback?code=abc&state=owner-1", nil)
	w := httptest.NewRecorder()
	HandleCallback(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleCallbackRejectsMissingParams(t *testing.T) {
	setup(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing code", "/oauth/google/callback?state=owner-1.deadbeef"},
		{"missing state", "/oauth/google/callback?code=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			HandleCallback(w, r)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
