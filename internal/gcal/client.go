// internal/gcal/client.go

// Package gcal is the external calendar gateway: it reports an owner's busy
// intervals and creates booked meetings on the owner's primary Google
// Calendar. The rest of the system treats it as an opaque, possibly-slow,
// possibly-failing remote dependency and never caches its results.
package gcal

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/slotbook/slotbook/internal/availability"
	"github.com/slotbook/slotbook/internal/config"
	"github.com/slotbook/slotbook/internal/db"
)

const primaryCalendarID = "primary"

// ErrNotConnected means the owner has never completed the OAuth flow (or the
// stored token was removed).
var ErrNotConnected = errors.New("calendar not connected")

// TokenStore persists per-owner OAuth tokens as JSON. A missing token is
// reported as db.ErrNotFound.
type TokenStore interface {
	GetCalendarToken(ctx context.Context, ownerID string) (string, error)
	UpsertCalendarToken(ctx context.Context, ownerID, tokenJSON string) error
}

type Client struct {
	oauth  *oauth2.Config
	tokens TokenStore
}

// New builds a gateway client from the configured OAuth credentials. Returns
// nil when Google credentials are not configured, which callers treat as
// "gateway unavailable".
func New(cfg config.GoogleConfig, tokens TokenStore) *Client {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				calendar.CalendarEventsScope,
				calendar.CalendarReadonlyScope,
			},
			Endpoint: google.Endpoint,
		},
		tokens: tokens,
	}
}

// AuthURL returns the Google consent URL for an owner. The owner id rides in
// the state parameter, signed so the unauthenticated callback cannot be
// replayed against another owner's account.
func (c *Client) AuthURL(ownerID string) string {
	return c.oauth.AuthCodeURL(c.signState(ownerID), oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *Client) signState(ownerID string) string {
	mac := hmac.New(sha256.New, []byte(c.oauth.ClientSecret))
	mac.Write([]byte(ownerID))
	return ownerID + "." + hex.EncodeToString(mac.Sum(nil))
}

// VerifyState checks the callback state signature and returns the owner id it
// was issued for.
func (c *Client) VerifyState(state string) (string, bool) {
	ownerID, signature, found := strings.Cut(state, ".")
	if !found || ownerID == "" {
		return "", false
	}
	want, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, []byte(c.oauth.ClientSecret))
	mac.Write([]byte(ownerID))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", false
	}
	return ownerID, true
}

// Exchange trades the callback code for a token and persists it for the owner.
func (c *Client) Exchange(ctx context.Context, ownerID, code string) error {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := c.tokens.UpsertCalendarToken(ctx, ownerID, string(tokenJSON)); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("owner_id", ownerID).Msg("Calendar connected")
	return nil
}

// service builds an authenticated calendar service for the owner. The oauth2
// client refreshes expired access tokens transparently using the stored
// refresh token.
func (c *Client) service(ctx context.Context, ownerID string) (*calendar.Service, error) {
	tokenJSON, err := c.tokens.GetCalendarToken(ctx, ownerID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		// A store failure is not a disconnection; keep it distinguishable.
		return nil, fmt.Errorf("load calendar token for %s: %w", ownerID, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("decode stored token: %w", err)
	}

	httpClient := c.oauth.Client(ctx, &token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return service, nil
}

// ListBusyIntervals queries the owner's primary calendar for busy blocks
// overlapping [start, end). Returned intervals are absolute UTC instants.
func (c *Client) ListBusyIntervals(ctx context.Context, ownerID string, start, end time.Time) ([]availability.Interval, error) {
	service, err := c.service(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	response, err := service.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: primaryCalendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	busyCalendar, ok := response.Calendars[primaryCalendarID]
	if !ok {
		return nil, nil
	}

	intervals := make([]availability.Interval, 0, len(busyCalendar.Busy))
	for _, period := range busyCalendar.Busy {
		busyStart, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", period.Start, err)
		}
		busyEnd, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", period.End, err)
		}
		intervals = append(intervals, availability.Interval{Start: busyStart.UTC(), End: busyEnd.UTC()})
	}
	return intervals, nil
}

type CreateEventParams struct {
	OwnerID         string
	GuestName       string
	GuestEmail      string
	StartTime       time.Time
	DurationMinutes int64
	Title           string
	Notes           string
}

// CreateEvent inserts the booked meeting on the owner's primary calendar with
// the guest as an attendee. Callers must not retry on failure: a blind retry
// risks a duplicate event.
func (c *Client) CreateEvent(ctx context.Context, params CreateEventParams) (string, error) {
	service, err := c.service(ctx, params.OwnerID)
	if err != nil {
		return "", err
	}

	end := params.StartTime.Add(time.Duration(params.DurationMinutes) * time.Minute)
	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s: %s", params.Title, params.GuestName),
		Description: params.Notes,
		Start:       &calendar.EventDateTime{DateTime: params.StartTime.UTC().Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.UTC().Format(time.RFC3339)},
		Attendees: []*calendar.EventAttendee{
			{Email: params.GuestEmail, DisplayName: params.GuestName},
		},
	}

	created, err := service.Events.Insert(primaryCalendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}
	return created.Id, nil
}
