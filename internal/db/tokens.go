// internal/db/tokens.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertCalendarToken stores the serialized OAuth token for an owner's
// connected calendar, replacing any previous token.
func (q *Queries) UpsertCalendarToken(ctx context.Context, ownerID, tokenJSON string) error {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO calendar_tokens (owner_id, token_json, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner_id) DO UPDATE SET token_json = excluded.token_json, updated_at = excluded.updated_at`,
		ownerID, tokenJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert calendar token: %w", err)
	}
	return nil
}

// GetCalendarToken returns the stored token JSON, or ErrNotFound when the
// owner has never authorized calendar access.
func (q *Queries) GetCalendarToken(ctx context.Context, ownerID string) (string, error) {
	var tokenJSON string
	err := q.db.QueryRowContext(ctx,
		"SELECT token_json FROM calendar_tokens WHERE owner_id = ?",
		ownerID,
	).Scan(&tokenJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get calendar token: %w", err)
	}
	return tokenJSON, nil
}
