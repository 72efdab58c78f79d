// internal/api/apiutil/fields.go
package apiutil

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

func RequireStringField(raw, field string, maxLength int) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if maxLength > 0 && len(value) > maxLength {
		return "", FieldError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxLength)}
	}
	return value, nil
}

func ParsePositiveIntField(value int64, field string) (int64, error) {
	if value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be greater than 0"}
	}
	return value, nil
}

func ParseEmailField(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return "", FieldError{Field: field, Reason: "must be a valid email address"}
	}
	return value, nil
}

// ParseOptionalPhoneField normalizes a guest phone number to E.164. The region
// is derived from the number itself, so international numbers must carry a
// leading +.
func ParseOptionalPhoneField(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	parsed, err := phonenumbers.Parse(value, "US")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return "", FieldError{Field: field, Reason: "must be a valid phone number"}
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// ParseTimeField parses an RFC3339 instant and normalizes it to UTC.
func ParseTimeField(raw, field string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, FieldError{Field: field, Reason: "is required"}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, FieldError{Field: field, Reason: "must be an RFC3339 timestamp"}
	}
	return parsed.UTC(), nil
}

// ParseTimezoneField validates an IANA timezone name.
func ParseTimezoneField(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if _, err := time.LoadLocation(value); err != nil {
		return "", FieldError{Field: field, Reason: "must be a valid IANA timezone"}
	}
	return value, nil
}
