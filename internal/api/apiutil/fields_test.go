// internal/api/apiutil/fields_test.go
package apiutil

import (
	"testing"
	"time"
)

func TestRequireStringField(t *testing.T) {
	if _, err := RequireStringField("", "name", 10); err == nil {
		t.Error("empty value accepted")
	}
	if _, err := RequireStringField("   ", "name", 10); err == nil {
		t.Error("blank value accepted")
	}
	if _, err := RequireStringField("toolongvalue", "name", 5); err == nil {
		t.Error("over-length value accepted")
	}
	got, err := RequireStringField("  Jane  ", "name", 10)
	if err != nil {
		t.Fatalf("RequireStringField: %v", err)
	}
	if got != "Jane" {
		t.Errorf("got %q, want trimmed %q", got, "Jane")
	}
}

func TestParseEmailField(t *testing.T) {
	if _, err := ParseEmailField("not-an-email", "email"); err == nil {
		t.Error("invalid email accepted")
	}
	if _, err := ParseEmailField("", "email"); err == nil {
		t.Error("empty email accepted")
	}
	got, err := ParseEmailField("jane@example.com", "email")
	if err != nil {
		t.Fatalf("ParseEmailField: %v", err)
	}
	if got != "jane@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestParseOptionalPhoneField(t *testing.T) {
	// Optional means empty is fine.
	got, err := ParseOptionalPhoneField("", "phone")
	if err != nil || got != "" {
		t.Errorf("empty phone: got %q, err %v", got, err)
	}

	got, err = ParseOptionalPhoneField("(212) 555-0123", "phone")
	if err != nil {
		t.Fatalf("ParseOptionalPhoneField: %v", err)
	}
	if got != "+12125550123" {
		t.Errorf("got %q, want E.164 %q", got, "+12125550123")
	}

	got, err = ParseOptionalPhoneField("+44 20 7946 0958", "phone")
	if err != nil {
		t.Fatalf("ParseOptionalPhoneField: %v", err)
	}
	if got != "+442079460958" {
		t.Errorf("got %q", got)
	}

	if _, err := ParseOptionalPhoneField("12", "phone"); err == nil {
		t.Error("invalid phone accepted")
	}
}

func TestParseTimeField(t *testing.T) {
	got, err := ParseTimeField("2030-01-02T09:00:00-05:00", "startTime")
	if err != nil {
		t.Fatalf("ParseTimeField: %v", err)
	}
	want := time.Date(2030, time.January, 2, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("got %v, want %v in UTC", got, want)
	}

	if _, err := ParseTimeField("2030-01-02T09:00", "startTime"); err == nil {
		t.Error("offset-less timestamp accepted")
	}
	if _, err := ParseTimeField("", "startTime"); err == nil {
		t.Error("empty timestamp accepted")
	}
}

func TestParseTimezoneField(t *testing.T) {
	got, err := ParseTimezoneField(" America/New_York ", "timezone")
	if err != nil {
		t.Fatalf("ParseTimezoneField: %v", err)
	}
	if got != "America/New_York" {
		t.Errorf("got %q", got)
	}
	if _, err := ParseTimezoneField("Mars/Olympus_Mons", "timezone"); err == nil {
		t.Error("unknown timezone accepted")
	}
}
