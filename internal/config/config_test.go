// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: slotbook
  environment: test
  port: 8080
database:
  filename: test.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Booking.SlotIntervalMinutes != 15 {
		t.Errorf("SlotIntervalMinutes = %d, want default 15", cfg.Booking.SlotIntervalMinutes)
	}
	if cfg.Booking.HorizonDays != 60 {
		t.Errorf("HorizonDays = %d, want default 60", cfg.Booking.HorizonDays)
	}
	if cfg.Booking.ReminderHoursBefore != 24 {
		t.Errorf("ReminderHoursBefore = %d, want default 24", cfg.Booking.ReminderHoursBefore)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "app:\n  port: 8080\ndatabase:\n  filename: test.db\n"},
		{"missing port", "app:\n  name: slotbook\ndatabase:\n  filename: test.db\n"},
		{"missing database", "app:\n  name: slotbook\n  port: 8080\n"},
		{"slot interval too small", "app:\n  name: slotbook\n  port: 8080\ndatabase:\n  filename: test.db\nbooking:\n  slot_interval_minutes: 3\n"},
		{"slot interval too large", "app:\n  name: slotbook\n  port: 8080\ndatabase:\n  filename: test.db\nbooking:\n  slot_interval_minutes: 90\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadReadsEnvironmentSecrets(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test_abc")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	path := writeConfig(t, `
app:
  name: slotbook
  port: 8080
database:
  filename: test.db
google:
  redirect_url: http://localhost:8080/oauth/google/callback
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.ClerkSecretKey != "sk_test_abc" {
		t.Errorf("ClerkSecretKey = %q", cfg.App.ClerkSecretKey)
	}
	if cfg.Google.ClientID != "client-id" || cfg.Google.ClientSecret != "client-secret" {
		t.Errorf("google credentials = %q / %q", cfg.Google.ClientID, cfg.Google.ClientSecret)
	}
}
