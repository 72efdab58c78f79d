// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Filename string `yaml:"filename"`
}

type BookingConfig struct {
	// SlotIntervalMinutes is the step of the candidate grid offered to guests.
	SlotIntervalMinutes int `yaml:"slot_interval_minutes"`
	// HorizonDays bounds how far ahead guests may book.
	HorizonDays int `yaml:"horizon_days"`
	// ReminderHoursBefore is how long before the meeting the reminder goes out.
	ReminderHoursBefore int `yaml:"reminder_hours_before"`
}

type GoogleConfig struct {
	RedirectURL  string `yaml:"redirect_url"`
	ClientID     string `yaml:"-"` // Loaded from environment
	ClientSecret string `yaml:"-"` // Loaded from environment
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type Config struct {
	App struct {
		Name           string `yaml:"name"`
		Environment    string `yaml:"environment"`
		Port           int    `yaml:"port"`
		BaseURL        string `yaml:"base_url"`
		ClerkSecretKey string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
	Google   GoogleConfig   `yaml:"google"`
	Email    EmailConfig    `yaml:"email"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.ClerkSecretKey = os.Getenv("CLERK_SECRET_KEY")
	cfg.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.Google.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.SlotIntervalMinutes == 0 {
		c.Booking.SlotIntervalMinutes = 15
	}
	if c.Booking.HorizonDays == 0 {
		c.Booking.HorizonDays = 60
	}
	if c.Booking.ReminderHoursBefore == 0 {
		c.Booking.ReminderHoursBefore = 24
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	if c.Booking.SlotIntervalMinutes < 5 || c.Booking.SlotIntervalMinutes > 60 {
		return fmt.Errorf("slot interval must be between 5 and 60 minutes")
	}
	if c.Booking.HorizonDays < 1 {
		return fmt.Errorf("booking horizon must be at least 1 day")
	}
	return nil
}
