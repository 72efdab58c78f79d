// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/slotbook/slotbook/internal/api/auth"
	"github.com/slotbook/slotbook/internal/api/booking"
	calendarapi "github.com/slotbook/slotbook/internal/api/calendar"
	"github.com/slotbook/slotbook/internal/api/events"
	scheduleapi "github.com/slotbook/slotbook/internal/api/schedule"
	"github.com/slotbook/slotbook/internal/config"
	"github.com/slotbook/slotbook/internal/db"
	"github.com/slotbook/slotbook/internal/email"
	"github.com/slotbook/slotbook/internal/gcal"
	"github.com/slotbook/slotbook/internal/scheduler"
	"github.com/slotbook/slotbook/internal/slotlock"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	auth.InitClerk(cfg.App.ClerkSecretKey)

	gateway := gcal.New(cfg.Google, database.Queries)
	if gateway == nil {
		log.Warn().Msg("Google Calendar not configured; booking is disabled")
	}

	var sender email.Sender
	sesClient, err := email.NewSESClient(cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
	if err != nil {
		log.Warn().Err(err).Msg("Email not configured; confirmations and reminders are disabled")
	} else {
		sender = sesClient
	}

	locks := slotlock.New(nil, 0)
	defer locks.Close()

	events.InitHandlers(database.Queries)
	scheduleapi.InitHandlers(database)
	calendarapi.InitHandlers(gateway)
	if gateway != nil {
		booking.InitHandlers(database, gateway, sender, locks, booking.Config{
			SlotIntervalMinutes: cfg.Booking.SlotIntervalMinutes,
			HorizonDays:         cfg.Booking.HorizonDays,
		})
	}

	jobs, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterReminderJob(jobs, database, sender, cfg.Booking.ReminderHoursBefore); err != nil {
		log.Fatal().Err(err).Msg("Failed to register reminder job")
	}
	jobs.Start()

	server := newServer(cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := jobs.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
