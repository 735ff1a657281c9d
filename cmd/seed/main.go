// Command seed resets the bookings table and inserts the demo bookings
// for today.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/config"
	"github.com/seconfreq-lang/AgendarSala/internal/database"
	"github.com/seconfreq-lang/AgendarSala/internal/repository"
	"github.com/seconfreq-lang/AgendarSala/internal/service"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "agendar-sala-seed")
	if err := run(logger); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zone, err := timeutil.NewZone(cfg.Timezone, time.Now)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	repo := repository.NewBookingRepo(db, zone)
	removed, err := repo.DeleteAll(ctx)
	if err != nil {
		return err
	}
	logger.Info("bookings cleared", "removed", removed)

	svc := service.NewBookingService(repo, booking.NewValidator(zone), zone, nil, logger)
	seeded, err := svc.SeedDemo(ctx)
	if err != nil {
		return err
	}
	for _, b := range seeded {
		logger.Info("seeded", "id", b.ID, "room", b.Room, "time", timeutil.FormatTimeRange(b.StartTime, b.EndTime), "name", b.Name)
	}
	return nil
}
