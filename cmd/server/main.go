package main // Entry point package

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/seconfreq-lang/AgendarSala/internal/booking"
	"github.com/seconfreq-lang/AgendarSala/internal/config"
	"github.com/seconfreq-lang/AgendarSala/internal/database"
	"github.com/seconfreq-lang/AgendarSala/internal/handler"
	"github.com/seconfreq-lang/AgendarSala/internal/middleware"
	"github.com/seconfreq-lang/AgendarSala/internal/queue"
	"github.com/seconfreq-lang/AgendarSala/internal/repository"
	"github.com/seconfreq-lang/AgendarSala/internal/router"
	"github.com/seconfreq-lang/AgendarSala/internal/service"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("service", "agendar-sala")

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn(".env not loaded", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	zone, err := timeutil.NewZone(cfg.Timezone, time.Now)
	if err != nil {
		logger.Error("invalid timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := &handler.HealthHandler{Backend: cfg.StoreBackend}
	var store repository.BookingStore
	switch cfg.StoreBackend {
	case config.StoreMemory:
		store = repository.NewMemoryBookingRepo(zone)
	default:
		db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			logger.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("migration failed", "err", err)
			os.Exit(1)
		}
		store = repository.NewBookingRepo(db, zone)
		health.Ping = db.PingContext
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.RabbitURL != "" {
		pub = service.NewAMQPPublisher(cfg.RabbitURL, logger)
		if cfg.EventsConsumer {
			go func() {
				if err := queue.StartBookingConsumer(ctx, cfg.RabbitURL, cfg.AuditLogPath, logger); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("booking consumer stopped", "err", err)
				}
			}()
		}
	} else if cfg.EventsConsumer {
		logger.Warn("EVENTS_CONSUMER set without a broker URL; consumer not started")
	}

	svc := service.NewBookingService(store, booking.NewValidator(zone), zone, pub, logger)
	if cfg.SeedDemo && cfg.StoreBackend == config.StoreMemory {
		if _, err := svc.SeedDemo(ctx); err != nil {
			logger.Error("demo seed failed", "err", err)
			os.Exit(1)
		}
		logger.Info("demo bookings seeded")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.AccessLog(logger))

	router.RegisterRoutes(e, health)
	router.RegisterBookings(e, handler.NewBookingHandler(svc, logger), rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig(), logger)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("http server starting", "addr", addr, "env", cfg.Env, "store", cfg.StoreBackend, "tz", cfg.Timezone)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
