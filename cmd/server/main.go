// Command server runs the coworking reservation HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/coworking-reservation/internal/config"
	"github.com/iliyamo/coworking-reservation/internal/database"
	"github.com/iliyamo/coworking-reservation/internal/handler"
	"github.com/iliyamo/coworking-reservation/internal/logging"
	"github.com/iliyamo/coworking-reservation/internal/middleware"
	"github.com/iliyamo/coworking-reservation/internal/queue"
	"github.com/iliyamo/coworking-reservation/internal/repository"
	"github.com/iliyamo/coworking-reservation/internal/router"
	"github.com/iliyamo/coworking-reservation/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return err
	}

	policy, err := service.NewPolicy(cfg.LeadDays, cfg.Blackout, cfg.Location)
	if err != nil {
		return fmt.Errorf("BLACKOUT_WEEKDAYS: %w", err)
	}

	clients := repository.NewClientRepo(db)
	rooms := repository.NewRoomRepo(db)
	opts := []service.Option{
		service.WithPolicy(policy),
		service.WithLogger(logger),
		service.WithMinEventNameLen(cfg.MinEventName),
	}
	if cfg.EventsEnabled {
		pub := service.NewAMQPPublisher(cfg.AMQPURL)
		defer pub.Close()
		opts = append(opts, service.WithPublisher(pub))
		consumer := &queue.Consumer{URL: cfg.AMQPURL, Dir: "logs", Log: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("reservation consumer stopped", "err", err)
			}
		}()
	}
	svc := service.NewReservationService(clients, rooms, repository.NewReservationRepo(db), opts...)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Warn("redis unavailable, caching and rate limiting disabled", "addr", cfg.Redis.Addr)
	} else {
		defer rdb.Close()
	}

	router.RegisterRoutes(e, db)
	v1 := e.Group("/v1",
		middleware.NewTokenBucket(cfg.RateLimit, rdb, logger),
		middleware.NewRedisCache(cfg.Cache, rdb),
	)
	router.RegisterRegistry(v1, handler.NewRegistryHandler(clients, rooms))
	router.RegisterReservations(v1, handler.NewReservationHandler(svc))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
	errc := make(chan error, 1)
	go func() { errc <- e.Start(addr) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDriver == database.DriverSQLite {
		return database.OpenSQLite(cfg.SQLitePath)
	}
	return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
