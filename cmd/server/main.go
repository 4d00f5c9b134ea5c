package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/railway-reservation/internal/config"
	"github.com/iliyamo/railway-reservation/internal/database"
	"github.com/iliyamo/railway-reservation/internal/handler"
	"github.com/iliyamo/railway-reservation/internal/logger"
	"github.com/iliyamo/railway-reservation/internal/middleware"
	"github.com/iliyamo/railway-reservation/internal/queue"
	"github.com/iliyamo/railway-reservation/internal/repository"
	"github.com/iliyamo/railway-reservation/internal/router"
	"github.com/iliyamo/railway-reservation/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancel()
		log.Fatal("database migration failed", zap.Error(err))
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate
	// limiting but the API stays up.
	rdb := config.NewRedisClient()

	stationRepo := repository.NewStationRepo(db)
	classRepo := repository.NewClassRepo(db)
	trainRepo := repository.NewTrainRepo(db)
	compartmentRepo := repository.NewCompartmentRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	slotRepo := repository.NewSeatSlotRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	ledger := service.NewSeatLedger(scheduleRepo, compartmentRepo, slotRepo, log)
	bookingSvc := service.NewBookingService(scheduleRepo, compartmentRepo, classRepo, slotRepo, bookingRepo, ledger, log)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(stationRepo, classRepo, trainRepo, scheduleRepo, ledger, bookingSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, bookingRepo)
	adminCatalog := handler.NewAdminCatalogHandler(stationRepo, classRepo, trainRepo, compartmentRepo, scheduleRepo)
	adminBookings := handler.NewAdminBookingHandler(bookingSvc, bookingRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, cache)
	router.RegisterPassenger(e, bookingHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminCatalog, adminBookings, cfg.JWTSecret)

	// Audit consumer; reconnects forever in its own goroutine.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Warn("booking consumer stopped", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
