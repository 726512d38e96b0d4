package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tablebook/internal/cache"
	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/live"
	"tablebook/internal/middleware"
	"tablebook/internal/modules/admin"
	"tablebook/internal/modules/availability"
	"tablebook/internal/modules/reservation"
	"tablebook/internal/modules/schedule"
	"tablebook/internal/notify"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/repository"
)

const snapshotTTL = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if cfg.AppEnv == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}

	// Optional collaborators degrade gracefully when unconfigured.
	var snapshots *cache.Snapshots
	if cfg.RedisAddr != "" {
		snapshots, err = cache.NewSnapshots(cfg.RedisAddr, snapshotTTL, logger)
		if err != nil {
			logger.Warn("redis unavailable, availability caching disabled", zap.Error(err))
			snapshots = nil
		} else {
			defer func() { _ = snapshots.Close() }()
		}
	}

	var sender notify.Sender
	if cfg.AMQPURL != "" {
		amqpSender, err := notify.NewAMQPSender(cfg.AMQPURL, cfg.SMSQueue)
		if err != nil {
			logger.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer func() { _ = amqpSender.Close() }()
		sender = amqpSender
	} else {
		sender = notify.NewLogSender(logger)
	}

	reservationRepo := repository.NewReservationRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)

	hub := live.NewHub()
	settings := cfg.Booking

	reservationService := reservation.NewService(reservationRepo, sender, snapshots, hub, settings, logger)
	reservationHandler := reservation.NewHandler(reservationService)

	availabilityService := availability.NewService(reservationRepo, snapshots, settings, logger)
	availabilityHandler := availability.NewHandler(availabilityService)

	adminService := admin.NewService(reservationRepo, sender, snapshots, hub, settings, logger)
	adminHandler := admin.NewHandler(adminService, hub, logger)

	scheduleService := schedule.NewService(hoursRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	j := jwtsvc.New(cfg.JWTSecret, cfg.AdminTokenTTL)

	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestLogger(logger), gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		// public
		reservationHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		scheduleHandler.RegisterRoutes(v1)

		// staff
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.AdminAuth(j))
		{
			adminHandler.RegisterRoutes(adminGroup)
			scheduleHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
