package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-api/config"
	"github.com/clinicore/clinic-api/internal/handler"
	appointmentHandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	auditHandler "github.com/clinicore/clinic-api/internal/handler/audit"
	authHandler "github.com/clinicore/clinic-api/internal/handler/auth"
	doctorHandler "github.com/clinicore/clinic-api/internal/handler/doctor"
	messageHandler "github.com/clinicore/clinic-api/internal/handler/message"
	notificationHandler "github.com/clinicore/clinic-api/internal/handler/notification"
	patientHandler "github.com/clinicore/clinic-api/internal/handler/patient"
	queueHandler "github.com/clinicore/clinic-api/internal/handler/queue"
	settingsHandler "github.com/clinicore/clinic-api/internal/handler/settings"
	statisticsHandler "github.com/clinicore/clinic-api/internal/handler/statistics"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/repository/postgres"
	"github.com/clinicore/clinic-api/internal/router"
	appointmentService "github.com/clinicore/clinic-api/internal/service/appointment"
	auditService "github.com/clinicore/clinic-api/internal/service/audit"
	doctorService "github.com/clinicore/clinic-api/internal/service/doctor"
	messageService "github.com/clinicore/clinic-api/internal/service/message"
	notificationService "github.com/clinicore/clinic-api/internal/service/notification"
	patientService "github.com/clinicore/clinic-api/internal/service/patient"
	queueService "github.com/clinicore/clinic-api/internal/service/queue"
	settingsService "github.com/clinicore/clinic-api/internal/service/settings"
	statisticsService "github.com/clinicore/clinic-api/internal/service/statistics"
	userService "github.com/clinicore/clinic-api/internal/service/user"
	"github.com/clinicore/clinic-api/pkg/logger"
	"github.com/clinicore/clinic-api/pkg/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{Level: logger.InfoLevel})

	// A missing database is not fatal: reads degrade to empty results
	// and the health endpoint reports the store as unavailable.
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, running in degraded mode")
		db = nil
	} else {
		defer db.Close()
	}

	store, err := session.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	userRepo := postgres.NewUserRepository(db, cfg.Auth.OwnerOpenID)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	medicalRecordRepo := postgres.NewMedicalRecordRepository(db)
	queueRepo := postgres.NewQueueRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	revenueRepo := postgres.NewRevenueRepository(db)
	statisticsRepo := postgres.NewStatisticsRepository(db)

	auditor := auditService.NewService(auditRepo)
	userSvc := userService.NewService(userRepo, auditor)
	patientSvc := patientService.NewService(patientRepo, medicalRecordRepo, auditor)
	doctorSvc := doctorService.NewService(doctorRepo, serviceRepo, auditor)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, auditor)
	queueSvc := queueService.NewService(queueRepo, appointmentRepo, auditor)
	messageSvc := messageService.NewService(messageRepo)
	notificationSvc := notificationService.NewService(notificationRepo)
	statisticsSvc := statisticsService.NewService(statisticsRepo, userRepo, revenueRepo)
	settingsSvc := settingsService.NewService(settingsRepo, auditor)

	authMiddleware := middleware.NewAuthMiddleware(store, userRepo, cfg.Session.CookieName)

	r := router.NewRouter(authMiddleware, router.Handlers{
		Auth: authHandler.NewHandler(userSvc, store, authHandler.Config{
			CookieName:     cfg.Session.CookieName,
			CookieSecure:   cfg.Session.Secure,
			SessionTTL:     int(cfg.Session.TTL.Seconds()),
			IdentitySecret: cfg.Auth.IdentitySecret,
		}),
		Patient:      patientHandler.NewHandler(patientSvc),
		Doctor:       doctorHandler.NewHandler(doctorSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Queue:        queueHandler.NewHandler(queueSvc),
		Message:      messageHandler.NewHandler(messageSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Statistics:   statisticsHandler.NewHandler(statisticsSvc),
		Settings:     settingsHandler.NewHandler(settingsSvc),
		Audit:        auditHandler.NewHandler(auditor),
		Health:       handler.NewHandler(db),
	}, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           corsConfig(cfg),
		MetricsPrefix:  "clinic_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.Security.AllowedOrigins
	}
	return cors
}
