package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/hirearena/contest-api/internal/config"
	"github.com/hirearena/contest-api/internal/database"
	"github.com/hirearena/contest-api/internal/handler"
	"github.com/hirearena/contest-api/internal/middleware"
	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/repository"
	"github.com/hirearena/contest-api/internal/router"
	"github.com/hirearena/contest-api/internal/service"
	cloud "github.com/hirearena/contest-api/pkg/cloudinary"
	gateway "github.com/hirearena/contest-api/pkg/razorpay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Contest{},
		&models.ContestSkill{},
		&models.ContestApplication{},
		&models.ContestFeedback{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, cross-node notification fan-out disabled")
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	} else {
		logger.Warn().Msg("cloudinary not configured, resume uploads disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	contestRepo := repository.NewContestRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.EventChannelBase, natsConn, validate, logger)
	contestService := service.NewContestService(contestRepo, applicationRepo, validate, logger)
	trackerService := service.NewTrackerService(contestRepo, applicationRepo, redisClient, cfg.TrackerCacheTTL, logger)
	applicationService := service.NewApplicationService(applicationRepo, contestRepo, feedbackRepo, validate, uploader, notificationService, trackerService, logger)

	var paymentService service.PaymentService
	if cfg.RazorpayKeyID != "" {
		gatewayClient, err := gateway.New(gateway.Config{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create razorpay client: %v", err)
		}
		paymentService = service.NewPaymentService(gatewayClient, validate, logger)
	} else {
		logger.Warn().Msg("razorpay not configured, fee orders disabled")
	}

	contestHandler := handler.NewContestHandler(contestService, applicationService, trackerService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, logger)
	trackerHandler := handler.NewTrackerHandler(trackerService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, cfg.SSEKeepAlive)

	var paymentHandler *handler.PaymentHandler
	if paymentService != nil {
		paymentHandler = handler.NewPaymentHandler(paymentService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ContestHandler:      contestHandler,
		ApplicationHandler:  applicationHandler,
		TrackerHandler:      trackerHandler,
		NotificationHandler: notificationHandler,
		PaymentHandler:      paymentHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	serviceCtx, stopServices := context.WithCancel(context.Background())
	defer stopServices()
	notificationService.Start(serviceCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
