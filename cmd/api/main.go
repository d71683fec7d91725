package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"printo/internal/broker"
	"printo/internal/cache"
	"printo/internal/config"
	"printo/internal/database"
	"printo/internal/database/migration"
	handlers "printo/internal/http/handler"
	"printo/internal/http/middleware"
	"printo/internal/logger"
	"printo/internal/mail"
	"printo/internal/otel"
	"printo/internal/payment"
	"printo/internal/repository/postgres"
	"printo/internal/service"
	"printo/internal/storage"
	"printo/internal/worker"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Error("tracing shutdown", zap.Error(err))
			}
		}()
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal("initialize object storage", zap.Error(err))
	}

	redis, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatal("connect to redis", zap.Error(err))
	}
	defer redis.Close()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)
	defer producer.Close()
	publisher := broker.NewEventPublisher(producer)

	consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, cfg.Kafka.ConsumerGroup)
	defer consumer.Close()

	// Email is optional; without SMTP only in-app notifications are produced.
	var mailer mail.Mailer
	if m, err := mail.NewSMTP(cfg.SMTP); err != nil {
		log.Warn("email disabled", zap.Error(err))
	} else {
		mailer = m
	}

	gateway, err := payment.NewRazorpay(cfg.Razorpay)
	if err != nil {
		log.Fatal("initialize payment gateway", zap.Error(err))
	}

	userRepo := postgres.NewUserPostgres(db)
	sellerRepo := postgres.NewSellerPostgres(db)
	productRepo := postgres.NewProductPostgres(db)
	orderRepo := postgres.NewOrderPostgres(db)
	commissionRepo := postgres.NewCommissionPostgres(db)
	notificationRepo := postgres.NewNotificationPostgres(db)
	bannerRepo := postgres.NewBannerPostgres(db)

	svcs := handlers.Services{
		Auth:          service.NewAuthService(userRepo, cfg.Auth),
		Sellers:       service.NewSellerService(sellerRepo),
		Products:      service.NewProductService(productRepo, sellerRepo, objStore),
		Orders:        service.NewOrderService(orderRepo, productRepo, sellerRepo, commissionRepo, redis, publisher, cfg.DefaultCommissionPercent),
		Payments:      service.NewPaymentService(orderRepo, gateway, publisher),
		Commissions:   service.NewCommissionService(commissionRepo),
		Notifications: service.NewNotificationService(notificationRepo, mailer),
		Banners:       service.NewBannerService(bannerRepo, objStore),
		Dashboard:     service.NewDashboardService(orderRepo, redis),
	}

	notificationWorker := worker.NewNotificationWorker(consumer, svcs.Notifications)
	go notificationWorker.Run(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	// HTTP spans parent the otelsql query spans.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())
	app.Use(middleware.Prometheus())

	handlers.RegisterRoutes(app, db, svcs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("start server", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	log.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}
