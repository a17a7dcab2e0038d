package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"issue-tracker/internal/api"
	"issue-tracker/internal/auth"
	"issue-tracker/internal/config"
	"issue-tracker/internal/events"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/service"
	"issue-tracker/migrations"
)

func connectDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", cfg.DSN())
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", cfg.Name)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, cfg.Name, cfg.Host, cfg.Port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", cfg.Name, cfg.Host, cfg.Port, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Starting with %s", cfg)

	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	publisher := events.NewPublisher(config.NewKafkaWriter(cfg.Kafka))

	seq := repository.NewSQLSequencer(db)
	userRepo := repository.NewMySQLUserRepository(db, seq)
	issueRepo := repository.NewMySQLIssueRepository(db, seq)
	commentRepo := repository.NewMySQLCommentRepository(db, seq)
	attachmentRepo := repository.NewMySQLAttachmentRepository(db, seq)
	notificationRepo := repository.NewMySQLNotificationRepository(db, seq)

	sessions := auth.NewManager(cfg.Auth.JWTSecret, auth.NewRedisTokenStore(rdb))

	handler := api.NewHandler(
		service.NewUserService(userRepo, sessions),
		service.NewIssueService(issueRepo, commentRepo, notificationRepo, publisher),
		service.NewNotificationService(notificationRepo),
		service.NewAttachmentService(issueRepo, attachmentRepo, cfg.Upload.Dir),
		service.NewAnalyticsService(issueRepo),
	)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     50,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"message": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(cfg.HTTP.Address))
}
