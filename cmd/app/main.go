package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipments/cmd"
	httpin "shipments/internal/adapters/in/http"
	"shipments/internal/adapters/in/http/api"
	"shipments/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.Level()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := gormDB.WithContext(ctx).AutoMigrate(postgres.Models()...); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	renderer, err := cmd.NewRenderer(ctx, configs, logger)
	if err != nil {
		log.Fatalf("failed to create object storage client: %v", err)
	}
	notifier, err := cmd.NewNotifier(ctx, configs, logger)
	if err != nil {
		log.Fatalf("failed to create redis notifier: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, renderer, notifier, logger)
	if err != nil {
		log.Fatal(err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		DBLockTimeout:         os.Getenv("DB_LOCK_TIMEOUT"),
		MinioEndpoint:         os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:           os.Getenv("MINIO_USE_SSL"),
		MinioBucket:           os.Getenv("MINIO_BUCKET"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               os.Getenv("REDIS_DB"),
		RedisChannel:          os.Getenv("REDIS_CHANNEL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		LegacyBOLPrefix:       os.Getenv("LEGACY_BOL_PREFIX"),
		DocumentRetrySchedule: os.Getenv("DOCUMENT_RETRY_SCHEDULE"),
		LogLevel:              os.Getenv("LOG_LEVEL"),
	}
	return config
}

// loadDotEnv reads .env when present. Variables already set in the
// environment win.
func loadDotEnv() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	doc, err := api.GetSwagger()
	if err != nil {
		log.Fatal(err)
	}

	e, err := httpin.NewRouter(app.CreateServer(), doc, []byte(configs.JWTSecret), logger)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
