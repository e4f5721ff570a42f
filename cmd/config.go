package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"shipments/internal/jobs"
)

const (
	DefaultLegacyBOLPrefix  = "BOL"
	DefaultRedisChannel     = "bol-events"
	DefaultDocumentBatch    = 100
	DefaultDocumentSchedule = jobs.DefaultDocumentRetrySchedule
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBLockTimeout string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    string
	MinioBucket    string

	RedisAddr     string
	RedisPassword string
	RedisDB       string
	RedisChannel  string

	JWTSecret             string
	LegacyBOLPrefix       string
	DocumentRetrySchedule string
	LogLevel              string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LockTimeout parses DB_LOCK_TIMEOUT. Zero means no timeout is set.
func (c Config) LockTimeout() (time.Duration, error) {
	if c.DBLockTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DBLockTimeout)
	if err != nil {
		return 0, fmt.Errorf("DB_LOCK_TIMEOUT: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("DB_LOCK_TIMEOUT: %s is negative", d)
	}
	return d, nil
}

func (c Config) MinioSSL() (bool, error) {
	if c.MinioUseSSL == "" {
		return false, nil
	}
	useSSL, err := strconv.ParseBool(c.MinioUseSSL)
	if err != nil {
		return false, fmt.Errorf("MINIO_USE_SSL: %w", err)
	}
	return useSSL, nil
}

func (c Config) RedisDatabase() (int, error) {
	if c.RedisDB == "" {
		return 0, nil
	}
	db, err := strconv.Atoi(c.RedisDB)
	if err != nil {
		return 0, fmt.Errorf("REDIS_DB: %w", err)
	}
	return db, nil
}

func (c Config) NotificationChannel() string {
	if c.RedisChannel == "" {
		return DefaultRedisChannel
	}
	return c.RedisChannel
}

func (c Config) LegacyPrefix() string {
	if c.LegacyBOLPrefix == "" {
		return DefaultLegacyBOLPrefix
	}
	return strings.ToUpper(c.LegacyBOLPrefix)
}

func (c Config) RetrySchedule() string {
	if c.DocumentRetrySchedule == "" {
		return DefaultDocumentSchedule
	}
	return c.DocumentRetrySchedule
}

// Level maps LOG_LEVEL (debug, info, warn, error) to a slog level. Unknown
// values fall back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate reports every setting that cannot be parsed or is missing.
func (c Config) Validate() error {
	var problems []string
	if c.HTTPPort == "" {
		problems = append(problems, "HTTP_PORT is required")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.MinioEndpoint == "" || c.MinioBucket == "" {
		problems = append(problems, "MINIO_ENDPOINT and MINIO_BUCKET are required")
	}
	if c.RedisAddr == "" {
		problems = append(problems, "REDIS_ADDR is required")
	}
	if _, err := c.LockTimeout(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.MinioSSL(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.RedisDatabase(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
