package cmd

import (
	"context"
	"log/slog"
	"time"

	"shipments/internal/adapters/out/notify"
	"shipments/internal/adapters/out/objectstore"
)

// startupProbeTimeout bounds the reachability checks of the object store and
// Redis at startup.
const startupProbeTimeout = 5 * time.Second

// NewRenderer builds the MinIO document renderer. Only a malformed
// configuration is an error: an unreachable object store is logged and the
// bucket is prepared again on the first render.
func NewRenderer(ctx context.Context, config Config, logger *slog.Logger) (*objectstore.Renderer, error) {
	useSSL, err := config.MinioSSL()
	if err != nil {
		return nil, err
	}
	client, err := objectstore.NewClient(config.MinioEndpoint, config.MinioAccessKey, config.MinioSecretKey, useSSL)
	if err != nil {
		return nil, err
	}
	renderer, err := objectstore.NewRenderer(client, config.MinioBucket)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()
	if err = renderer.EnsureBucket(probeCtx); err != nil {
		logger.WarnContext(ctx, "object storage unavailable, documents will be stored as pending",
			"endpoint", config.MinioEndpoint, "bucket", config.MinioBucket, "error", err)
	}
	return renderer, nil
}

// NewNotifier builds the Redis notifier. Only a malformed configuration is
// an error: the client reconnects on its own, and failed publishes are
// logged by the document publisher.
func NewNotifier(ctx context.Context, config Config, logger *slog.Logger) (*notify.RedisNotifier, error) {
	db, err := config.RedisDatabase()
	if err != nil {
		return nil, err
	}
	client := notify.NewClient(config.RedisAddr, config.RedisPassword, db)

	probeCtx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()
	if err = client.Ping(probeCtx).Err(); err != nil {
		logger.WarnContext(ctx, "redis unavailable, notifications will fail until it is back",
			"addr", config.RedisAddr, "error", err)
	}
	return notify.NewRedisNotifier(client, config.NotificationChannel())
}
