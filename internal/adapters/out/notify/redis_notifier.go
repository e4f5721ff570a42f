// Package notify publishes document events to Redis pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// publisher is the part of *redis.Client the notifier uses.
type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier implements ports.Notifier. Every event goes to the base
// channel; events of a tenant are also sent to <channel>:<tenantId> so
// subscribers can listen to one tenant only.
type RedisNotifier struct {
	client  publisher
	channel string
}

func NewRedisNotifier(client publisher, channel string) (*RedisNotifier, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	return &RedisNotifier{client: client, channel: channel}, nil
}

func (n *RedisNotifier) Notify(ctx context.Context, event bol.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Kind, err)
	}

	channels := []string{n.channel}
	if event.TenantID != "" {
		channels = append(channels, n.channel+":"+event.TenantID)
	}

	for _, ch := range channels {
		if err = n.client.Publish(ctx, ch, payload).Err(); err != nil {
			return fmt.Errorf("publish %s to %s: %w", event.Kind, ch, err)
		}
	}

	return nil
}

// NewClient creates a Redis client. Connectivity is checked with Ping by the caller.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
