package ports

import (
	"context"

	"shipments/internal/core/domain/model/counter"
)

// CounterRepository stores document number counters.
type CounterRepository interface {
	// GetForUpdate returns the counter of (key, year), creating it at zero if
	// absent, and holds its row lock until the transaction ends.
	GetForUpdate(ctx context.Context, key string, year int) (*counter.Counter, error)

	// Update persists the advanced counter.
	Update(ctx context.Context, c *counter.Counter) error
}
