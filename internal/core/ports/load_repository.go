package ports

import (
	"context"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
)

// LoadRepository persists the loads of releases.
type LoadRepository interface {
	Add(ctx context.Context, load *release.Load) error

	// Update persists status, document link and actual quantity.
	Update(ctx context.Context, load *release.Load) error

	// Get returns the load without locking it.
	Get(ctx context.Context, id kernel.UUID) (*release.Load, error)

	// GetForUpdate re-reads the load holding an exclusive row lock until the
	// transaction ends. Concurrent callers for the same load block here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Load, error)

	// ListByRelease returns every load of the release ordered by sequence.
	ListByRelease(ctx context.Context, releaseID kernel.UUID) ([]*release.Load, error)
}
