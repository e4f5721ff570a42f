// Package ports defines the contracts between the shipment core and its
// infrastructure: persistence, document rendering and notification.
package ports

import (
	"context"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
)

// ReleaseRepository persists release aggregates. Releases are created by
// release intake; the core only reads them and writes their status.
type ReleaseRepository interface {
	// Add persists a new release. Used by intake and test fixtures.
	Add(ctx context.Context, aggregate *release.Release) error

	// Update persists the release status.
	Update(ctx context.Context, aggregate *release.Release) error

	// Get returns the release or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*release.Release, error)

	// GetForUpdate returns the release holding an exclusive row lock until the
	// transaction ends. Status recomputation runs under this lock so that two
	// loads of one release shipping in parallel cannot both miss each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Release, error)
}
