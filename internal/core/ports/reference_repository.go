package ports

import (
	"context"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
)

// ReferenceRepository looks up reference data owned by other collaborators.
// Every method returns errs.ErrObjectNotFound for unknown ids.
type ReferenceRepository interface {
	GetTenant(ctx context.Context, id kernel.UUID) (reference.Tenant, error)
	GetCustomer(ctx context.Context, id kernel.UUID) (reference.Customer, error)
	GetProduct(ctx context.Context, id kernel.UUID) (reference.Product, error)
	GetLot(ctx context.Context, id kernel.UUID) (reference.Lot, error)
	GetCarrier(ctx context.Context, id kernel.UUID) (reference.Carrier, error)
	GetTruck(ctx context.Context, id kernel.UUID) (reference.Truck, error)
}
