package referencerepo

import (
	"context"
	"errors"

	"shipments/internal/adapters/out/postgres/pgerr"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReferenceRepository implements ports.ReferenceRepository using GORM.
type GormReferenceRepository struct {
	db *gorm.DB
}

func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

func (r *GormReferenceRepository) GetTenant(ctx context.Context, id kernel.UUID) (reference.Tenant, error) {
	var dto TenantDTO
	if err := r.first(ctx, "tenant", id, &dto); err != nil {
		return reference.Tenant{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) GetCustomer(ctx context.Context, id kernel.UUID) (reference.Customer, error) {
	var dto CustomerDTO
	if err := r.first(ctx, "customer", id, &dto); err != nil {
		return reference.Customer{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) GetProduct(ctx context.Context, id kernel.UUID) (reference.Product, error) {
	var dto ProductDTO
	if err := r.first(ctx, "product", id, &dto); err != nil {
		return reference.Product{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) GetLot(ctx context.Context, id kernel.UUID) (reference.Lot, error) {
	var dto LotDTO
	if err := r.first(ctx, "lot", id, &dto); err != nil {
		return reference.Lot{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) GetCarrier(ctx context.Context, id kernel.UUID) (reference.Carrier, error) {
	var dto CarrierDTO
	if err := r.first(ctx, "carrier", id, &dto); err != nil {
		return reference.Carrier{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) GetTruck(ctx context.Context, id kernel.UUID) (reference.Truck, error) {
	var dto TruckDTO
	if err := r.first(ctx, "truck", id, &dto); err != nil {
		return reference.Truck{}, err
	}
	return dto.toDomain()
}

func (r *GormReferenceRepository) first(ctx context.Context, entity string, id kernel.UUID, dest any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(entity, id.String())
		}
		return pgerr.Map(err)
	}

	return nil
}
