package services

import (
	"errors"
	"fmt"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/pkg/errs"
)

// ErrTenantMismatch is returned when a fulfillment references an entity that
// belongs to a different tenant than the release being fulfilled.
var ErrTenantMismatch = errors.New("tenant mismatch")

// TenantMismatchError names the offending entity. It unwraps to ErrTenantMismatch.
type TenantMismatchError struct {
	Entity        string
	EntityID      kernel.UUID
	EntityTenant  kernel.UUID
	ReleaseTenant *kernel.UUID
}

func (e *TenantMismatchError) Error() string {
	release := "none"
	if e.ReleaseTenant != nil {
		release = e.ReleaseTenant.String()
	}
	return fmt.Sprintf("%s: %s %s belongs to tenant %s, release tenant is %s",
		ErrTenantMismatch, e.Entity, e.EntityID, e.EntityTenant, release)
}

func (e *TenantMismatchError) Unwrap() error {
	return ErrTenantMismatch
}

// Boundary is the set of entities one fulfillment touches.
//
// A truck carries no tenant of its own: its tenant is the tenant of the carrier
// that owns it, supplied as TruckCarrier. That carrier is usually, but not
// necessarily, the same record as Carrier.
type Boundary struct {
	ReleaseTenant *kernel.UUID
	Carrier       reference.Carrier
	Truck         *reference.Truck
	TruckCarrier  *reference.Carrier
	Lot           *reference.Lot
}

// TenantBoundaryValidator is a pure domain service that keeps a fulfillment
// inside a single tenant.
//
// Rules:
//   - an entity with a non-nil tenant must match the release tenant
//   - an entity with a nil tenant passes (records not yet migrated to tenants)
//   - a release with no tenant accepts only entities with no tenant
//   - the first offending entity fails the whole check
//
// Example usage:
//
//	validator := NewTenantBoundaryValidator()
//	err := validator.Validate(Boundary{ReleaseTenant: r.TenantID(), Carrier: c})
//	if errors.Is(err, ErrTenantMismatch) {
//	    // reject before taking any lock
//	}
type TenantBoundaryValidator struct{}

func NewTenantBoundaryValidator() TenantBoundaryValidator {
	return TenantBoundaryValidator{}
}

// Validate checks carrier, truck (through its carrier) and lot in that order.
//
// Returns:
//   - nil if every entity is inside the release tenant
//   - *TenantMismatchError for the first entity that is not
//   - ErrValueIsRequired / ErrValueIsInvalid if a truck is given without its
//     owning carrier
func (v TenantBoundaryValidator) Validate(b Boundary) error {
	if err := v.check("carrier", b.Carrier.ID, b.Carrier.TenantID, b.ReleaseTenant); err != nil {
		return err
	}

	if b.Truck != nil {
		if b.TruckCarrier == nil {
			return errs.NewValueIsRequiredError("truck carrier")
		}
		if !b.TruckCarrier.ID.IsEqual(b.Truck.CarrierID) {
			return errs.NewValueIsInvalidErrorWithCause("truck carrier",
				fmt.Errorf("truck %s belongs to carrier %s, not %s", b.Truck.ID, b.Truck.CarrierID, b.TruckCarrier.ID))
		}
		if err := v.check("truck", b.Truck.ID, b.TruckCarrier.TenantID, b.ReleaseTenant); err != nil {
			return err
		}
	}

	if b.Lot != nil {
		if err := v.check("lot", b.Lot.ID, b.Lot.TenantID, b.ReleaseTenant); err != nil {
			return err
		}
	}

	return nil
}

func (v TenantBoundaryValidator) check(entity string, id kernel.UUID, tenant, releaseTenant *kernel.UUID) error {
	if tenant == nil {
		return nil
	}
	if releaseTenant != nil && tenant.IsEqual(*releaseTenant) {
		return nil
	}
	return &TenantMismatchError{
		Entity:        entity,
		EntityID:      id,
		EntityTenant:  *tenant,
		ReleaseTenant: releaseTenant,
	}
}
