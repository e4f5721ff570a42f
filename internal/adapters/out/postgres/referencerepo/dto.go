// Package referencerepo reads the reference data a document snapshot is
// built from. The tables are owned by other collaborators; the core never
// writes them outside tests and seeding.
package referencerepo

import (
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"

	"github.com/google/uuid"
)

type TenantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	BOLPrefix string    `gorm:"column:bol_prefix;type:varchar(16)"`
}

func (TenantDTO) TableName() string { return "tenants" }

type CustomerDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string     `gorm:"type:varchar(255);not null"`
}

func (CustomerDTO) TableName() string { return "customers" }

type ProductDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string     `gorm:"type:varchar(255);not null"`
}

func (ProductDTO) TableName() string { return "products" }

// LotDTO keeps chemistry as a free-form jsonb object of element -> value.
type LotDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID  *uuid.UUID        `gorm:"type:uuid;index"`
	ProductID *uuid.UUID        `gorm:"type:uuid"`
	Code      string            `gorm:"type:varchar(64);not null"`
	Chemistry map[string]string `gorm:"type:jsonb;serializer:json"`
}

func (LotDTO) TableName() string { return "lots" }

type CarrierDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID *uuid.UUID `gorm:"type:uuid;index"`
	Name     string     `gorm:"type:varchar(255);not null"`
}

func (CarrierDTO) TableName() string { return "carriers" }

// TruckDTO has no tenant column; a truck is scoped through its carrier.
type TruckDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TruckNumber   string    `gorm:"type:varchar(32);not null"`
	TrailerNumber string    `gorm:"type:varchar(32)"`
}

func (TruckDTO) TableName() string { return "trucks" }

// Models lists every table of the package, for migrations.
func Models() []any {
	return []any{&TenantDTO{}, &CustomerDTO{}, &ProductDTO{}, &LotDTO{}, &CarrierDTO{}, &TruckDTO{}}
}

func (dto TenantDTO) toDomain() (reference.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return reference.Tenant{}, err
	}
	return reference.Tenant{ID: id, Code: dto.Code, Name: dto.Name, BOLPrefix: dto.BOLPrefix}, nil
}

func (dto CustomerDTO) toDomain() (reference.Customer, error) {
	id, tenantID, err := ids(dto.ID, dto.TenantID)
	if err != nil {
		return reference.Customer{}, err
	}
	return reference.Customer{ID: id, TenantID: tenantID, Name: dto.Name}, nil
}

func (dto ProductDTO) toDomain() (reference.Product, error) {
	id, tenantID, err := ids(dto.ID, dto.TenantID)
	if err != nil {
		return reference.Product{}, err
	}
	return reference.Product{ID: id, TenantID: tenantID, Name: dto.Name}, nil
}

func (dto LotDTO) toDomain() (reference.Lot, error) {
	id, tenantID, err := ids(dto.ID, dto.TenantID)
	if err != nil {
		return reference.Lot{}, err
	}
	productID, err := kernel.UUIDPtrFromBytes(dto.ProductID)
	if err != nil {
		return reference.Lot{}, err
	}
	return reference.Lot{
		ID:        id,
		TenantID:  tenantID,
		ProductID: productID,
		Code:      dto.Code,
		Chemistry: dto.Chemistry,
	}, nil
}

func (dto CarrierDTO) toDomain() (reference.Carrier, error) {
	id, tenantID, err := ids(dto.ID, dto.TenantID)
	if err != nil {
		return reference.Carrier{}, err
	}
	return reference.Carrier{ID: id, TenantID: tenantID, Name: dto.Name}, nil
}

func (dto TruckDTO) toDomain() (reference.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return reference.Truck{}, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return reference.Truck{}, err
	}
	return reference.Truck{
		ID:          id,
		CarrierID:   carrierID,
		TruckNumber: dto.TruckNumber,
		TrailerNo:   dto.TrailerNumber,
	}, nil
}

func ids(id uuid.UUID, tenant *uuid.UUID) (kernel.UUID, *kernel.UUID, error) {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	tenantID, err := kernel.UUIDPtrFromBytes(tenant)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return kid, tenantID, nil
}
