// Package releaserepo persists releases and their loads. Loads live in their
// own table and repository but belong to the release aggregate.
package releaserepo

import (
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/core/domain/model/release"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReleaseDTO is the releases table. Rows are written by release intake; the
// core only updates Status.
type ReleaseDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number              string          `gorm:"type:varchar(64);not null;index"`
	TenantID            *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID           *uuid.UUID      `gorm:"type:uuid"`
	LotID               *uuid.UUID      `gorm:"type:uuid"`
	TotalQuantity       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShipTo              AddressDTO      `gorm:"embedded;embeddedPrefix:ship_to_"`
	SpecialInstructions string          `gorm:"type:text"`
	Status              int             `gorm:"type:smallint;not null"`
}

func (ReleaseDTO) TableName() string {
	return "releases"
}

// AddressDTO is the ship-to snapshot embedded in the release row.
type AddressDTO struct {
	Name       string `gorm:"type:varchar(255)"`
	Street     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(128)"`
	State      string `gorm:"type:varchar(64)"`
	PostalCode string `gorm:"type:varchar(32)"`
}

// LoadDTO is the release_loads table. BOLID is set iff Status is SHIPPED.
type LoadDTO struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ReleaseID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:ux_release_loads_sequence,priority:1"`
	Sequence        int                 `gorm:"not null;uniqueIndex:ux_release_loads_sequence,priority:2"`
	PlannedQuantity decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Status          int                 `gorm:"type:smallint;not null"`
	BOLID           *uuid.UUID          `gorm:"column:bol_id;type:uuid"`
	ActualQuantity  decimal.NullDecimal `gorm:"type:numeric(12,2)"`
}

func (LoadDTO) TableName() string {
	return "release_loads"
}

func releaseFromDomain(r *release.Release) ReleaseDTO {
	addr := r.ShipTo()
	return ReleaseDTO{
		ID:            r.ID().Bytes(),
		Number:        r.Number(),
		TenantID:      kernel.BytesPtr(r.TenantID()),
		CustomerID:    r.CustomerID().Bytes(),
		ProductID:     kernel.BytesPtr(r.ProductID()),
		LotID:         kernel.BytesPtr(r.LotID()),
		TotalQuantity: r.TotalQuantity().Decimal(),
		ShipTo: AddressDTO{
			Name:       addr.Name,
			Street:     addr.Street,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
		},
		SpecialInstructions: r.SpecialInstructions(),
		Status:              int(r.Status()),
	}
}

func releaseToDomain(dto ReleaseDTO) (*release.Release, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDPtrFromBytes(dto.TenantID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDPtrFromBytes(dto.ProductID)
	if err != nil {
		return nil, err
	}
	lotID, err := kernel.UUIDPtrFromBytes(dto.LotID)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewQuantity(dto.TotalQuantity)
	if err != nil {
		return nil, err
	}

	return release.RestoreRelease(id, release.Details{
		Number:        dto.Number,
		TenantID:      tenantID,
		CustomerID:    customerID,
		ProductID:     productID,
		LotID:         lotID,
		TotalQuantity: total,
		ShipTo: reference.Address{
			Name:       dto.ShipTo.Name,
			Street:     dto.ShipTo.Street,
			City:       dto.ShipTo.City,
			State:      dto.ShipTo.State,
			PostalCode: dto.ShipTo.PostalCode,
		},
		SpecialInstructions: dto.SpecialInstructions,
	}, release.Status(dto.Status))
}

func loadFromDomain(l *release.Load) LoadDTO {
	dto := LoadDTO{
		ID:              l.ID().Bytes(),
		ReleaseID:       l.ReleaseID().Bytes(),
		Sequence:        l.Sequence(),
		PlannedQuantity: l.PlannedQuantity().Decimal(),
		Status:          int(l.Status()),
		BOLID:           kernel.BytesPtr(l.BOLID()),
	}
	if q := l.ActualQuantity(); q != nil {
		dto.ActualQuantity = decimal.NewNullDecimal(q.Decimal())
	}
	return dto
}

func loadToDomain(dto LoadDTO) (*release.Load, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	releaseID, err := kernel.UUIDFromBytes(dto.ReleaseID[:])
	if err != nil {
		return nil, err
	}
	bolID, err := kernel.UUIDPtrFromBytes(dto.BOLID)
	if err != nil {
		return nil, err
	}
	planned, err := kernel.NewQuantity(dto.PlannedQuantity)
	if err != nil {
		return nil, err
	}

	var actual *kernel.Quantity
	if dto.ActualQuantity.Valid {
		q, qErr := kernel.NewQuantity(dto.ActualQuantity.Decimal)
		if qErr != nil {
			return nil, qErr
		}
		actual = &q
	}

	return release.RestoreLoad(id, releaseID, dto.Sequence, planned, release.LoadStatus(dto.Status), bolID, actual)
}
