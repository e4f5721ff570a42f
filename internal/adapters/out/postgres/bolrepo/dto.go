// Package bolrepo persists issued Bills of Lading.
package bolrepo

import (
	"time"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOLDTO is the bols table. At most one non-voided row may point at a load,
// enforced by a partial unique index.
type BOLDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number           string          `gorm:"type:varchar(64);not null;uniqueIndex:ux_bols_number"`
	TenantID         *uuid.UUID      `gorm:"type:uuid;index"`
	ReleaseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	LoadID           *uuid.UUID      `gorm:"type:uuid;uniqueIndex:ux_bols_active_load,where:voided = false"`
	Quantity         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IssuedBy         string          `gorm:"type:varchar(255);not null"`
	IssuedAt         time.Time       `gorm:"not null;index"`
	Snapshot         bol.Snapshot    `gorm:"type:jsonb;serializer:json;not null"`
	Voided           bool            `gorm:"not null;default:false"`
	VoidReason       string          `gorm:"type:text"`
	VoidedBy         string          `gorm:"type:varchar(255)"`
	VoidedAt         *time.Time
	DocumentKey      string `gorm:"type:varchar(512)"`
	DocumentRendered bool   `gorm:"not null;default:false"`
}

func (BOLDTO) TableName() string {
	return "bols"
}

func fromDomain(b *bol.BOL) BOLDTO {
	dto := BOLDTO{
		ID:               b.ID().Bytes(),
		Number:           b.Number().String(),
		TenantID:         kernel.BytesPtr(b.TenantID()),
		ReleaseID:        b.ReleaseID().Bytes(),
		LoadID:           kernel.BytesPtr(b.LoadID()),
		Quantity:         b.Quantity().Decimal(),
		IssuedBy:         b.IssuedBy(),
		IssuedAt:         b.IssuedAt(),
		Snapshot:         b.Snapshot(),
		DocumentKey:      b.DocumentKey(),
		DocumentRendered: b.DocumentRendered(),
	}

	if v := b.VoidInfo(); v != nil {
		at := v.VoidedAt
		dto.Voided = true
		dto.VoidReason = v.Reason
		dto.VoidedBy = v.VoidedBy
		dto.VoidedAt = &at
	}

	return dto
}

func toDomain(dto BOLDTO) (*bol.BOL, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	releaseID, err := kernel.UUIDFromBytes(dto.ReleaseID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDPtrFromBytes(dto.TenantID)
	if err != nil {
		return nil, err
	}
	loadID, err := kernel.UUIDPtrFromBytes(dto.LoadID)
	if err != nil {
		return nil, err
	}
	number, err := bol.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	var void *bol.Void
	if dto.Voided {
		void = &bol.Void{Reason: dto.VoidReason, VoidedBy: dto.VoidedBy}
		if dto.VoidedAt != nil {
			void.VoidedAt = dto.VoidedAt.UTC()
		}
	}

	return bol.RestoreBOL(id, bol.Stored{
		Number:           number,
		TenantID:         tenantID,
		ReleaseID:        releaseID,
		LoadID:           loadID,
		Quantity:         quantity,
		IssuedBy:         dto.IssuedBy,
		IssuedAt:         dto.IssuedAt.UTC(),
		Snapshot:         dto.Snapshot,
		Void:             void,
		DocumentKey:      dto.DocumentKey,
		DocumentRendered: dto.DocumentRendered,
	})
}
