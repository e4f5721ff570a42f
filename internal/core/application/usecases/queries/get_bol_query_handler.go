package queries

import (
	"context"
	"encoding/json"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetBOLQueryHandler struct {
	db *gorm.DB
}

func NewGetBOLQueryHandler(db *gorm.DB) GetBOLQueryHandler {
	return GetBOLQueryHandler{db: db}
}

// Handle returns the document including its snapshot. Documents of a tenant
// the actor cannot see are reported as not found.
func (h GetBOLQueryHandler) Handle(ctx context.Context, query GetBOLQuery) (BOLResponse, error) {
	if err := query.Validate(); err != nil {
		return BOLResponse{}, err
	}

	notFound := errs.NewObjectNotFoundError("bol", query.BOLID().String())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			tenant_id,
			release_id,
			load_id,
			quantity,
			issued_by,
			issued_at,
			voided,
			COALESCE(void_reason, ''),
			COALESCE(voided_by, ''),
			voided_at,
			COALESCE(document_key, ''),
			document_rendered,
			snapshot
		FROM bols
		WHERE id = ?
	`, query.BOLID().Bytes()).Rows()
	if err != nil {
		return BOLResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return BOLResponse{}, err
		}
		return BOLResponse{}, notFound
	}

	var (
		resp             BOLResponse
		id, releaseID    uuid.UUID
		tenantID, loadID *uuid.UUID
		quantity         decimal.Decimal
		issuedAt         time.Time
		voidedAt         *time.Time
		snapshot         []byte
	)
	if err = rows.Scan(
		&id,
		&resp.Number,
		&tenantID,
		&releaseID,
		&loadID,
		&quantity,
		&resp.IssuedBy,
		&issuedAt,
		&resp.Voided,
		&resp.VoidReason,
		&resp.VoidedBy,
		&voidedAt,
		&resp.DocumentKey,
		&resp.DocumentRendered,
		&snapshot,
	); err != nil {
		return BOLResponse{}, err
	}

	if resp.TenantID, err = kernel.UUIDPtrFromBytes(tenantID); err != nil {
		return BOLResponse{}, err
	}
	if !query.Actor().CanAccess(resp.TenantID) {
		return BOLResponse{}, notFound
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return BOLResponse{}, err
	}
	if resp.ReleaseID, err = kernel.UUIDFromBytes(releaseID[:]); err != nil {
		return BOLResponse{}, err
	}
	if resp.LoadID, err = kernel.UUIDPtrFromBytes(loadID); err != nil {
		return BOLResponse{}, err
	}
	if resp.Quantity, err = kernel.NewQuantity(quantity); err != nil {
		return BOLResponse{}, err
	}
	if err = json.Unmarshal(snapshot, &resp.Snapshot); err != nil {
		return BOLResponse{}, err
	}

	resp.IssuedAt = issuedAt.UTC()
	if voidedAt != nil {
		at := voidedAt.UTC()
		resp.VoidedAt = &at
	}

	return resp, nil
}
