package queries

import (
	"context"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetLoadStatusQueryHandler reads a load joined with its release (for the
// tenant check) and its shipping document.
//
// A load of a tenant the actor cannot see is reported as not found.
type GetLoadStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetLoadStatusQueryHandler(db *gorm.DB) GetLoadStatusQueryHandler {
	return GetLoadStatusQueryHandler{db: db}
}

func (h GetLoadStatusQueryHandler) Handle(ctx context.Context, query GetLoadStatusQuery) (LoadStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return LoadStatusResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.release_id,
			l.sequence,
			l.planned_quantity,
			l.status,
			l.bol_id,
			COALESCE(b.number, ''),
			l.actual_quantity,
			r.tenant_id
		FROM release_loads l
		JOIN releases r ON r.id = l.release_id
		LEFT JOIN bols b ON b.id = l.bol_id
		WHERE l.id = ?
	`, query.LoadID().Bytes()).Rows()
	if err != nil {
		return LoadStatusResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return LoadStatusResponse{}, err
		}
		return LoadStatusResponse{}, errs.NewObjectNotFoundError("load", query.LoadID().String())
	}

	var (
		id, releaseID   uuid.UUID
		sequence        int
		planned         decimal.Decimal
		status          int
		bolID, tenantID *uuid.UUID
		bolNumber       string
		actual          decimal.NullDecimal
	)
	if err = rows.Scan(&id, &releaseID, &sequence, &planned, &status, &bolID, &bolNumber, &actual, &tenantID); err != nil {
		return LoadStatusResponse{}, err
	}

	owner, err := kernel.UUIDPtrFromBytes(tenantID)
	if err != nil {
		return LoadStatusResponse{}, err
	}
	if !query.Actor().CanAccess(owner) {
		return LoadStatusResponse{}, errs.NewObjectNotFoundError("load", query.LoadID().String())
	}

	return loadStatusResponse(id, releaseID, sequence, planned, status, bolID, bolNumber, actual)
}

func loadStatusResponse(
	id, releaseID uuid.UUID,
	sequence int,
	planned decimal.Decimal,
	status int,
	bolID *uuid.UUID,
	bolNumber string,
	actual decimal.NullDecimal,
) (LoadStatusResponse, error) {
	resp := LoadStatusResponse{
		Sequence:  sequence,
		Status:    release.LoadStatus(status).String(),
		BOLNumber: bolNumber,
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return LoadStatusResponse{}, err
	}
	if resp.ReleaseID, err = kernel.UUIDFromBytes(releaseID[:]); err != nil {
		return LoadStatusResponse{}, err
	}
	if resp.BOLID, err = kernel.UUIDPtrFromBytes(bolID); err != nil {
		return LoadStatusResponse{}, err
	}
	if resp.PlannedQuantity, err = kernel.NewQuantity(planned); err != nil {
		return LoadStatusResponse{}, err
	}
	if actual.Valid {
		q, qErr := kernel.NewQuantity(actual.Decimal)
		if qErr != nil {
			return LoadStatusResponse{}, qErr
		}
		resp.ActualQuantity = &q
	}

	return resp, nil
}
