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

// GetReleaseStatusQueryHandler reads a release and its loads in two queries.
// Both run in one read-only transaction so the loads match the status.
type GetReleaseStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetReleaseStatusQueryHandler(db *gorm.DB) GetReleaseStatusQueryHandler {
	return GetReleaseStatusQueryHandler{db: db}
}

func (h GetReleaseStatusQueryHandler) Handle(
	ctx context.Context,
	query GetReleaseStatusQuery,
) (ReleaseStatusResponse, error) {
	if err := query.Validate(); err != nil {
		return ReleaseStatusResponse{}, err
	}

	var resp ReleaseStatusResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY").Error; err != nil {
			return err
		}

		var err error
		if resp, err = h.release(tx, query); err != nil {
			return err
		}
		resp.Loads, err = h.loads(tx, query.ReleaseID())
		return err
	})
	if err != nil {
		return ReleaseStatusResponse{}, err
	}

	shipped := decimal.Zero
	for _, l := range resp.Loads {
		if l.ActualQuantity != nil {
			shipped = shipped.Add(l.ActualQuantity.Decimal())
		}
	}
	resp.ShippedQuantity = shipped.StringFixed(kernel.QuantityScale)

	return resp, nil
}

func (h GetReleaseStatusQueryHandler) release(tx *gorm.DB, query GetReleaseStatusQuery) (ReleaseStatusResponse, error) {
	notFound := errs.NewObjectNotFoundError("release", query.ReleaseID().String())

	rows, err := tx.Raw(`
		SELECT id, number, tenant_id, status, total_quantity
		FROM releases
		WHERE id = ?
	`, query.ReleaseID().Bytes()).Rows()
	if err != nil {
		return ReleaseStatusResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ReleaseStatusResponse{}, err
		}
		return ReleaseStatusResponse{}, notFound
	}

	var (
		id       uuid.UUID
		number   string
		tenantID *uuid.UUID
		status   int
		total    decimal.Decimal
	)
	if err = rows.Scan(&id, &number, &tenantID, &status, &total); err != nil {
		return ReleaseStatusResponse{}, err
	}

	resp := ReleaseStatusResponse{Number: number, Status: release.Status(status).String()}
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ReleaseStatusResponse{}, err
	}
	if resp.TenantID, err = kernel.UUIDPtrFromBytes(tenantID); err != nil {
		return ReleaseStatusResponse{}, err
	}
	if !query.Actor().CanAccess(resp.TenantID) {
		return ReleaseStatusResponse{}, notFound
	}
	if resp.TotalQuantity, err = kernel.NewQuantity(total); err != nil {
		return ReleaseStatusResponse{}, err
	}

	return resp, nil
}

func (h GetReleaseStatusQueryHandler) loads(tx *gorm.DB, releaseID kernel.UUID) ([]LoadStatusResponse, error) {
	rows, err := tx.Raw(`
		SELECT
			l.id,
			l.release_id,
			l.sequence,
			l.planned_quantity,
			l.status,
			l.bol_id,
			COALESCE(b.number, ''),
			l.actual_quantity
		FROM release_loads l
		LEFT JOIN bols b ON b.id = l.bol_id
		WHERE l.release_id = ?
		ORDER BY l.sequence
	`, releaseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]LoadStatusResponse, 0)
	for rows.Next() {
		var (
			id, relID uuid.UUID
			sequence  int
			planned   decimal.Decimal
			status    int
			bolID     *uuid.UUID
			bolNumber string
			actual    decimal.NullDecimal
		)
		if err = rows.Scan(&id, &relID, &sequence, &planned, &status, &bolID, &bolNumber, &actual); err != nil {
			return nil, err
		}

		l, convErr := loadStatusResponse(id, relID, sequence, planned, status, bolID, bolNumber, actual)
		if convErr != nil {
			return nil, convErr
		}
		loads = append(loads, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}
