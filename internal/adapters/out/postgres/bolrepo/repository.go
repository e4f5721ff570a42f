package bolrepo

import (
	"context"
	"errors"

	"shipments/internal/adapters/out/postgres/pgerr"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// unrenderedGrace keeps the retry job away from documents whose post-commit
// rendering may still be in flight.
const unrenderedGrace = "5 minutes"

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormBOLRepository implements ports.BOLRepository using GORM.
type GormBOLRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBOLRepository(db *gorm.DB, tracker aggregateTracker) *GormBOLRepository {
	return &GormBOLRepository{db: db, tracker: tracker}
}

func (r *GormBOLRepository) Add(ctx context.Context, aggregate *bol.BOL) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns: void metadata and the document reference.
func (r *GormBOLRepository) Update(ctx context.Context, aggregate *bol.BOL) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BOLDTO{}).
		Where("id = ?", dto.ID).
		Select("voided", "void_reason", "voided_by", "voided_at", "document_key", "document_rendered").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bol", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBOLRepository) Get(ctx context.Context, id kernel.UUID) (*bol.BOL, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the document with SELECT ... FOR UPDATE.
func (r *GormBOLRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*bol.BOL, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormBOLRepository) get(db *gorm.DB, id kernel.UUID) (*bol.BOL, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BOLDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bol", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return toDomain(dto)
}

func (r *GormBOLRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&BOLDTO{})
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bol", id.String())
	}

	return nil
}

// ListUnrendered returns documents still pointing at a placeholder. Rows with
// no key at all are only picked up after a grace period, since their issuing
// request may still be rendering them.
func (r *GormBOLRepository) ListUnrendered(ctx context.Context, limit int) ([]*bol.BOL, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []BOLDTO
	if err := r.db.WithContext(ctx).
		Where("document_rendered = ?", false).
		Where("document_key <> '' OR issued_at < NOW() - ?::interval", unrenderedGrace).
		Order("issued_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	docs := make([]*bol.BOL, 0, len(dtos))
	for _, dto := range dtos {
		doc, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
