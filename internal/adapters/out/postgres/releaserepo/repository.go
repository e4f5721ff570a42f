package releaserepo

import (
	"context"
	"errors"

	"shipments/internal/adapters/out/postgres/pgerr"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormReleaseRepository implements ports.ReleaseRepository using GORM.
type GormReleaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormReleaseRepository(db *gorm.DB, tracker aggregateTracker) *GormReleaseRepository {
	return &GormReleaseRepository{db: db, tracker: tracker}
}

// Add saves a new release.
func (r *GormReleaseRepository) Add(ctx context.Context, aggregate *release.Release) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := releaseFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the release status. Intake-owned columns are never touched.
func (r *GormReleaseRepository) Update(ctx context.Context, aggregate *release.Release) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ReleaseDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("release", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormReleaseRepository) Get(ctx context.Context, id kernel.UUID) (*release.Release, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate reads the release with SELECT ... FOR UPDATE.
func (r *GormReleaseRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Release, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormReleaseRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*release.Release, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReleaseDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("release", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return releaseToDomain(dto)
}

// GormLoadRepository implements ports.LoadRepository using GORM.
type GormLoadRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormLoadRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadRepository {
	return &GormLoadRepository{db: db, tracker: tracker}
}

func (r *GormLoadRepository) Add(ctx context.Context, load *release.Load) error {
	if err := load.Validate(); err != nil {
		return err
	}

	dto := loadFromDomain(load)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err)
	}

	r.tracker.TrackAggregate(load.ID(), load)
	return nil
}

// Update writes status, document link and actual quantity. The columns are
// selected explicitly so that clearing them on revert writes NULL.
func (r *GormLoadRepository) Update(ctx context.Context, load *release.Load) error {
	if err := load.Validate(); err != nil {
		return err
	}

	dto := loadFromDomain(load)
	result := r.db.WithContext(ctx).
		Model(&LoadDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "bol_id", "actual_quantity").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("load", load.ID().String())
	}

	r.tracker.TrackAggregate(load.ID(), load)
	return nil
}

func (r *GormLoadRepository) Get(ctx context.Context, id kernel.UUID) (*release.Load, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the load with SELECT ... FOR UPDATE.
func (r *GormLoadRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*release.Load, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormLoadRepository) get(db *gorm.DB, id kernel.UUID) (*release.Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LoadDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", id.String())
		}
		return nil, pgerr.Map(err)
	}

	return loadToDomain(dto)
}

func (r *GormLoadRepository) ListByRelease(ctx context.Context, releaseID kernel.UUID) ([]*release.Load, error) {
	if err := releaseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LoadDTO
	if err := r.db.WithContext(ctx).
		Where("release_id = ?", releaseID.Bytes()).
		Order("sequence").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	loads := make([]*release.Load, 0, len(dtos))
	for _, dto := range dtos {
		l, err := loadToDomain(dto)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}

	return loads, nil
}
