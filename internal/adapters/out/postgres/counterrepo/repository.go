package counterrepo

import (
	"context"
	"errors"
	"fmt"

	"shipments/internal/adapters/out/postgres/pgerr"
	"shipments/internal/core/domain/model/counter"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterRepository implements ports.CounterRepository using GORM.
type GormCounterRepository struct {
	db *gorm.DB
}

func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// GetForUpdate returns the counter row for (key, year) locked FOR UPDATE,
// creating it with last_sequence = 0 first if it does not exist. The insert
// ignores conflicts so that two transactions racing on the first number of a
// year both end up waiting on the same row.
func (r *GormCounterRepository) GetForUpdate(ctx context.Context, key string, year int) (*counter.Counter, error) {
	fresh, err := counter.NewCounter(key, year)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	seed := fromDomain(fresh)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, pgerr.Map(err)
	}

	var dto CounterDTO
	if err := db.
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("counter_key = ? AND year = ?", key, year).
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("counter", fmt.Sprintf("%s/%d", key, year))
		}
		return nil, pgerr.Map(err)
	}

	return toDomain(dto)
}

// Update stores the counter's last issued sequence.
func (r *GormCounterRepository) Update(ctx context.Context, c *counter.Counter) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CounterDTO{}).
		Where("counter_key = ? AND year = ?", dto.CounterKey, dto.Year).
		Update("last_sequence", dto.LastSequence)
	if result.Error != nil {
		return pgerr.Map(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("counter", fmt.Sprintf("%s/%d", dto.CounterKey, dto.Year))
	}

	return nil
}
