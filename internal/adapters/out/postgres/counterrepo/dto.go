// Package counterrepo stores the per-prefix, per-year document number counters.
package counterrepo

import "shipments/internal/core/domain/model/counter"

// CounterDTO is one row per counter key and calendar year.
type CounterDTO struct {
	CounterKey   string `gorm:"type:varchar(64);primaryKey"`
	Year         int    `gorm:"primaryKey;autoIncrement:false"`
	LastSequence int64  `gorm:"not null;default:0"`
}

func (CounterDTO) TableName() string {
	return "bol_counters"
}

func fromDomain(c *counter.Counter) CounterDTO {
	return CounterDTO{
		CounterKey:   c.Key(),
		Year:         c.Year(),
		LastSequence: c.Last(),
	}
}

func toDomain(dto CounterDTO) (*counter.Counter, error) {
	return counter.RestoreCounter(dto.CounterKey, dto.Year, dto.LastSequence)
}
