// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the release, load, document, counter and
//     reference repositories
//   - Aggregate tracking for post-commit processing
//   - Optional lock_timeout so that a blocked row lock fails instead of hanging
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, WithLockTimeout(5*time.Second))
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	load, err := uow.LoadRepository().GetForUpdate(ctx, loadID)
//	if err != nil {
//	    return err
//	}
//	// ... allocate a number, add the document, ship the load
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Row locks are taken in the order load, counter, release when issuing and
//     document, load, release when reversing
package postgres

import (
	"context"
	"fmt"
	"time"

	"shipments/internal/adapters/out/postgres/bolrepo"
	"shipments/internal/adapters/out/postgres/counterrepo"
	"shipments/internal/adapters/out/postgres/pgerr"
	"shipments/internal/adapters/out/postgres/referencerepo"
	"shipments/internal/adapters/out/postgres/releaserepo"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithLockTimeout makes every transaction run SET LOCAL lock_timeout, so a
// row lock that is not granted in time fails with pgerr.ErrLockTimeout.
// Zero disables the timeout.
func WithLockTimeout(d time.Duration) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.lockTimeout = d
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
//
// Repositories obtained before Begin run outside the transaction. Obtain them
// after Begin to have their reads and locks take part in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       time.Duration
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if uow.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Map(err)
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) ReleaseRepository() ports.ReleaseRepository {
	return releaserepo.NewGormReleaseRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LoadRepository() ports.LoadRepository {
	return releaserepo.NewGormLoadRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BOLRepository() ports.BOLRepository {
	return bolrepo.NewGormBOLRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CounterRepository() ports.CounterRepository {
	return counterrepo.NewGormCounterRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReferenceRepository() ports.ReferenceRepository {
	return referencerepo.NewGormReferenceRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it when aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount returns how many aggregate writes the unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Models lists every table the core reads or writes, for AutoMigrate.
func Models() []any {
	models := []any{
		&releaserepo.ReleaseDTO{},
		&releaserepo.LoadDTO{},
		&bolrepo.BOLDTO{},
		&counterrepo.CounterDTO{},
	}
	return append(models, referencerepo.Models()...)
}
