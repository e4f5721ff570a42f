// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"shipments/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ReleaseRepoFactory interface {
		ReleaseRepository() ports.ReleaseRepository
	}

	LoadRepoFactory interface {
		LoadRepository() ports.LoadRepository
	}

	BOLRepoFactory interface {
		BOLRepository() ports.BOLRepository
	}

	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	ReferenceRepoFactory interface {
		ReferenceRepository() ports.ReferenceRepository
	}

	// ReversalRepos is what FulfillmentReverser needs from the caller's
	// transaction.
	ReversalRepos interface {
		LoadRepoFactory
		ReleaseRepoFactory
	}

	// FulfillmentUoW spans every repository touched when shipping a load.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   load, err := uow.LoadRepository().GetForUpdate(ctx, id)
	//   // ... allocate, create document, ship, recompute
	//
	//   err = uow.Commit(ctx)
	FulfillmentUoW interface {
		TxManager
		ReleaseRepoFactory
		LoadRepoFactory
		BOLRepoFactory
		CounterRepoFactory
		ReferenceRepoFactory
	}

	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// ReversalUoW is used by void and delete.
	ReversalUoW interface {
		TxManager
		BOLRepoFactory
		ReversalRepos
	}

	ReversalUoWFactory interface {
		Create() ReversalUoW
	}

	// DocumentUoW only touches documents. Used after the fulfillment
	// transaction to store rendering results.
	DocumentUoW interface {
		TxManager
		BOLRepoFactory
	}

	DocumentUoWFactory interface {
		Create() DocumentUoW
	}
)

// Clock returns the current time. Handlers take it as a dependency so that
// issuance year and timestamps are deterministic in tests.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}
