// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models and never take row locks.
package queries

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var (
	ErrGetLoadStatusQueryIsNotConstructed = errors.New(
		"GetLoadStatusQuery must be created via NewGetLoadStatusQuery constructor",
	)
)

// GetLoadStatusQuery reads one load and the document that shipped it, if any.
//
// Example:
//
//	query, err := NewGetLoadStatusQuery(loadID, actor)
//	if err != nil {
//	    return err
//	}
//	load, err := handler.Handle(ctx, query)
type GetLoadStatusQuery struct {
	loadID kernel.UUID
	actor  kernel.Actor
	guard  guard.ConstructorGuard
}

func NewGetLoadStatusQuery(loadID kernel.UUID, actor kernel.Actor) (GetLoadStatusQuery, error) {
	if err := errors.Join(loadID.Validate(), actor.Validate()); err != nil {
		return GetLoadStatusQuery{}, err
	}
	return GetLoadStatusQuery{loadID: loadID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLoadStatusQuery) LoadID() kernel.UUID {
	return q.loadID
}

func (q GetLoadStatusQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetLoadStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadStatusQueryIsNotConstructed)
}

// LoadStatusResponse is the read model of a load. BOLID, BOLNumber and
// ActualQuantity are set only while the load is SHIPPED.
type LoadStatusResponse struct {
	ID              kernel.UUID
	ReleaseID       kernel.UUID
	Sequence        int
	PlannedQuantity kernel.Quantity
	Status          string
	BOLID           *kernel.UUID
	BOLNumber       string
	ActualQuantity  *kernel.Quantity
}
