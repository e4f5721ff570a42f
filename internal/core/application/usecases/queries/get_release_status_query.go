package queries

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var (
	ErrGetReleaseStatusQueryIsNotConstructed = errors.New(
		"GetReleaseStatusQuery must be created via NewGetReleaseStatusQuery constructor",
	)
)

// GetReleaseStatusQuery reads a release with all of its loads.
type GetReleaseStatusQuery struct {
	releaseID kernel.UUID
	actor     kernel.Actor
	guard     guard.ConstructorGuard
}

func NewGetReleaseStatusQuery(releaseID kernel.UUID, actor kernel.Actor) (GetReleaseStatusQuery, error) {
	if err := errors.Join(releaseID.Validate(), actor.Validate()); err != nil {
		return GetReleaseStatusQuery{}, err
	}
	return GetReleaseStatusQuery{releaseID: releaseID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReleaseStatusQuery) ReleaseID() kernel.UUID {
	return q.releaseID
}

func (q GetReleaseStatusQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetReleaseStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetReleaseStatusQueryIsNotConstructed)
}

// ReleaseStatusResponse is the read model of a release. Loads are ordered by
// sequence; ShippedQuantity sums the actual quantities of SHIPPED loads.
type ReleaseStatusResponse struct {
	ID              kernel.UUID
	Number          string
	TenantID        *kernel.UUID
	Status          string
	TotalQuantity   kernel.Quantity
	ShippedQuantity string
	Loads           []LoadStatusResponse
}
