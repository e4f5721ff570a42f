package queries

import (
	"errors"
	"time"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var (
	ErrGetBOLQueryIsNotConstructed = errors.New(
		"GetBOLQuery must be created via NewGetBOLQuery constructor",
	)
)

// GetBOLQuery reads one document, voided or not.
type GetBOLQuery struct {
	bolID kernel.UUID
	actor kernel.Actor
	guard guard.ConstructorGuard
}

func NewGetBOLQuery(bolID kernel.UUID, actor kernel.Actor) (GetBOLQuery, error) {
	if err := errors.Join(bolID.Validate(), actor.Validate()); err != nil {
		return GetBOLQuery{}, err
	}
	return GetBOLQuery{bolID: bolID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBOLQuery) BOLID() kernel.UUID {
	return q.bolID
}

func (q GetBOLQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetBOLQuery) Validate() error {
	return q.guard.Validate(ErrGetBOLQueryIsNotConstructed)
}

// BOLResponse is the read model of a document. The Void* fields are set only
// for voided documents.
type BOLResponse struct {
	ID               kernel.UUID
	Number           string
	TenantID         *kernel.UUID
	ReleaseID        kernel.UUID
	LoadID           *kernel.UUID
	Quantity         kernel.Quantity
	IssuedBy         string
	IssuedAt         time.Time
	Voided           bool
	VoidReason       string
	VoidedBy         string
	VoidedAt         *time.Time
	DocumentKey      string
	DocumentRendered bool
	Snapshot         bol.Snapshot
}
