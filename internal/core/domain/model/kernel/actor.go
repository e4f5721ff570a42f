package kernel

import (
	"errors"

	"shipments/internal/pkg/errs"
	"shipments/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the already-authenticated identity on whose behalf a command or
// query runs. It is passed explicitly into every use case; nothing in the core
// reads identity from ambient state.
//
// A nil tenant denotes a platform actor that may act across tenants. A tenant
// actor may only touch entities of its own tenant.
type Actor struct {
	userID   string
	tenantID *UUID
	guard    guard.ConstructorGuard
}

// NewActor builds an actor context. userID is recorded as issuer/voider on documents.
func NewActor(userID string, tenantID *UUID) (Actor, error) {
	if userID == "" {
		return Actor{}, errs.NewValueIsRequiredError("userID")
	}
	if tenantID != nil {
		if err := tenantID.Validate(); err != nil {
			return Actor{}, err
		}
	}
	return Actor{userID: userID, tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) UserID() string {
	return a.userID
}

func (a Actor) TenantID() *UUID {
	return a.tenantID
}

// CanAccess reports whether an entity owned by tenantID is visible to the actor.
func (a Actor) CanAccess(tenantID *UUID) bool {
	if a.tenantID == nil {
		return true
	}
	return tenantID != nil && a.tenantID.IsEqual(*tenantID)
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
