package release

import (
	"errors"
	"fmt"
	"strings"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/reference"
	"shipments/internal/pkg/errs"
)

var ErrReleaseIsNotConstructed = errors.New("Release must be created via NewRelease or RestoreRelease constructor")

// Details are the intake-supplied attributes of a release. They are fixed once
// the release exists; only Status moves afterwards.
type Details struct {
	// Number is the customer's external release number.
	Number              string
	TenantID            *kernel.UUID
	CustomerID          kernel.UUID
	ProductID           *kernel.UUID
	LotID               *kernel.UUID
	TotalQuantity       kernel.Quantity
	ShipTo              reference.Address
	SpecialInstructions string
}

// Release is a standing customer order split into loads.
//
// Invariant: status is Complete iff the release has at least one
// non-cancelled load and every non-cancelled load is Shipped. The status is
// only ever changed by RecomputeStatus.
type Release struct {
	id      kernel.UUID
	details Details
	status  Status

	isConstructed bool
}

// NewRelease creates an OPEN release.
func NewRelease(id kernel.UUID, d Details) (*Release, error) {
	return RestoreRelease(id, d, Open)
}

// RestoreRelease rebuilds a release from persisted state.
func RestoreRelease(id kernel.UUID, d Details, status Status) (*Release, error) {
	d.Number = strings.TrimSpace(d.Number)

	var numberErr error
	if d.Number == "" {
		numberErr = errs.NewValueIsRequiredError("release number")
	}

	if err := errors.Join(
		id.Validate(),
		numberErr,
		d.CustomerID.Validate(),
		d.TotalQuantity.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Release{id: id, details: d, status: status, isConstructed: true}, nil
}

func (r *Release) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReleaseIsNotConstructed
	}
	return nil
}

func (r *Release) ID() kernel.UUID {
	return r.id
}

func (r *Release) Number() string {
	return r.details.Number
}

func (r *Release) TenantID() *kernel.UUID {
	return r.details.TenantID
}

func (r *Release) CustomerID() kernel.UUID {
	return r.details.CustomerID
}

func (r *Release) ProductID() *kernel.UUID {
	return r.details.ProductID
}

func (r *Release) LotID() *kernel.UUID {
	return r.details.LotID
}

func (r *Release) TotalQuantity() kernel.Quantity {
	return r.details.TotalQuantity
}

func (r *Release) ShipTo() reference.Address {
	return r.details.ShipTo
}

func (r *Release) SpecialInstructions() string {
	return r.details.SpecialInstructions
}

func (r *Release) Status() Status {
	return r.status
}

// RecomputeStatus derives the status from the complete set of the release's
// loads and reports whether it changed. Calling it again without a load change
// returns false, so callers persist only real transitions.
func (r *Release) RecomputeStatus(loads []*Load) (bool, error) {
	active := 0
	allShipped := true
	for _, l := range loads {
		if err := l.Validate(); err != nil {
			return false, err
		}
		if !l.ReleaseID().IsEqual(r.id) {
			return false, errs.NewValueIsInvalidErrorWithCause(
				"loads",
				fmt.Errorf("load %s belongs to release %s, not %s", l.ID(), l.ReleaseID(), r.id),
			)
		}
		if l.Status() == Cancelled {
			continue
		}
		active++
		if l.Status() != Shipped {
			allShipped = false
		}
	}

	next := Open
	if active > 0 && allShipped {
		next = Complete
	}

	if next == r.status {
		return false, nil
	}
	r.status = next
	return true, nil
}
