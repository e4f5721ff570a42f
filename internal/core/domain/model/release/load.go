package release

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

var (
	ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad or RestoreLoad constructor")
	// ErrLoadNotPending is returned when a load is asked to ship (or cancel) but
	// is not PENDING.
	ErrLoadNotPending = errors.New("load is not pending")
	// ErrLoadNotShipped is returned when reverting a load that did not ship.
	ErrLoadNotShipped = errors.New("load is not shipped")
)

// Load is one scheduled shipment increment of a release.
type Load struct {
	id              kernel.UUID
	releaseID       kernel.UUID
	sequence        int
	plannedQuantity kernel.Quantity
	status          LoadStatus
	bolID           *kernel.UUID
	actualQuantity  *kernel.Quantity

	isConstructed bool
}

// NewLoad creates a PENDING load, as release intake does.
func NewLoad(id, releaseID kernel.UUID, sequence int, planned kernel.Quantity) (*Load, error) {
	return RestoreLoad(id, releaseID, sequence, planned, Pending, nil, nil)
}

// RestoreLoad rebuilds a load from persisted state and checks its invariants.
func RestoreLoad(
	id, releaseID kernel.UUID,
	sequence int,
	planned kernel.Quantity,
	status LoadStatus,
	bolID *kernel.UUID,
	actual *kernel.Quantity,
) (*Load, error) {
	if err := errors.Join(
		id.Validate(),
		releaseID.Validate(),
		planned.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if sequence <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	if err := status.ValidateDocumentLink(bolID != nil); err != nil {
		return nil, err
	}

	return &Load{
		id:              id,
		releaseID:       releaseID,
		sequence:        sequence,
		plannedQuantity: planned,
		status:          status,
		bolID:           bolID,
		actualQuantity:  actual,
		isConstructed:   true,
	}, nil
}

func (l *Load) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLoadIsNotConstructed
	}
	return nil
}

func (l *Load) ID() kernel.UUID {
	return l.id
}

func (l *Load) ReleaseID() kernel.UUID {
	return l.releaseID
}

// Sequence is the 1-based position of the load within its release.
func (l *Load) Sequence() int {
	return l.sequence
}

func (l *Load) PlannedQuantity() kernel.Quantity {
	return l.plannedQuantity
}

func (l *Load) Status() LoadStatus {
	return l.status
}

// BOLID returns the document that shipped the load, nil unless SHIPPED.
func (l *Load) BOLID() *kernel.UUID {
	return l.bolID
}

// ActualQuantity is the quantity recorded on the shipping document.
func (l *Load) ActualQuantity() *kernel.Quantity {
	return l.actualQuantity
}

// IsShippedBy reports whether the load is currently linked to the given document.
func (l *Load) IsShippedBy(bolID kernel.UUID) bool {
	return l.bolID != nil && l.bolID.IsEqual(bolID)
}

// Ship marks the load SHIPPED by the given document. Callers must hold the
// load's row lock and have re-read it, so that the PENDING check is current.
func (l *Load) Ship(bolID kernel.UUID, actual kernel.Quantity) error {
	if err := errors.Join(bolID.Validate(), actual.Validate()); err != nil {
		return err
	}

	newStatus, err := l.status.Ship()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.bolID = &bolID
	l.actualQuantity = &actual
	return nil
}

// Revert returns a SHIPPED load to PENDING and clears its document link and
// actual quantity.
func (l *Load) Revert() error {
	newStatus, err := l.status.Revert()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.bolID = nil
	l.actualQuantity = nil
	return nil
}

// Cancel retires a PENDING load. Cancellation is driven by release intake.
func (l *Load) Cancel() error {
	newStatus, err := l.status.Cancel()
	if err != nil {
		return err
	}

	l.status = newStatus
	return nil
}
