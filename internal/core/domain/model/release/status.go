package release

import (
	"fmt"

	"shipments/internal/pkg/errs"
)

// Status is the aggregate state of a release.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	// Open means at least one non-cancelled load still waits to ship.
	Open
	// Complete means every non-cancelled load has shipped.
	Complete
)

func (s Status) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Complete:
		return "COMPLETE"
	case StatusUnknown:
	}
	return "UNKNOWN"
}

// Validate rejects StatusUnknown and out-of-range values read from storage.
func (s Status) Validate() error {
	if s != Open && s != Complete {
		return errs.NewValueIsInvalidErrorWithCause("release status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// LoadStatus is the lifecycle state of a single load.
type LoadStatus int

const (
	LoadStatusUnknown LoadStatus = iota
	Pending
	Shipped
	Cancelled
)

func (s LoadStatus) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Shipped:
		return "SHIPPED"
	case Cancelled:
		return "CANCELLED"
	case LoadStatusUnknown:
	}
	return "UNKNOWN"
}

func (s LoadStatus) Validate() error {
	if s != Pending && s != Shipped && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("load status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Ship transitions PENDING -> SHIPPED.
func (s LoadStatus) Ship() (LoadStatus, error) {
	if s != Pending {
		return LoadStatusUnknown, fmt.Errorf("%w: load is %s", ErrLoadNotPending, s)
	}
	return Shipped, nil
}

// Revert transitions SHIPPED -> PENDING.
func (s LoadStatus) Revert() (LoadStatus, error) {
	if s != Shipped {
		return LoadStatusUnknown, fmt.Errorf("%w: load is %s", ErrLoadNotShipped, s)
	}
	return Pending, nil
}

// Cancel transitions PENDING -> CANCELLED.
func (s LoadStatus) Cancel() (LoadStatus, error) {
	if s != Pending {
		return LoadStatusUnknown, fmt.Errorf("%w: load is %s", ErrLoadNotPending, s)
	}
	return Cancelled, nil
}

// ValidateDocumentLink enforces that only a shipped load references a document.
func (s LoadStatus) ValidateDocumentLink(hasDocument bool) error {
	if hasDocument != (s == Shipped) {
		return errs.NewValueIsInvalidErrorWithCause(
			"load status",
			fmt.Errorf("%s load cannot have document link = %t", s, hasDocument),
		)
	}
	return nil
}
