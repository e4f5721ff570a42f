package bol

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

var (
	// ErrBOLIsNotConstructed is returned when a BOL was not created through
	// NewBOL or RestoreBOL.
	ErrBOLIsNotConstructed = errors.New("BOL must be created via NewBOL or RestoreBOL constructor")

	// ErrAlreadyVoided is returned when voiding a document twice.
	ErrAlreadyVoided = errors.New("bol is already voided")
)

// PendingDocumentPrefix marks storage keys written when rendering failed and
// the document still has to be produced.
const PendingDocumentPrefix = "pending/"

// Issue carries what the orchestrator knows when it creates a document.
type Issue struct {
	Number    Number
	TenantID  *kernel.UUID
	ReleaseID kernel.UUID
	LoadID    kernel.UUID
	Quantity  kernel.Quantity
	IssuedBy  string
	IssuedAt  time.Time
	Snapshot  Snapshot
}

// Void records who voided a document, when and why.
type Void struct {
	Reason   string
	VoidedBy string
	VoidedAt time.Time
}

// BOL is the Bill of Lading aggregate.
//
// Invariants:
//   - number, tenant, quantity and snapshot never change after issuance
//   - a voided BOL cannot be voided again
//   - the load link is kept after voiding so the document stays traceable
type BOL struct {
	id        kernel.UUID
	number    Number
	tenantID  *kernel.UUID
	releaseID kernel.UUID
	loadID    *kernel.UUID
	quantity  kernel.Quantity
	issuedBy  string
	issuedAt  time.Time
	snapshot  Snapshot

	void *Void

	documentKey      string
	documentRendered bool

	isConstructed bool
}

// NewBOL issues a new document. The snapshot number and quantity are
// overwritten with the authoritative values so the two cannot disagree.
func NewBOL(id kernel.UUID, in Issue) (*BOL, error) {
	var numberErr error
	if in.Number.IsZero() {
		numberErr = errs.NewValueIsRequiredError("number")
	}
	issuedBy := strings.TrimSpace(in.IssuedBy)
	var issuedByErr error
	if issuedBy == "" {
		issuedByErr = errs.NewValueIsRequiredError("issuedBy")
	}
	var issuedAtErr error
	if in.IssuedAt.IsZero() {
		issuedAtErr = errs.NewValueIsRequiredError("issuedAt")
	}

	if err := errors.Join(
		id.Validate(),
		numberErr,
		in.ReleaseID.Validate(),
		in.LoadID.Validate(),
		in.Quantity.Validate(),
		issuedByErr,
		issuedAtErr,
	); err != nil {
		return nil, err
	}

	snapshot := in.Snapshot.clone()
	snapshot.Number = in.Number.String()
	snapshot.Quantity = in.Quantity.String()
	snapshot.IssuedAt = in.IssuedAt.UTC()
	snapshot.IssuedBy = issuedBy

	loadID := in.LoadID
	return &BOL{
		id:            id,
		number:        in.Number,
		tenantID:      in.TenantID,
		releaseID:     in.ReleaseID,
		loadID:        &loadID,
		quantity:      in.Quantity,
		issuedBy:      issuedBy,
		issuedAt:      in.IssuedAt.UTC(),
		snapshot:      snapshot,
		isConstructed: true,
	}, nil
}

// Stored is the persisted state of a BOL.
type Stored struct {
	Number           Number
	TenantID         *kernel.UUID
	ReleaseID        kernel.UUID
	LoadID           *kernel.UUID
	Quantity         kernel.Quantity
	IssuedBy         string
	IssuedAt         time.Time
	Snapshot         Snapshot
	Void             *Void
	DocumentKey      string
	DocumentRendered bool
}

// RestoreBOL rebuilds a document from storage. Loads may have been deleted
// upstream, so the load link is optional here.
func RestoreBOL(id kernel.UUID, s Stored) (*BOL, error) {
	if err := errors.Join(id.Validate(), s.ReleaseID.Validate(), s.Quantity.Validate()); err != nil {
		return nil, err
	}
	if s.Number.IsZero() {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var void *Void
	if s.Void != nil {
		v := *s.Void
		void = &v
	}

	return &BOL{
		id:               id,
		number:           s.Number,
		tenantID:         s.TenantID,
		releaseID:        s.ReleaseID,
		loadID:           s.LoadID,
		quantity:         s.Quantity,
		issuedBy:         s.IssuedBy,
		issuedAt:         s.IssuedAt,
		snapshot:         s.Snapshot.clone(),
		void:             void,
		documentKey:      s.DocumentKey,
		documentRendered: s.DocumentRendered,
		isConstructed:    true,
	}, nil
}

func (b *BOL) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBOLIsNotConstructed
	}
	return nil
}

func (b *BOL) ID() kernel.UUID {
	return b.id
}

func (b *BOL) Number() Number {
	return b.number
}

func (b *BOL) TenantID() *kernel.UUID {
	return b.tenantID
}

func (b *BOL) ReleaseID() kernel.UUID {
	return b.releaseID
}

// LoadID is the load this document fulfilled, nil if that load no longer exists.
func (b *BOL) LoadID() *kernel.UUID {
	return b.loadID
}

func (b *BOL) Quantity() kernel.Quantity {
	return b.quantity
}

func (b *BOL) IssuedBy() string {
	return b.issuedBy
}

func (b *BOL) IssuedAt() time.Time {
	return b.issuedAt
}

// Snapshot returns a copy of the issuance snapshot.
func (b *BOL) Snapshot() Snapshot {
	return b.snapshot.clone()
}

func (b *BOL) IsVoided() bool {
	return b.void != nil
}

// VoidInfo returns the void metadata, nil while the document is active.
func (b *BOL) VoidInfo() *Void {
	if b.void == nil {
		return nil
	}
	v := *b.void
	return &v
}

func (b *BOL) DocumentKey() string {
	return b.documentKey
}

// DocumentRendered reports whether DocumentKey points at a real artifact
// rather than a placeholder.
func (b *BOL) DocumentRendered() bool {
	return b.documentRendered
}

// Void soft-cancels the document. Number and snapshot stay untouched.
func (b *BOL) Void(voidedBy, reason string, at time.Time) error {
	if b.void != nil {
		return fmt.Errorf("%w: %s voided at %s", ErrAlreadyVoided, b.number, b.void.VoidedAt.Format(time.RFC3339))
	}

	voidedBy = strings.TrimSpace(voidedBy)
	reason = strings.TrimSpace(reason)
	if voidedBy == "" {
		return errs.NewValueIsRequiredError("voidedBy")
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("voidedAt")
	}

	b.void = &Void{Reason: reason, VoidedBy: voidedBy, VoidedAt: at.UTC()}
	return nil
}

// AttachDocument stores the reference produced by the renderer. A rendered
// document is never replaced by a placeholder.
func (b *BOL) AttachDocument(key string, rendered bool) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("document key")
	}
	if b.documentRendered && !rendered {
		return errs.NewValueIsInvalidErrorWithCause("document key",
			fmt.Errorf("%s already has rendered document %s", b.number, b.documentKey))
	}

	b.documentKey = key
	b.documentRendered = rendered
	return nil
}

// PendingDocumentKey is the placeholder reference for a document that could
// not be rendered yet.
func PendingDocumentKey(n Number) string {
	return PendingDocumentPrefix + n.String() + ".json"
}
