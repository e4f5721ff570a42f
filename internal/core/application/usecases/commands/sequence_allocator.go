package commands

import (
	"context"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/counter"
	"shipments/internal/core/ports"
)

// SequenceAllocator is the only producer of document numbers.
//
// Allocate runs inside the caller's transaction: it locks the (prefix, year)
// counter row, creating it at zero when absent, advances it and writes it
// back. The lock is held until the caller commits or rolls back, so
// concurrent callers for the same key serialize and a rolled back caller
// releases its number for the next one. Different keys never contend.
//
// The counter is keyed by the normalized prefix rather than the tenant: each
// tenant normally owns its prefix, but when two tenants (or a tenant and the
// legacy scheme) resolve to the same one they draw from a single sequence
// instead of issuing the same number twice.
type SequenceAllocator struct{}

func NewSequenceAllocator() SequenceAllocator {
	return SequenceAllocator{}
}

func (a SequenceAllocator) Allocate(
	ctx context.Context,
	counters ports.CounterRepository,
	year int,
	prefix string,
) (bol.Number, error) {
	// Reject a bad prefix or year before taking the lock.
	if _, err := bol.NewNumber(prefix, year, 1); err != nil {
		return bol.Number{}, err
	}

	c, err := counters.GetForUpdate(ctx, counter.KeyFor(prefix), year)
	if err != nil {
		return bol.Number{}, err
	}

	seq := c.Next()
	if err = counters.Update(ctx, c); err != nil {
		return bol.Number{}, err
	}

	return bol.NewNumber(prefix, year, seq)
}
