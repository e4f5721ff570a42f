package ports

import (
	"context"

	"shipments/internal/core/domain/model/bol"
)

// Notifier tells outside consumers about issued and voided documents.
// Failures are reported to the caller but never affect stored state.
type Notifier interface {
	Notify(ctx context.Context, event bol.Event) error
}
