package ports

import (
	"context"

	"shipments/internal/core/domain/model/bol"
)

// DocumentRenderer turns a finalized snapshot into a stored artifact and
// returns its storage reference. Implementations must be safe to call again
// for the same snapshot.
type DocumentRenderer interface {
	Render(ctx context.Context, snapshot bol.Snapshot) (string, error)
}
