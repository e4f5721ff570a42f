package ports

import (
	"context"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
)

// BOLRepository persists issued documents.
type BOLRepository interface {
	// Add persists a newly issued document. A duplicate number fails with
	// pgerr.ErrDuplicateKey from the postgres adapter.
	Add(ctx context.Context, aggregate *bol.BOL) error

	// Update persists void metadata and the document reference.
	Update(ctx context.Context, aggregate *bol.BOL) error

	Get(ctx context.Context, id kernel.UUID) (*bol.BOL, error)

	// GetForUpdate returns the document holding an exclusive row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*bol.BOL, error)

	// Delete physically removes the row. Only the legacy delete path uses it.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListUnrendered returns up to limit documents whose reference is still a
	// placeholder, oldest first.
	ListUnrendered(ctx context.Context, limit int) ([]*bol.BOL, error)
}
