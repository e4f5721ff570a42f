package commands

import (
	"errors"

	"shipments/internal/pkg/errs"
	"shipments/internal/pkg/guard"
)

var ErrRenderPendingDocumentsCommandIsNotConstructed = errors.New(
	"RenderPendingDocumentsCommand must be created via NewRenderPendingDocumentsCommand constructor",
)

// RenderPendingDocumentsCommand retries rendering for documents that still
// carry a placeholder reference.
type RenderPendingDocumentsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRenderPendingDocumentsCommand(batchSize int) (RenderPendingDocumentsCommand, error) {
	if batchSize < 1 || batchSize > 500 {
		return RenderPendingDocumentsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 500)
	}

	return RenderPendingDocumentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RenderPendingDocumentsCommand) BatchSize() int {
	return c.batchSize
}

func (c RenderPendingDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrRenderPendingDocumentsCommandIsNotConstructed)
}
