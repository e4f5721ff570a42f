package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var ErrDeleteBOLCommandIsNotConstructed = errors.New(
	"DeleteBOLCommand must be created via NewDeleteBOLCommand constructor",
)

// DeleteBOLCommand physically removes a document. It is the legacy
// counterpart of VoidBOLCommand and reverses the load the same way.
type DeleteBOLCommand struct {
	bolID kernel.UUID
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeleteBOLCommand(bolID kernel.UUID, actor kernel.Actor) (DeleteBOLCommand, error) {
	if err := errors.Join(bolID.Validate(), actor.Validate()); err != nil {
		return DeleteBOLCommand{}, err
	}

	return DeleteBOLCommand{bolID: bolID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteBOLCommand) BOLID() kernel.UUID {
	return c.bolID
}

func (c DeleteBOLCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DeleteBOLCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBOLCommandIsNotConstructed)
}
