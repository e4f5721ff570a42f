package commands

import (
	"errors"
	"strings"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
	"shipments/internal/pkg/guard"
)

var ErrVoidBOLCommandIsNotConstructed = errors.New(
	"VoidBOLCommand must be created via NewVoidBOLCommand constructor",
)

// VoidBOLCommand soft-cancels an issued document and returns its load to PENDING.
type VoidBOLCommand struct {
	bolID  kernel.UUID
	reason string
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewVoidBOLCommand(bolID kernel.UUID, reason string, actor kernel.Actor) (VoidBOLCommand, error) {
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(bolID.Validate(), reasonErr, actor.Validate()); err != nil {
		return VoidBOLCommand{}, err
	}

	return VoidBOLCommand{
		bolID:  bolID,
		reason: reason,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c VoidBOLCommand) BOLID() kernel.UUID {
	return c.bolID
}

func (c VoidBOLCommand) Reason() string {
	return c.reason
}

func (c VoidBOLCommand) Actor() kernel.Actor {
	return c.actor
}

func (c VoidBOLCommand) Validate() error {
	return c.guard.Validate(ErrVoidBOLCommandIsNotConstructed)
}
