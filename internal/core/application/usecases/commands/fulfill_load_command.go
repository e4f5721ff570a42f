package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var ErrFulfillLoadCommandIsNotConstructed = errors.New(
	"FulfillLoadCommand must be created via NewFulfillLoadCommand constructor",
)

// FulfillLoadCommand ships one PENDING load and issues its Bill of Lading.
//
// Example:
//
//	qty, _ := kernel.ParseQuantity("25.75")
//	cmd, err := NewFulfillLoadCommand(loadID, carrierID, &truckID, qty, actor)
//	if err != nil {
//	    return err
//	}
//	doc, err := handler.Handle(ctx, cmd)
type FulfillLoadCommand struct {
	loadID    kernel.UUID
	carrierID kernel.UUID
	truckID   *kernel.UUID
	quantity  kernel.Quantity
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewFulfillLoadCommand validates the inputs. truckID is optional.
func NewFulfillLoadCommand(
	loadID, carrierID kernel.UUID,
	truckID *kernel.UUID,
	quantity kernel.Quantity,
	actor kernel.Actor,
) (FulfillLoadCommand, error) {
	var truckErr error
	if truckID != nil {
		truckErr = truckID.Validate()
	}

	if err := errors.Join(
		loadID.Validate(),
		carrierID.Validate(),
		truckErr,
		quantity.Validate(),
		actor.Validate(),
	); err != nil {
		return FulfillLoadCommand{}, err
	}

	return FulfillLoadCommand{
		loadID:    loadID,
		carrierID: carrierID,
		truckID:   truckID,
		quantity:  quantity,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FulfillLoadCommand) LoadID() kernel.UUID {
	return c.loadID
}

func (c FulfillLoadCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c FulfillLoadCommand) TruckID() *kernel.UUID {
	return c.truckID
}

// Quantity is the shipped quantity recorded on the document, not the planned one.
func (c FulfillLoadCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c FulfillLoadCommand) Actor() kernel.Actor {
	return c.actor
}

func (c FulfillLoadCommand) Validate() error {
	return c.guard.Validate(ErrFulfillLoadCommandIsNotConstructed)
}
