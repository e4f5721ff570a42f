package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/release"
	"shipments/internal/core/domain/services"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"
)

// FulfillLoadCommandHandler ships a load and issues its Bill of Lading in a
// single transaction.
//
// Sequence:
//  1. read the load, its release and the referenced carrier/truck/lot
//  2. validate the tenant boundary (no lock taken yet)
//  3. re-read the load under its row lock and re-check PENDING
//  4. allocate the document number under the counter row lock
//  5. create the document from a snapshot of the release and references
//  6. mark the load SHIPPED and link it to the document
//  7. recompute the release status under the release row lock
//  8. commit, then hand the document to the publisher
//
// Any failure before commit rolls everything back, including the counter
// increment. Publisher failures are logged by the publisher and never reach
// the caller.
//
// Example:
//
//	handler := NewFulfillLoadCommandHandler(uowFactory, publisher, "BOL", SystemClock, logger)
//	doc, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, release.ErrLoadNotPending):
//	    // someone else shipped it first
//	case errors.Is(err, services.ErrTenantMismatch):
//	    // cross-tenant carrier, truck or lot
//	}
type FulfillLoadCommandHandler struct {
	uowFactory   FulfillmentUoWFactory
	allocator    SequenceAllocator
	validator    services.TenantBoundaryValidator
	publisher    Publisher
	legacyPrefix string
	clock        Clock
	logger       *slog.Logger
}

// NewFulfillLoadCommandHandler creates the handler. legacyPrefix numbers
// documents of releases that have no tenant.
func NewFulfillLoadCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher Publisher,
	legacyPrefix string,
	clock Clock,
	logger *slog.Logger,
) FulfillLoadCommandHandler {
	return FulfillLoadCommandHandler{
		uowFactory:   uowFactory,
		allocator:    NewSequenceAllocator(),
		validator:    services.NewTenantBoundaryValidator(),
		publisher:    publisher,
		legacyPrefix: legacyPrefix,
		clock:        clock,
		logger:       logger.With("component", "fulfill_load_handler"),
	}
}

func (h FulfillLoadCommandHandler) Handle(ctx context.Context, cmd FulfillLoadCommand) (*bol.BOL, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()
	releaseRepo := uow.ReleaseRepository()
	refs := uow.ReferenceRepository()

	load, err := loadRepo.Get(ctx, cmd.LoadID())
	if err != nil {
		return nil, err
	}
	if load.Status() != release.Pending {
		return nil, fmt.Errorf("%w: load %s is %s", release.ErrLoadNotPending, load.ID(), load.Status())
	}

	rel, err := releaseRepo.Get(ctx, load.ReleaseID())
	if err != nil {
		return nil, err
	}
	if !cmd.Actor().CanAccess(rel.TenantID()) {
		return nil, actorMismatch(cmd.Actor(), rel.TenantID())
	}

	boundary, err := h.loadBoundary(ctx, refs, rel, cmd)
	if err != nil {
		return nil, err
	}
	if err = h.validator.Validate(boundary); err != nil {
		return nil, err
	}

	load, err = loadRepo.GetForUpdate(ctx, cmd.LoadID())
	if err != nil {
		return nil, err
	}
	if load.Status() != release.Pending {
		return nil, fmt.Errorf("%w: load %s is %s", release.ErrLoadNotPending, load.ID(), load.Status())
	}

	snapshot, prefix, err := h.snapshot(ctx, refs, rel, load, boundary)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	number, err := h.allocator.Allocate(ctx, uow.CounterRepository(), now.Year(), prefix)
	if err != nil {
		return nil, err
	}

	doc, err := bol.NewBOL(kernel.NewUUID(), bol.Issue{
		Number:    number,
		TenantID:  rel.TenantID(),
		ReleaseID: rel.ID(),
		LoadID:    load.ID(),
		Quantity:  cmd.Quantity(),
		IssuedBy:  cmd.Actor().UserID(),
		IssuedAt:  now,
		Snapshot:  snapshot,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.BOLRepository().Add(ctx, doc); err != nil {
		return nil, err
	}

	if err = load.Ship(doc.ID(), cmd.Quantity()); err != nil {
		return nil, err
	}
	if err = loadRepo.Update(ctx, load); err != nil {
		return nil, err
	}

	if err = recomputeRelease(ctx, uow, rel.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "bol issued",
		"bol", doc.Number().String(),
		"load_id", load.ID().String(),
		"release_id", rel.ID().String(),
		"quantity", cmd.Quantity().String(),
	)

	h.publisher.PublishIssued(context.WithoutCancel(ctx), doc)
	return doc, nil
}

func (h FulfillLoadCommandHandler) loadBoundary(
	ctx context.Context,
	refs ports.ReferenceRepository,
	rel *release.Release,
	cmd FulfillLoadCommand,
) (services.Boundary, error) {
	carrier, err := refs.GetCarrier(ctx, cmd.CarrierID())
	if err != nil {
		return services.Boundary{}, err
	}

	out := services.Boundary{ReleaseTenant: rel.TenantID(), Carrier: carrier}

	if truckID := cmd.TruckID(); truckID != nil {
		truck, truckErr := refs.GetTruck(ctx, *truckID)
		if truckErr != nil {
			return services.Boundary{}, truckErr
		}
		truckCarrier := carrier
		if !truck.CarrierID.IsEqual(carrier.ID) {
			if truckCarrier, truckErr = refs.GetCarrier(ctx, truck.CarrierID); truckErr != nil {
				return services.Boundary{}, truckErr
			}
		}
		out.Truck = &truck
		out.TruckCarrier = &truckCarrier
	}

	if lotID := rel.LotID(); lotID != nil {
		lot, lotErr := refs.GetLot(ctx, *lotID)
		if lotErr != nil {
			return services.Boundary{}, lotErr
		}
		out.Lot = &lot
	}

	return out, nil
}

// snapshot copies everything the document shows and resolves the number prefix.
func (h FulfillLoadCommandHandler) snapshot(
	ctx context.Context,
	refs ports.ReferenceRepository,
	rel *release.Release,
	load *release.Load,
	b services.Boundary,
) (bol.Snapshot, string, error) {
	s := bol.Snapshot{
		ReleaseNumber:       rel.Number(),
		LoadSequence:        load.Sequence(),
		CarrierName:         b.Carrier.Name,
		ShipTo:              rel.ShipTo(),
		SpecialInstructions: rel.SpecialInstructions(),
	}

	prefix := h.legacyPrefix
	if tenantID := rel.TenantID(); tenantID != nil {
		tenant, err := refs.GetTenant(ctx, *tenantID)
		if err != nil {
			return bol.Snapshot{}, "", err
		}
		prefix = tenant.NumberPrefix()
		s.TenantName = tenant.Name
	}

	customer, err := refs.GetCustomer(ctx, rel.CustomerID())
	if err != nil {
		return bol.Snapshot{}, "", err
	}
	s.CustomerName = customer.Name

	productID := rel.ProductID()
	if b.Lot != nil {
		s.LotCode = b.Lot.Code
		s.Chemistry = b.Lot.Chemistry
		if productID == nil {
			productID = b.Lot.ProductID
		}
	}
	if productID != nil {
		product, productErr := refs.GetProduct(ctx, *productID)
		if productErr != nil && !errors.Is(productErr, errs.ErrObjectNotFound) {
			return bol.Snapshot{}, "", productErr
		}
		s.ProductName = product.Name
	}

	if b.Truck != nil {
		s.TruckNumber = b.Truck.TruckNumber
		s.TrailerNumber = b.Truck.TrailerNo
	}

	return s, prefix, nil
}

// recomputeRelease locks the release, derives its status from all of its
// loads and writes it only if it changed.
func recomputeRelease(ctx context.Context, repos ReversalRepos, releaseID kernel.UUID) error {
	releaseRepo := repos.ReleaseRepository()

	rel, err := releaseRepo.GetForUpdate(ctx, releaseID)
	if err != nil {
		return err
	}

	loads, err := repos.LoadRepository().ListByRelease(ctx, releaseID)
	if err != nil {
		return err
	}

	changed, err := rel.RecomputeStatus(loads)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return releaseRepo.Update(ctx, rel)
}

func actorMismatch(actor kernel.Actor, tenantID *kernel.UUID) error {
	target := "no tenant"
	if tenantID != nil {
		target = "tenant " + tenantID.String()
	}
	return fmt.Errorf("%w: actor %s of tenant %s cannot act on %s",
		services.ErrTenantMismatch, actor.UserID(), actor.TenantID(), target)
}
