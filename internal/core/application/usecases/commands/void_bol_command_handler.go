package commands

import (
	"context"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
)

// VoidBOLCommandHandler soft-cancels a document and reverses its load and
// release in one transaction. The number is never reused.
//
// Errors:
//   - bol.ErrAlreadyVoided when the document was voided before
//   - services.ErrTenantMismatch when the actor belongs to another tenant
//   - errs.ErrObjectNotFound for an unknown document
type VoidBOLCommandHandler struct {
	uowFactory ReversalUoWFactory
	reverser   FulfillmentReverser
	publisher  Publisher
	clock      Clock
	logger     *slog.Logger
}

func NewVoidBOLCommandHandler(
	uowFactory ReversalUoWFactory,
	reverser FulfillmentReverser,
	publisher Publisher,
	clock Clock,
	logger *slog.Logger,
) VoidBOLCommandHandler {
	return VoidBOLCommandHandler{
		uowFactory: uowFactory,
		reverser:   reverser,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "void_bol_handler"),
	}
}

func (h VoidBOLCommandHandler) Handle(ctx context.Context, cmd VoidBOLCommand) (*bol.BOL, error) {
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

	bolRepo := uow.BOLRepository()

	doc, err := bolRepo.GetForUpdate(ctx, cmd.BOLID())
	if err != nil {
		return nil, err
	}
	if !cmd.Actor().CanAccess(doc.TenantID()) {
		return nil, actorMismatch(cmd.Actor(), doc.TenantID())
	}

	if err = doc.Void(cmd.Actor().UserID(), cmd.Reason(), h.clock()); err != nil {
		return nil, err
	}
	if err = bolRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	if err = h.reverser.Reverse(ctx, uow, doc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "bol voided",
		"bol", doc.Number().String(),
		"voided_by", cmd.Actor().UserID(),
		"reason", cmd.Reason(),
	)

	h.publisher.Announce(context.WithoutCancel(ctx), bol.EventVoided, doc)
	return doc, nil
}
