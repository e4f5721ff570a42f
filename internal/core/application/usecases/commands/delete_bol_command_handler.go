package commands

import (
	"context"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
)

// DeleteBOLCommandHandler is the legacy hard-delete path. It runs the same
// FulfillmentReverser as void before removing the row. A document that was
// already voided has been reversed once and is removed without reversing again.
type DeleteBOLCommandHandler struct {
	uowFactory ReversalUoWFactory
	reverser   FulfillmentReverser
	publisher  Publisher
	logger     *slog.Logger
}

func NewDeleteBOLCommandHandler(
	uowFactory ReversalUoWFactory,
	reverser FulfillmentReverser,
	publisher Publisher,
	logger *slog.Logger,
) DeleteBOLCommandHandler {
	return DeleteBOLCommandHandler{
		uowFactory: uowFactory,
		reverser:   reverser,
		publisher:  publisher,
		logger:     logger.With("component", "delete_bol_handler"),
	}
}

func (h DeleteBOLCommandHandler) Handle(ctx context.Context, cmd DeleteBOLCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bolRepo := uow.BOLRepository()

	doc, err := bolRepo.GetForUpdate(ctx, cmd.BOLID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanAccess(doc.TenantID()) {
		return actorMismatch(cmd.Actor(), doc.TenantID())
	}

	if !doc.IsVoided() {
		if err = h.reverser.Reverse(ctx, uow, doc); err != nil {
			return err
		}
	}

	if err = bolRepo.Delete(ctx, doc.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "bol deleted",
		"bol", doc.Number().String(),
		"deleted_by", cmd.Actor().UserID(),
		"was_voided", doc.IsVoided(),
	)

	h.publisher.Announce(context.WithoutCancel(ctx), bol.EventDeleted, doc)
	return nil
}
