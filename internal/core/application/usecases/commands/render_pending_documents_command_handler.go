package commands

import (
	"context"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
)

// DocumentRetrier renders and stores one document.
type DocumentRetrier interface {
	Retry(ctx context.Context, doc *bol.BOL) error
}

// RenderPendingDocumentsCommandHandler picks up documents whose rendering
// failed at issuance and tries again. Each document is stored in its own
// transaction; one failure does not stop the batch.
type RenderPendingDocumentsCommandHandler struct {
	uowFactory DocumentUoWFactory
	retrier    DocumentRetrier
	logger     *slog.Logger
}

func NewRenderPendingDocumentsCommandHandler(
	uowFactory DocumentUoWFactory,
	retrier DocumentRetrier,
	logger *slog.Logger,
) RenderPendingDocumentsCommandHandler {
	return RenderPendingDocumentsCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
		logger:     logger.With("component", "render_pending_documents_handler"),
	}
}

// Handle returns the number of documents rendered in this run.
func (h RenderPendingDocumentsCommandHandler) Handle(ctx context.Context, cmd RenderPendingDocumentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	docs, err := h.pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	rendered := 0
	for _, doc := range docs {
		if err = h.retrier.Retry(ctx, doc); err != nil {
			h.logger.WarnContext(ctx, "document rendering retry failed",
				"bol", doc.Number().String(), "error", err)
			continue
		}
		rendered++
	}

	return rendered, nil
}

func (h RenderPendingDocumentsCommandHandler) pending(ctx context.Context, limit int) ([]*bol.BOL, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	docs, err := uow.BOLRepository().ListUnrendered(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return docs, nil
}
