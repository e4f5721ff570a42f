package commands

import (
	"context"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/ports"
)

// Publisher runs the side effects that follow a committed write. Its methods
// return nothing: rendering and notification must never fail a fulfillment
// or reversal that has already committed.
type Publisher interface {
	PublishIssued(ctx context.Context, doc *bol.BOL)
	Announce(ctx context.Context, kind bol.EventKind, doc *bol.BOL)
}

// DocumentPublisher renders issued documents, stores their reference and
// notifies subscribers.
//
// If rendering fails the placeholder key pending/<number>.json is stored with
// rendered=false, and RenderPendingDocumentsCommandHandler retries later.
type DocumentPublisher struct {
	uowFactory DocumentUoWFactory
	renderer   ports.DocumentRenderer
	notifier   ports.Notifier
	clock      Clock
	logger     *slog.Logger
}

func NewDocumentPublisher(
	uowFactory DocumentUoWFactory,
	renderer ports.DocumentRenderer,
	notifier ports.Notifier,
	clock Clock,
	logger *slog.Logger,
) DocumentPublisher {
	return DocumentPublisher{
		uowFactory: uowFactory,
		renderer:   renderer,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.With("component", "document_publisher"),
	}
}

func (p DocumentPublisher) PublishIssued(ctx context.Context, doc *bol.BOL) {
	key, rendered := p.render(ctx, doc)

	// doc mirrors the stored row, so it is left untouched when storing fails.
	stored, err := p.attach(ctx, doc.ID(), key, rendered)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to store document reference",
			"bol", doc.Number().String(), "key", key, "error", err)
	} else if err = doc.AttachDocument(stored.DocumentKey(), stored.DocumentRendered()); err != nil {
		p.logger.ErrorContext(ctx, "stored document reference not applied to issued bol",
			"bol", doc.Number().String(), "key", stored.DocumentKey(), "error", err)
	}

	p.Announce(ctx, bol.EventIssued, doc)
}

func (p DocumentPublisher) Announce(ctx context.Context, kind bol.EventKind, doc *bol.BOL) {
	if p.notifier == nil {
		return
	}

	if err := p.notifier.Notify(ctx, bol.NewEvent(kind, doc, p.clock())); err != nil {
		p.logger.WarnContext(ctx, "notification failed",
			"bol", doc.Number().String(), "kind", string(kind), "error", err)
	}
}

// Retry renders a document that still carries a placeholder and stores the
// real reference. Unlike PublishIssued it reports failure to the caller.
func (p DocumentPublisher) Retry(ctx context.Context, doc *bol.BOL) error {
	key, err := p.renderer.Render(ctx, doc.Snapshot())
	if err != nil {
		return err
	}

	_, err = p.attach(ctx, doc.ID(), key, true)
	return err
}

func (p DocumentPublisher) render(ctx context.Context, doc *bol.BOL) (string, bool) {
	key, err := p.renderer.Render(ctx, doc.Snapshot())
	if err != nil {
		p.logger.WarnContext(ctx, "document rendering failed, storing placeholder",
			"bol", doc.Number().String(), "tenant_id", tenantAttr(doc.TenantID()), "error", err)
		return bol.PendingDocumentKey(doc.Number()), false
	}
	return key, true
}

// attach re-reads the document under lock in its own transaction so that a
// void committed in the meantime is not overwritten. It returns the document
// as stored.
func (p DocumentPublisher) attach(ctx context.Context, id kernel.UUID, key string, rendered bool) (*bol.BOL, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BOLRepository()

	doc, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.DocumentRendered() && !rendered {
		return doc, nil
	}

	if err = doc.AttachDocument(key, rendered); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func tenantAttr(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
