package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipments/internal/core/domain/model/bol"
	"shipments/internal/pkg/errs"
)

// FulfillmentReverser undoes the effect of a document on its load and release.
// Void and delete both call it inside their own transaction, so the two paths
// cannot drift apart.
//
// The load is reverted only while it is still linked to this document. A load
// that was since reverted or re-shipped by another document is left alone.
// The release status is always recomputed; recomputing is idempotent.
type FulfillmentReverser struct {
	logger *slog.Logger
}

func NewFulfillmentReverser(logger *slog.Logger) FulfillmentReverser {
	return FulfillmentReverser{logger: logger.With("component", "fulfillment_reverser")}
}

// Reverse must be called with the document row already locked. Locks are taken
// in document, load, release order, the same order fulfillment uses.
func (r FulfillmentReverser) Reverse(ctx context.Context, repos ReversalRepos, doc *bol.BOL) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if loadID := doc.LoadID(); loadID != nil {
		loadRepo := repos.LoadRepository()

		load, err := loadRepo.GetForUpdate(ctx, *loadID)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			r.logger.WarnContext(ctx, "load of reversed bol no longer exists",
				"bol", doc.Number().String(), "load_id", loadID.String())
		case err != nil:
			return err
		case load.IsShippedBy(doc.ID()):
			if err = load.Revert(); err != nil {
				return err
			}
			if err = loadRepo.Update(ctx, load); err != nil {
				return err
			}
		default:
			r.logger.WarnContext(ctx, "load is not linked to reversed bol, leaving it unchanged",
				"bol", doc.Number().String(), "load_id", loadID.String(), "load_status", load.Status().String())
		}
	}

	err := recomputeRelease(ctx, repos, doc.ReleaseID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		r.logger.WarnContext(ctx, "release of reversed bol no longer exists",
			"bol", doc.Number().String(), "release_id", doc.ReleaseID().String())
		return nil
	}
	return err
}
