package http

import (
	"context"
	"log/slog"
	"net/http"

	"shipments/internal/adapters/in/http/api"
	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/application/usecases/queries"
	"shipments/internal/core/domain/model/bol"
	"shipments/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type fulfillLoadHandler interface {
	Handle(ctx context.Context, cmd commands.FulfillLoadCommand) (*bol.BOL, error)
}

type voidBOLHandler interface {
	Handle(ctx context.Context, cmd commands.VoidBOLCommand) (*bol.BOL, error)
}

type deleteBOLHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteBOLCommand) error
}

type loadStatusHandler interface {
	Handle(ctx context.Context, query queries.GetLoadStatusQuery) (queries.LoadStatusResponse, error)
}

type releaseStatusHandler interface {
	Handle(ctx context.Context, query queries.GetReleaseStatusQuery) (queries.ReleaseStatusResponse, error)
}

type bolHandler interface {
	Handle(ctx context.Context, query queries.GetBOLQuery) (queries.BOLResponse, error)
}

// Server implements api.ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	fulfillLoadHandler fulfillLoadHandler
	voidBOLHandler     voidBOLHandler
	deleteBOLHandler   deleteBOLHandler

	// Query handlers
	loadStatusHandler    loadStatusHandler
	releaseStatusHandler releaseStatusHandler
	bolHandler           bolHandler

	logger *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	fulfillLoadHandler fulfillLoadHandler,
	voidBOLHandler voidBOLHandler,
	deleteBOLHandler deleteBOLHandler,
	loadStatusHandler loadStatusHandler,
	releaseStatusHandler releaseStatusHandler,
	bolHandler bolHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		fulfillLoadHandler:   fulfillLoadHandler,
		voidBOLHandler:       voidBOLHandler,
		deleteBOLHandler:     deleteBOLHandler,
		loadStatusHandler:    loadStatusHandler,
		releaseStatusHandler: releaseStatusHandler,
		bolHandler:           bolHandler,
		logger:               logger.With("component", "http_server"),
	}
}

// FulfillLoad handles POST /api/v1/loads/{loadId}/fulfillment - ships the load
// and issues its Bill of Lading.
func (s *Server) FulfillLoad(ctx echo.Context, loadId api.LoadId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.FulfillLoadJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	loadID, err := kernel.UUIDFromBytes(loadId[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	carrierID, err := kernel.UUIDFromBytes(body.CarrierId[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	truckID, err := kernel.UUIDPtrFromBytes(body.TruckId)
	if err != nil {
		return s.fail(ctx, err)
	}
	quantity, err := kernel.ParseQuantity(body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewFulfillLoadCommand(loadID, carrierID, truckID, quantity, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.fulfillLoadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, bolFromAggregate(doc))
}

// VoidBOL handles POST /api/v1/bols/{bolId}/void - voids the document and
// returns its load to pending.
func (s *Server) VoidBOL(ctx echo.Context, bolId api.BolId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body api.VoidBOLJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	bolID, err := kernel.UUIDFromBytes(bolId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewVoidBOLCommand(bolID, body.Reason, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.voidBOLHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bolFromAggregate(doc))
}

// DeleteBOL handles DELETE /api/v1/bols/{bolId} - removes the document.
func (s *Server) DeleteBOL(ctx echo.Context, bolId api.BolId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	bolID, err := kernel.UUIDFromBytes(bolId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteBOLCommand(bolID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.deleteBOLHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLoad handles GET /api/v1/loads/{loadId}.
func (s *Server) GetLoad(ctx echo.Context, loadId api.LoadId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	loadID, err := kernel.UUIDFromBytes(loadId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetLoadStatusQuery(loadID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	load, err := s.loadStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loadFromResponse(load))
}

// GetRelease handles GET /api/v1/releases/{releaseId}.
func (s *Server) GetRelease(ctx echo.Context, releaseId openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	releaseID, err := kernel.UUIDFromBytes(releaseId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetReleaseStatusQuery(releaseID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	rel, err := s.releaseStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	loads := make([]api.Load, len(rel.Loads))
	for i, load := range rel.Loads {
		loads[i] = loadFromResponse(load)
	}

	return ctx.JSON(http.StatusOK, api.Release{
		Id:              rel.ID.Bytes(),
		Number:          rel.Number,
		TenantId:        kernel.BytesPtr(rel.TenantID),
		Status:          api.ReleaseStatus(rel.Status),
		TotalQuantity:   rel.TotalQuantity.String(),
		ShippedQuantity: rel.ShippedQuantity,
		Loads:           loads,
	})
}

// GetBOL handles GET /api/v1/bols/{bolId}.
func (s *Server) GetBOL(ctx echo.Context, bolId api.BolId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	bolID, err := kernel.UUIDFromBytes(bolId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetBOLQuery(bolID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.bolHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.BOL{
		Id:               doc.ID.Bytes(),
		Number:           doc.Number,
		TenantId:         kernel.BytesPtr(doc.TenantID),
		ReleaseId:        doc.ReleaseID.Bytes(),
		LoadId:           kernel.BytesPtr(doc.LoadID),
		Quantity:         doc.Quantity.String(),
		IssuedBy:         doc.IssuedBy,
		IssuedAt:         doc.IssuedAt,
		Voided:           doc.Voided,
		VoidReason:       optional(doc.VoidReason),
		VoidedBy:         optional(doc.VoidedBy),
		VoidedAt:         doc.VoidedAt,
		DocumentKey:      optional(doc.DocumentKey),
		DocumentRendered: doc.DocumentRendered,
		Snapshot:         snapshotFromDomain(doc.Snapshot),
	})
}
