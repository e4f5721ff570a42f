package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Remove a document (legacy). Reverses its load first unless voided.
	// (DELETE /bols/{bolId})
	DeleteBOL(ctx echo.Context, bolId BolId) error
	// Bill of Lading detail
	// (GET /bols/{bolId})
	GetBOL(ctx echo.Context, bolId BolId) error
	// Void a document and return its load to pending
	// (POST /bols/{bolId}/void)
	VoidBOL(ctx echo.Context, bolId BolId) error
	// Load status
	// (GET /loads/{loadId})
	GetLoad(ctx echo.Context, loadId LoadId) error
	// Ship a pending load and issue its Bill of Lading
	// (POST /loads/{loadId}/fulfillment)
	FulfillLoad(ctx echo.Context, loadId LoadId) error
	// Release status with its loads
	// (GET /releases/{releaseId})
	GetRelease(ctx echo.Context, releaseId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// DeleteBOL converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteBOL(ctx echo.Context) error {
	bolId, err := bindUUID(ctx, "bolId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeleteBOL(ctx, bolId)
}

// GetBOL converts echo context to params.
func (w *ServerInterfaceWrapper) GetBOL(ctx echo.Context) error {
	bolId, err := bindUUID(ctx, "bolId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetBOL(ctx, bolId)
}

// VoidBOL converts echo context to params.
func (w *ServerInterfaceWrapper) VoidBOL(ctx echo.Context) error {
	bolId, err := bindUUID(ctx, "bolId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.VoidBOL(ctx, bolId)
}

// GetLoad converts echo context to params.
func (w *ServerInterfaceWrapper) GetLoad(ctx echo.Context) error {
	loadId, err := bindUUID(ctx, "loadId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetLoad(ctx, loadId)
}

// FulfillLoad converts echo context to params.
func (w *ServerInterfaceWrapper) FulfillLoad(ctx echo.Context) error {
	loadId, err := bindUUID(ctx, "loadId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.FulfillLoad(ctx, loadId)
}

// GetRelease converts echo context to params.
func (w *ServerInterfaceWrapper) GetRelease(ctx echo.Context) error {
	releaseId, err := bindUUID(ctx, "releaseId")
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetRelease(ctx, releaseId)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group
// so routes can be registered on either.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends baseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.DELETE(baseURL+"/bols/:bolId", wrapper.DeleteBOL)
	router.GET(baseURL+"/bols/:bolId", wrapper.GetBOL)
	router.POST(baseURL+"/bols/:bolId/void", wrapper.VoidBOL)
	router.GET(baseURL+"/loads/:loadId", wrapper.GetLoad)
	router.POST(baseURL+"/loads/:loadId/fulfillment", wrapper.FulfillLoad)
	router.GET(baseURL+"/releases/:releaseId", wrapper.GetRelease)
}
