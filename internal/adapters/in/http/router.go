package http

import (
	"log/slog"
	"net/http"

	"shipments/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: the health check and swagger UI are
// public, contract routes require a bearer token and a request that matches
// the OpenAPI document.
func NewRouter(server *Server, doc *openapi3.T, jwtSecret []byte, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := api.RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group(api.BasePath, ActorMiddleware(jwtSecret), validator)
	api.RegisterHandlers(v1, server)

	return e, nil
}
