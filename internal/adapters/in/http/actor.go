package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shipments/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var ErrActorIsMissing = errors.New("actor is missing from request context")

// ActorClaims is the token payload. The subject is the user recorded on
// documents; tenant_id is absent for users that may act on every tenant.
type ActorClaims struct {
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the claims into the request's actor context.
func (c ActorClaims) Actor() (kernel.Actor, error) {
	var tenantID *kernel.UUID
	if c.TenantID != "" {
		id, err := kernel.UUIDFromString(c.TenantID)
		if err != nil {
			return kernel.Actor{}, fmt.Errorf("tenant_id: %w", err)
		}
		tenantID = &id
	}
	return kernel.NewActor(c.Subject, tenantID)
}

// ActorMiddleware authenticates the bearer token and stores the actor in the
// echo context. Only identity is established here; tenant scoping is enforced
// by the use cases.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}

			claims := &ActorClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			actor, err := claims.Actor()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, ErrActorIsMissing
	}
	return actor, nil
}
