package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"consigne/internal/auth"
	"consigne/internal/errors"
	"consigne/internal/model"
)

// ContextKey is where the echo-jwt middleware stores the parsed token.
const ContextKey = "user"

// CurrentClaims returns the verified claims for the request, or nil when the
// request never went through the jwt middleware. Confirmation tokens are not
// an identity.
func CurrentClaims(c echo.Context) *auth.Claims {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.Purpose != "" {
		return nil
	}
	return claims
}

// RequireRole admits the request iff a verified identity exists and its role
// is in the allowed set. Authentication is checked strictly before role
// sufficiency: a missing or invalid identity is 401, never 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "unauthenticated",
					Code:  "UNAUTHENTICATED",
				})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: errors.ErrForbidden.Error(),
				Code:  "FORBIDDEN",
			})
		}
	}
}
