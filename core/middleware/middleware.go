package middleware

import (
	"net/http"

	"roundtable-api/core/constants"
	"roundtable-api/core/controller"
	"roundtable-api/core/errors"
	"roundtable-api/core/logger"
	"roundtable-api/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenParser validates a raw bearer token.
type TokenParser func(token string) (*utils.TokenClaims, error)

type Middleware struct {
	parseToken TokenParser
}

func NewMiddleware(parser TokenParser) *Middleware {
	if parser == nil {
		parser = utils.ValidateAndParseToken
	}
	return &Middleware{parseToken: parser}
}

func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Authentication required")
			}

			claims, err := m.parseToken(token)
			if err != nil {
				logger.Debug("Middleware:AuthMiddleware:InvalidToken", err)
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is sent and
// otherwise lets the request through anonymously.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if token != "" {
				if claims, err := m.parseToken(token); err == nil {
					c.Set(constants.ContextTokenData, claims)
				} else {
					logger.Debug("Middleware:OptionalAuthMiddleware:IgnoredToken", err)
				}
			}
			return next(c)
		}
	}
}

// ViewerID returns the authenticated user id or "" for anonymous requests.
func ViewerID(c echo.Context) string {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}
