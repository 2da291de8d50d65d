package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"kitnetia/internal/domain/service"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/response"
)

type AuthMiddleware struct {
	verifier service.TokenVerifier
}

func NewAuthMiddleware(verifier service.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		token, ok := bearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// OptionalAuth sets uid when a valid token is present and never rejects the request.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := bearerToken(c); ok {
			if uid, err := m.verifier.VerifyToken(c.Request().Context(), token); err == nil {
				c.Set("uid", uid)
			}
		}
		return next(c)
	}
}

// WebSocketAuth also accepts the token as a query parameter, since browsers cannot set headers on upgrade.
func (m *AuthMiddleware) WebSocketAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			token = c.QueryParam("token")
		}
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// UserID returns the authenticated uid, or "" for anonymous requests.
func UserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
