package httpapi

import (
	"strings"

	"github.com/dkoval/tasktrack/internal/common"
	"github.com/dkoval/tasktrack/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// requireAuth is the single choke point for authorization: it verifies the
// bearer token and binds the caller's identity into the request context. No
// /api handler runs without it.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return s.writeError(c, common.ErrorMissingToken)
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return s.writeError(c, common.ErrorInvalidToken)
		}

		identity, err := auth.ParseToken(raw, s.jwtSecret)
		if err != nil {
			return s.writeError(c, err)
		}

		c.Set(identityContextKey, identity)
		return next(c)
	}
}

// identityFrom returns the authenticated identity bound by requireAuth.
func identityFrom(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityContextKey).(*auth.Identity)
	return identity
}
