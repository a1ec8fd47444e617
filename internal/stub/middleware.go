package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-reservation-dashboard/internal/api"
)

const userKey = "user"

// authRequired validates the Authentication-Token header and injects the
// resolved user into the request context. Protected route groups wrap
// this first, then a role check.
func (s *Server) authRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(api.AuthHeader)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication required"})
			}
			uid, err := parseAuthToken(s.cfg.JWTSecret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid authentication token"})
			}
			u := s.db.GetUser(uid)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid authentication token"})
			}
			c.Set(userKey, u)
			return next(c)
		}
	}
}

// requireRole aborts with 403 unless the authenticated user carries the
// given role. Assumes authRequired already ran.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := c.Get(userKey).(*User)
			if !ok || !hasRole(u, role) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
			}
			return next(c)
		}
	}
}

// currentUser pulls the authenticated user out of the context.
func currentUser(c echo.Context) *User {
	u, _ := c.Get(userKey).(*User)
	return u
}
