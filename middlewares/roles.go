package middlewares

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
)

// RequireRole gates a route group on the session's role marker.
// Anonymous requests get an Unauthorized error carrying the role's
// login route (browsers are redirected there by the error handler);
// a logged-in principal with the wrong role gets Forbidden.
func RequireRole(loginPath string, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok {
				return apperr.Unauthorized(loginPath)
			}
			if _, ok := allowed[strings.ToLower(id.Role)]; !ok {
				return apperr.Forbidden()
			}
			return next(c)
		}
	}
}
