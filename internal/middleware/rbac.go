package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hijabstore/internal/errors"
)

// RBAC enforces role-based access control on the role set by APIKey.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Pesan: apperrors.ErrForbidden.Error(),
				})
			}
			return next(c)
		}
	}
}
