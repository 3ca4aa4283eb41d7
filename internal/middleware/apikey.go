package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hijabstore/internal/auth"
	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/logger"
)

// HeaderAPIKey carries the caller's API key.
const HeaderAPIKey = "X-API-Key"

// Context keys set by APIKey.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// APIKey resolves the X-API-Key header to its owner and injects id, email and
// role into the context.
func APIKey(keys auth.KeyStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderAPIKey)
			if key == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Pesan: apperrors.ErrInvalidAPIKey.Error(),
				})
			}

			owner, err := keys.Lookup(c.Request().Context(), key)
			if err != nil {
				log := logger.Get()
				log.Debug().Err(err).Str("path", c.Path()).Msg("api key rejected")
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
			}

			c.Set(ContextUserID, owner.ID)
			c.Set(ContextEmail, owner.Email)
			c.Set(ContextRole, owner.Role)
			return next(c)
		}
	}
}
