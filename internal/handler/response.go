package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hijabstore/internal/errors"
)

// MessageResponse is the plain confirmation envelope.
type MessageResponse struct {
	Pesan string `json:"pesan"`
}

// respondError converts a domain error into an echo HTTP error carrying the
// pesan/error envelope. The router's error handler renders it.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(pesan string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Pesan: pesan})
}
