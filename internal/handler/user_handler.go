package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/service"
)

// UserHandler serves the admin user-management routes.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest carries the new email.
type UpdateUserRequest struct {
	Email string `json:"email" validate:"max=255"`
}

// ListUsers godoc
// @Summary List users
// @Description All users without passwords, admins first.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.UserSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return respondError(apperrors.ErrUserNotFound)
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Pesan: "User berhasil dihapus!"})
}

// UpdateUser godoc
// @Summary Update user email
// @Description Overwrites the email. No uniqueness check; a missing id still succeeds.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "New email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return respondError(apperrors.ErrUserNotFound)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(invalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	if err := h.svc.UpdateEmail(c.Request().Context(), id, req.Email); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Pesan: "User berhasil diupdate!"})
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
