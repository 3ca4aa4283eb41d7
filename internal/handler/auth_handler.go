package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hijabstore/internal/model"
	"hijabstore/internal/service"
)

const invalidBody = "Format request tidak valid"

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration request. Role defaults to user.
type RegisterRequest struct {
	Email    string `json:"email" validate:"max=255"`
	Password string `json:"password" validate:"max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Pesan string               `json:"pesan"`
	User  model.RegisteredUser `json:"user"`
}

// LoginResponse carries the stored user row.
type LoginResponse struct {
	Pesan string     `json:"pesan"`
	User  model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user and issues its API key. Does not log the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(invalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, RegisterResponse{
		Pesan: "Registrasi Berhasil!",
		User:  *user,
	})
}

// Login godoc
// @Summary Login user
// @Description Returns the stored user row, including its API key.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(invalidBody)
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Pesan: "Login Berhasil",
		User:  *user,
	})
}
