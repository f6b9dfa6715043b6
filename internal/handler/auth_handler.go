package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
	"blogapi/internal/validation"
)

// AuthHandler handles registration, login, and identity endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.SignupRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 409 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User created successfully", user)
}

// Login godoc
// @Summary Login and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Log in successful", result)
}

// Me godoc
// @Summary Get the caller's own user info
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.GetUserByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Successfully retrieved User", user)
}
