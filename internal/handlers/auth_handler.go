package handlers

import (
	"log/slog"
	"net/http"

	"ledgerview/internal/dto"
	"ledgerview/internal/errors"
	"ledgerview/internal/upstream"

	"github.com/labstack/echo/v4"
)

// AuthHandler proxies authentication to the finance backend. The gateway
// holds no credentials and issues no tokens of its own.
type AuthHandler struct {
	backend upstream.API
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(backend upstream.API) *AuthHandler {
	return &AuthHandler{backend: backend}
}

// Login exchanges credentials for a backend-issued token
// @Summary Login
// @Description Forward credentials to the finance backend and relay its bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Backend-issued token"
// @Failure 401 {object} errors.ErrorResponse "AUTH_003 - Backend rejected the credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.backend.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login rejected",
			"trace_id", getTraceID(c),
			"email", req.Email,
			"client_ip", getClientIP(c))
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// Register creates a new backend user
// @Summary Register
// @Description Forward a registration request to the finance backend
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration fields"
// @Success 201 {object} dto.RegisterResponse "Created user"
// @Failure 422 {object} errors.ErrorResponse "UPSTREAM_003 - Backend rejected the registration"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.backend.Register(c.Request().Context(), req.Email, req.Password, req.BaseCurrency)
	if err != nil {
		return SendUpstreamError(c, err)
	}

	slog.Info("user registered",
		"trace_id", getTraceID(c),
		"user_id", user.ID)

	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:           user.ID,
		Email:        user.Email,
		BaseCurrency: user.BaseCurrency,
	})
}
