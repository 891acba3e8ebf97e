package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/api/metrics"
	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
	"github.com/eventify/eventify/internal/security/revocation"
	"github.com/eventify/eventify/internal/security/token"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	auth        ports.AuthService
	users       ports.UserService
	codec       *token.Codec
	revocations *revocation.Store
	limiter     ports.LoginLimiter
	audit       ports.AuditSink
	log         zerolog.Logger
}

func NewAuthHandler(
	auth ports.AuthService,
	users ports.UserService,
	codec *token.Codec,
	revocations *revocation.Store,
	limiter ports.LoginLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		users:       users,
		codec:       codec,
		revocations: revocations,
		limiter:     limiter,
		audit:       audit,
		log:         log,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a new user account with the default role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/public/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and returns an encrypted bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/public/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if h.limiter != nil {
		if err := h.limiter.Allow(ctx, req.Email); err != nil {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return err
		}
	}

	principal, err := h.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			h.record(domain.AuditLoginFailed, req.Email, "")
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	tok, err := h.codec.Encrypt(principal)
	if err != nil {
		h.log.Error().Err(err).Msg("token encryption failed")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.record(domain.AuditLoginOK, principal.Email, "")

	return c.JSON(http.StatusOK, loginResponse{
		Token: tok,
		Email: principal.Email,
		Role:  principal.Role,
	})
}

// Logout revokes the presented bearer token. The route is exempt from the
// authentication gate, so the handler does its own header parsing; the token
// must still decode before it is accepted for revocation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	tok, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(tok) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}

	principal, err := h.codec.Decode(tok)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}

	h.revocations.Add(tok)
	h.record(domain.AuditLogout, principal.Email, "")
	h.log.Info().Str("email", principal.Email).Msg("user logged out")

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

func (h *AuthHandler) record(action, actor, detail string) {
	if h.audit == nil {
		return
	}
	h.audit.Record(domain.AuditEntry{
		Actor:  actor,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}
