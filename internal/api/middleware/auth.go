package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/eventify/eventify/internal/api/metrics"
	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
	"github.com/eventify/eventify/internal/security/revocation"
	"github.com/eventify/eventify/internal/security/token"
)

// principalKey is the echo context key the gate stores the principal under.
// It is set exclusively by the gate; rejection paths never set it.
const principalKey = "principal"

const bearerPrefix = "Bearer "

// msgUnauthorized is the uniform body for every gate rejection. The specific
// failed check is recorded in logs and metrics only, never in the response.
const msgUnauthorized = "missing or invalid token"

// GateConfig wires the authentication gate's collaborators.
type GateConfig struct {
	// Skipper marks requests that bypass the gate entirely (public routes,
	// logout, health and metrics probes).
	Skipper echomiddleware.Skipper
	Codec   *token.Codec
	// Revocations is consulted before the token is decoded, so a revoked
	// token is rejected even though it would still decode.
	Revocations *revocation.Store
	Auth        ports.AuthService
	// Audit is optional; when set, revoked-token attempts are recorded.
	Audit ports.AuditSink
	Log   zerolog.Logger
}

// Gate returns the per-request authentication middleware. Order per request:
// skip check, bearer extraction, revocation check, token decode, principal
// re-resolution against the credential store, context attach. Any failure
// stops the chain with a 401 and the principal never reaches the context.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			tok, ok := extractBearer(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				cfg.Log.Warn().Str("path", c.Path()).Msg("missing or malformed authorization header")
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			if cfg.Revocations.Contains(tok) {
				metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
				cfg.Log.Warn().Str("path", c.Path()).Msg("revoked token presented")
				if cfg.Audit != nil {
					cfg.Audit.Record(domain.AuditEntry{
						Action: domain.AuditRevokedAttempt,
						Detail: c.Path(),
						At:     time.Now().UTC(),
					})
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			decoded, err := cfg.Codec.Decode(tok)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				cfg.Log.Warn().Str("path", c.Path()).Msg("token failed to decode")
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			// The token established identity only; current authority comes
			// from the store so a role change applies immediately.
			principal, err := cfg.Auth.Resolve(c.Request().Context(), decoded.Email)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unknown_principal").Inc()
				cfg.Log.Warn().Str("email", decoded.Email).Msg("token subject not resolvable")
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal attached by the gate, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// extractBearer pulls the token out of an Authorization header value. The
// "Bearer " prefix is matched case-sensitively.
func extractBearer(header string) (string, bool) {
	tok, found := strings.CutPrefix(header, bearerPrefix)
	if !found || strings.TrimSpace(tok) == "" {
		return "", false
	}
	return tok, true
}

// PublicSkipper builds a Skipper that passes through the public prefix, the
// deliberately gate-exempt logout route, and operational probes. The specific
// logout rule is checked before the broad prefix match.
func PublicSkipper() echomiddleware.Skipper {
	return func(c echo.Context) bool {
		req := c.Request()
		path := req.URL.Path

		if path == "/api/auth/logout" && req.Method == http.MethodPost {
			return true
		}
		if strings.HasPrefix(path, "/api/public/") {
			return true
		}
		return path == "/health" || path == "/health/ready" || path == "/metrics"
	}
}
