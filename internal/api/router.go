package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventify/eventify/internal/api/handler"
	"github.com/eventify/eventify/internal/api/middleware"
	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
	"github.com/eventify/eventify/internal/core/service"
	"github.com/eventify/eventify/internal/infrastructure/http/handlers"
	"github.com/eventify/eventify/internal/security/password"
	"github.com/eventify/eventify/internal/security/revocation"
	"github.com/eventify/eventify/internal/security/token"
)

// Dependencies carries everything the router needs. Repositories are ports so
// tests can swap in stubs; Mongo and Redis are optional and only feed the
// readiness probe.
type Dependencies struct {
	Users         ports.UserRepository
	Events        ports.EventRepository
	Registrations ports.RegistrationRepository
	Codec         *token.Codec
	Revocations   *revocation.Store
	Limiter       ports.LoginLimiter
	Audit         ports.AuditSink
	Mongo         *mongo.Database
	Redis         *redis.Client
	// Metrics overrides the default Prometheus registry. Tests pass a fresh
	// one so building several routers does not collide on registration.
	Metrics *prometheus.Registry
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "eventify"}
	if deps.Metrics != nil {
		promConfig.Registerer = deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Services ---
	authService := service.NewAuthService(deps.Users, password.NewBcryptVerifier(), deps.Log)
	userService := service.NewUserService(deps.Users, deps.Log)
	eventService := service.NewEventService(deps.Events, deps.Registrations, deps.Log)
	registrationService := service.NewRegistrationService(deps.Registrations, deps.Events, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, userService, deps.Codec, deps.Revocations, deps.Limiter, deps.Audit, deps.Log)
	eventHandler := handler.NewEventHandler(eventService, registrationService)
	userHandler := handler.NewUserHandler(userService, eventService, registrationService)
	organizerHandler := handler.NewOrganizerHandler(userService, eventService, registrationService)
	adminHandler := handler.NewAdminHandler(userService, eventService)

	// --- Authentication gate (runs on every route; the skipper exempts the
	// public prefix, logout, and operational probes) ---
	e.Use(middleware.Gate(middleware.GateConfig{
		Skipper:     middleware.PublicSkipper(),
		Codec:       deps.Codec,
		Revocations: deps.Revocations,
		Auth:        authService,
		Audit:       deps.Audit,
		Log:         deps.Log,
	}))

	// --- Public routes ---
	public := e.Group("/api/public")
	public.POST("/users", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.GET("/events", eventHandler.Upcoming)

	// Logout is deliberately exempt from the gate; the handler parses and
	// validates the bearer header itself.
	e.POST("/api/auth/logout", authHandler.Logout)

	// --- Role-gated route groups. No implicit hierarchy: each group lists
	// exactly the roles it admits. ---
	user := e.Group("/api/user", middleware.RBAC(domain.RoleUser))
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.GET("/registrations", userHandler.Registrations)
	user.POST("/events/:id/register", userHandler.RegisterForEvent)
	user.DELETE("/events/:id/register", userHandler.CancelRegistration)

	organizer := e.Group("/api/organizer", middleware.RBAC(domain.RoleOrganizer))
	organizer.GET("/events", organizerHandler.Events)
	organizer.POST("/events", organizerHandler.CreateEvent)
	organizer.PUT("/events/:id", organizerHandler.UpdateEvent)
	organizer.DELETE("/events/:id", organizerHandler.DeleteEvent)
	organizer.GET("/profile", organizerHandler.Profile)

	admin := e.Group("/api/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/events/:id", adminHandler.DeleteEvent)

	// --- Health probes and metrics (no auth required) ---
	health := handlers.New(deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	if deps.Metrics != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Metrics}))
	} else {
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	return e
}
