// Package handlers holds the operational HTTP endpoints that sit outside the
// authenticated API surface.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const checkTimeout = 3 * time.Second

// Health serves the liveness and readiness probes. Liveness only confirms the
// process answers; readiness additionally pings every backing dependency.
type Health struct {
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check func(context.Context) error
}

// New builds a Health handler. Either dependency may be nil, in which case it
// is excluded from the readiness probe.
func New(db *mongo.Database, rdb *redis.Client) *Health {
	h := &Health{}
	if db != nil {
		h.checks = append(h.checks, namedCheck{"mongodb", func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}})
	}
	if rdb != nil {
		h.checks = append(h.checks, namedCheck{"redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return h
}

// Liveness handles GET /health.
func (h *Health) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Readiness handles GET /health/ready. Any failing dependency degrades the
// probe to 503 with per-dependency detail in the body.
func (h *Health) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	results := make(map[string]checkResult, len(h.checks))
	status := http.StatusOK
	overall := "ok"

	for _, nc := range h.checks {
		if err := nc.check(ctx); err != nil {
			results[nc.name] = checkResult{Status: "unhealthy", Error: err.Error()}
			status = http.StatusServiceUnavailable
			overall = "degraded"
			continue
		}
		results[nc.name] = checkResult{Status: "ok"}
	}

	return c.JSON(status, map[string]any{
		"status":       overall,
		"dependencies": results,
	})
}
