package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// getHealth godoc
// @Summary Show the status of server.
// @Description Returns OK when the server and, if configured, the database are reachable.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "Database unavailable"
// @Router /health [get]
func getHealth(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}
