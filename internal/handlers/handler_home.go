package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fx_rate_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rate_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// healthHandler godoc
// @Summary Show the status of server.
// @Description Reports whether the rate store is reachable.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "UNAVAILABLE"
// @Router /health [get]
func healthHandler(health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := health.Ping(c.Request.Context()); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
			c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
			return
		}
		c.String(http.StatusOK, "OK")
	}
}
