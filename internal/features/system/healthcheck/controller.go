package system_healthcheck

import (
	"context"
	"net/http"
	"time"

	"taskhive-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type HealthcheckController struct{}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.Healthcheck)
}

// Healthcheck
// @Summary Service healthcheck
// @Description Report service liveness and database reachability
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthcheck [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	env := config.GetEnv()

	// tests run on embedded sqlite, there is nothing to ping
	if env.IsTesting {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(pingCtx, env.DatabaseDsn)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}
	defer func() { _ = conn.Close(pingCtx) }()

	if err := conn.Ping(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "database ping failed",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
