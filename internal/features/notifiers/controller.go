package notifiers

import (
	"net/http"

	"taskhive-backend/internal/errs"
	users_middleware "taskhive-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WebhookController struct {
	webhookService *WebhookService
}

func (c *WebhookController) RegisterRoutes(router *gin.RouterGroup) {
	routes := router.Group("/webhooks")

	routes.POST("", c.CreateWebhook)
	routes.GET("", c.ListWebhooks)
	routes.DELETE("/:id", c.DeleteWebhook)
}

// CreateWebhook
// @Summary Create webhook
// @Description Subscribe a webhook to committed change events
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Webhook true "Webhook data"
// @Success 201 {object} Webhook
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks [post]
func (c *WebhookController) CreateWebhook(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !user.IsGlobalAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	var webhook Webhook
	if err := ctx.ShouldBindJSON(&webhook); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := c.webhookService.CreateWebhook(&webhook)
	if err != nil {
		ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// ListWebhooks
// @Summary List webhooks
// @Description Get webhooks, optionally filtered by workspace
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param workspaceId query string false "Workspace ID"
// @Success 200 {array} Webhook
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks [get]
func (c *WebhookController) ListWebhooks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !user.IsGlobalAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	var workspaceID *uuid.UUID
	if raw := ctx.Query("workspaceId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
			return
		}
		workspaceID = &parsed
	}

	webhooks, err := c.webhookService.GetWebhooks(workspaceID)
	if err != nil {
		ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, webhooks)
}

// DeleteWebhook
// @Summary Delete webhook
// @Description Remove a webhook subscription
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/{id} [delete]
func (c *WebhookController) DeleteWebhook(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !user.IsGlobalAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	webhookID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID"})
		return
	}

	if err := c.webhookService.DeleteWebhook(webhookID); err != nil {
		ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully"})
}
