package audit_logs

import (
	"net/http"

	"taskhive-backend/internal/errs"
	users_middleware "taskhive-backend/internal/features/users/middleware"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService      *AuditLogService
	membershipRepository *workspaces_repositories.MembershipRepository
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/workspaces/:id/audit-logs", c.GetWorkspaceAuditLogs)
	router.GET("/audit-logs", c.GetAllAuditLogs)
}

// GetWorkspaceAuditLogs
// @Summary Get workspace audit logs
// @Description Get audit logs of a workspace, newest first
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param beforeDate query string false "Only logs created before this time"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/audit-logs [get]
func (c *AuditLogController) GetWorkspaceAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	if !user.IsGlobalAdmin() {
		role, err := c.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
		if err != nil {
			ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		if role == nil {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this workspace"})
			return
		}
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetWorkspaceAuditLogs(workspaceID, &request)
	if err != nil {
		ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetAllAuditLogs
// @Summary Get all audit logs
// @Description Get audit logs across all workspaces, global admins only
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param beforeDate query string false "Only logs created before this time"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /audit-logs [get]
func (c *AuditLogController) GetAllAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !user.IsGlobalAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetAllAuditLogs(&request)
	if err != nil {
		ctx.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
