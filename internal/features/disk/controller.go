package disk

import (
	"net/http"

	users_middleware "taskhive-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type DiskController struct {
	diskService *DiskService
}

func (c *DiskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/disk/usage", c.GetDiskUsage)
}

// GetDiskUsage
// @Summary Get disk usage
// @Description Get disk usage of the data volume
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DiskUsage
// @Failure 401 {object} map[string]string
// @Router /disk/usage [get]
func (c *DiskController) GetDiskUsage(ctx *gin.Context) {
	_, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	usage, err := c.diskService.GetDataDirUsage()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, usage)
}
