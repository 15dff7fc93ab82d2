package workspaces_testing

import (
	users_middleware "taskhive-backend/internal/features/users/middleware"
	users_services "taskhive-backend/internal/features/users/services"
	util_testing "taskhive-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter builds a router with the given controllers mounted
// behind the real auth middleware, the way main() mounts them.
func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	util_testing.EnsureTestDb()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}
