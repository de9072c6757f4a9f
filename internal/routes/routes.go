package routes

import (
	"github.com/Josue-Alexander/gestionitp/internal/container"
	"github.com/Josue-Alexander/gestionitp/internal/middleware"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes monta lo que funciona sin token: login y registro.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes agrupa todo /api detrás del middleware JWT. El
// control por rol vive en cada handler, junto a la ruta que protege.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api")
	api.Use(security.JWTMiddleware())

	c.AssetHandler.RegisterRoutes(api)
	c.AssignmentHandler.RegisterRoutes(api)
	c.MaintenanceHandler.RegisterRoutes(api)
	c.CategoryHandler.RegisterRoutes(api)
	c.DepartmentHandler.RegisterRoutes(api)
	c.LocationHandler.RegisterRoutes(api)
	c.UserHandler.RegisterRoutes(api)
	c.ReportHandler.RegisterRoutes(api)
	c.AuditLogHandler.RegisterRoutes(api)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
}
