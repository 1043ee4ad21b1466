package adminRoutes

import (
	adminController "schoolportal/controllers/admin"
	"schoolportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), adminController.GetDashboard)
	adminGroup.Get("/audit-logs", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), adminController.ListAuditLogs)
}
