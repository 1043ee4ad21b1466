package staffRoutes

import (
	staffController "schoolportal/controllers/staff"
	"schoolportal/middleware"
	staffValidator "schoolportal/validators/staff"

	"github.com/gofiber/fiber/v2"
)

func SetupStaffRoutes(app *fiber.App) {
	staffGroup := app.Group("/staff")

	staffGroup.Post("/", staffValidator.CreateStaff(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), staffController.CreateStaff)
	staffGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), staffController.ListStaff)
	staffGroup.Patch("/:id", staffValidator.UpdateStaff(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), staffController.UpdateStaff)
	staffGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), staffController.DeleteStaff)
}
