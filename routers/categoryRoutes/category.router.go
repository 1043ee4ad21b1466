package categoryRoutes

import (
	categoryController "schoolportal/controllers/category"
	"schoolportal/middleware"
	commonValidator "schoolportal/validators/common"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories")

	categoryGroup.Post("/", commonValidator.Name(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), categoryController.CreateCategory)
	categoryGroup.Get("/", middleware.JWTMiddleware, categoryController.ListCategories)
	categoryGroup.Patch("/:id", commonValidator.Name(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), categoryController.UpdateCategory)
	categoryGroup.Patch("/:id/toggle", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), categoryController.ToggleCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), categoryController.DeleteCategory)
}
