package standardRoutes

import (
	standardController "schoolportal/controllers/standard"
	"schoolportal/middleware"
	commonValidator "schoolportal/validators/common"

	"github.com/gofiber/fiber/v2"
)

func SetupStandardRoutes(app *fiber.App) {
	standardGroup := app.Group("/standards")

	standardGroup.Post("/", commonValidator.Name(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), standardController.CreateStandard)
	standardGroup.Get("/", middleware.JWTMiddleware, standardController.ListStandards)
	standardGroup.Patch("/:id", commonValidator.Name(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), standardController.UpdateStandard)
	standardGroup.Patch("/:id/toggle", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), standardController.ToggleStandard)
	standardGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), standardController.DeleteStandard)
}
