package materialRoutes

import (
	materialController "schoolportal/controllers/material"
	"schoolportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMaterialRoutes(app *fiber.App) {
	materialGroup := app.Group("/materials")

	materialGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), materialController.CreateMaterial)
	materialGroup.Get("/", middleware.JWTMiddleware, materialController.ListMaterials)
	materialGroup.Get("/:id/download", middleware.JWTMiddleware, materialController.DownloadMaterial)
	materialGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), materialController.DeleteMaterial)
}
