package paperRoutes

import (
	paperController "schoolportal/controllers/paper"
	"schoolportal/middleware"
	paperValidator "schoolportal/validators/paper"

	"github.com/gofiber/fiber/v2"
)

func SetupPaperRoutes(app *fiber.App) {
	paperGroup := app.Group("/papers")

	paperGroup.Post("/", paperValidator.CreatePaper(), middleware.JWTMiddleware, paperController.CreatePaper)
	paperGroup.Post("/generate", paperValidator.CreatePaper(), middleware.JWTMiddleware, paperController.GeneratePaper)
	paperGroup.Get("/", middleware.JWTMiddleware, paperController.ListPapers)
	paperGroup.Get("/:id", middleware.JWTMiddleware, paperController.GetPaper)
	paperGroup.Get("/:id/pdf", middleware.JWTMiddleware, paperController.GetPaperPDF)
	paperGroup.Delete("/:id", middleware.JWTMiddleware, paperController.DeletePaper)
}
