package mcqRoutes

import (
	mcqController "schoolportal/controllers/mcq"
	"schoolportal/middleware"
	mcqValidator "schoolportal/validators/mcq"

	"github.com/gofiber/fiber/v2"
)

func SetupMcqRoutes(app *fiber.App) {
	mcqGroup := app.Group("/mcqs")

	mcqGroup.Post("/", mcqValidator.CreateMCQ(), middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), mcqController.CreateMCQ)
	mcqGroup.Get("/", middleware.JWTMiddleware, mcqController.ListMCQs)
	mcqGroup.Get("/:id", middleware.JWTMiddleware, mcqController.GetMCQ)
	mcqGroup.Put("/:id", mcqValidator.UpdateMCQ(), middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), mcqController.UpdateMCQ)
	mcqGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), mcqController.DeleteMCQ)
	mcqGroup.Delete("/:id/hard", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), mcqController.HardDeleteMCQ)
}
