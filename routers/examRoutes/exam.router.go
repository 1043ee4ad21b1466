package examRoutes

import (
	examController "schoolportal/controllers/exam"
	"schoolportal/middleware"
	examValidator "schoolportal/validators/exam"

	"github.com/gofiber/fiber/v2"
)

func SetupExamRoutes(app *fiber.App) {
	examGroup := app.Group("/exam-attempts")

	examGroup.Post("/start", examValidator.StartAttempt(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), examController.StartAttempt)
	examGroup.Post("/:id/submit", examValidator.SubmitAttempt(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), examController.SubmitAttempt)
	examGroup.Get("/", middleware.JWTMiddleware, examController.ListAttempts)
	examGroup.Get("/:id", middleware.JWTMiddleware, examController.GetAttempt)
}
