package subjectRoutes

import (
	subjectController "schoolportal/controllers/subject"
	"schoolportal/middleware"
	commonValidator "schoolportal/validators/common"

	"github.com/gofiber/fiber/v2"
)

func SetupSubjectRoutes(app *fiber.App) {
	subjectGroup := app.Group("/subjects")

	subjectGroup.Post("/", commonValidator.Subject(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), subjectController.CreateSubject)
	subjectGroup.Get("/", middleware.JWTMiddleware, subjectController.ListSubjects)
	subjectGroup.Patch("/:id", commonValidator.Subject(), middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), subjectController.UpdateSubject)
	subjectGroup.Patch("/:id/toggle", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), subjectController.ToggleSubject)
	subjectGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), subjectController.DeleteSubject)
}
