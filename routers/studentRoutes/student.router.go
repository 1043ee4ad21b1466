package studentRoutes

import (
	studentController "schoolportal/controllers/student"
	"schoolportal/middleware"
	studentValidator "schoolportal/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/students")

	studentGroup.Post("/", studentValidator.CreateStudent(), middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), studentController.CreateStudent)
	studentGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), studentController.ListStudents)
	studentGroup.Get("/:id", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), studentController.GetStudent)
	studentGroup.Patch("/:id", studentValidator.UpdateStudent(), middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), studentController.UpdateStudent)
	studentGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("STAFF", "ADMIN"), studentController.DeleteStudent)
}
