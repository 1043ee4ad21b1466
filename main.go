package main

import (
	"schoolportal/config"
	"schoolportal/database"
	adminRoutes "schoolportal/routers/adminRoutes"
	authRoutes "schoolportal/routers/authRoutes"
	categoryRoutes "schoolportal/routers/categoryRoutes"
	examRoutes "schoolportal/routers/examRoutes"
	materialRoutes "schoolportal/routers/materialRoutes"
	mcqRoutes "schoolportal/routers/mcqRoutes"
	paperRoutes "schoolportal/routers/paperRoutes"
	staffRoutes "schoolportal/routers/staffRoutes"
	standardRoutes "schoolportal/routers/standardRoutes"
	studentRoutes "schoolportal/routers/studentRoutes"
	subjectRoutes "schoolportal/routers/subjectRoutes"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitPdfService()

	scheduler := utils.StartSchedulers()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded question images, materials and generated PDFs
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	standardRoutes.SetupStandardRoutes(app)
	subjectRoutes.SetupSubjectRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	mcqRoutes.SetupMcqRoutes(app)
	materialRoutes.SetupMaterialRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	staffRoutes.SetupStaffRoutes(app)
	paperRoutes.SetupPaperRoutes(app)
	examRoutes.SetupExamRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
