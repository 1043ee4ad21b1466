package authRoutes

import (
	authController "schoolportal/controllers/auth"
	"schoolportal/middleware"
	authValidator "schoolportal/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/forgot-password/send-otp", authValidator.SendOtp(), authController.ForgotPasswordSendOTP)
	authGroup.Post("/forgot-password/verify", authValidator.PasswordReset(), authController.ForgotPasswordVerify)
	authGroup.Post("/profile/send-otp", middleware.JWTMiddleware, authController.ProfileSendOTP)
	authGroup.Post("/profile/update", authValidator.ProfileUpdate(), middleware.JWTMiddleware, authController.ProfileUpdate)
}
