package authValidator

import (
	"strings"

	"schoolportal/middleware"
	examModels "schoolportal/models/exam"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validUserType(t string) bool {
	return t == examModels.CreatorStudent || t == examModels.CreatorStaff
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserType string `json:"user_type"`
			Email    string `json:"email"`
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !validUserType(reqData.UserType) {
			errors["user_type"] = "User type must be STUDENT or STAFF!"
		}
		// Either identifier works; email wins when both are present.
		if reqData.Email != "" {
			if err := validate.Var(reqData.Email, "email"); err != nil {
				errors["email"] = "Email format is invalid!"
			}
		} else if reqData.Mobile != "" {
			if err := validate.Var(reqData.Mobile, "e164"); err != nil {
				errors["mobile"] = "A valid mobile number with country code is required!"
			}
		} else {
			errors["email"] = "An email or mobile number is required!"
		}
		if strings.TrimSpace(reqData.Password) == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func SendOtp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserType string `json:"user_type"`
			Mobile   string `json:"mobile"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !validUserType(reqData.UserType) {
			errors["user_type"] = "User type must be STUDENT or STAFF!"
		}
		if err := validate.Var(reqData.Mobile, "required,e164"); err != nil {
			errors["mobile"] = "A valid mobile number with country code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOtpRequest", reqData)
		return c.Next()
	}
}

func PasswordReset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserType    string `json:"user_type"`
			Mobile      string `json:"mobile"`
			Otp         string `json:"otp"`
			NewPassword string `json:"new_password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !validUserType(reqData.UserType) {
			errors["user_type"] = "User type must be STUDENT or STAFF!"
		}
		if err := validate.Var(reqData.Mobile, "required,e164"); err != nil {
			errors["mobile"] = "A valid mobile number with country code is required!"
		}
		if err := validate.Var(reqData.Otp, "required,len=6,numeric"); err != nil {
			errors["otp"] = "A 6-digit OTP is required!"
		}
		if len(reqData.NewPassword) < 8 {
			errors["new_password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPasswordReset", reqData)
		return c.Next()
	}
}

func ProfileUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Otp    string `json:"otp"`
			Name   string `json:"name"`
			Email  string `json:"email"`
			Mobile string `json:"mobile"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Otp, "required,len=6,numeric"); err != nil {
			errors["otp"] = "A 6-digit OTP is required!"
		}
		if reqData.Email != "" {
			if err := validate.Var(reqData.Email, "email"); err != nil {
				errors["email"] = "Email format is invalid!"
			}
		}
		if reqData.Mobile != "" {
			if err := validate.Var(reqData.Mobile, "e164"); err != nil {
				errors["mobile"] = "Mobile number format is invalid!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfileUpdate", reqData)
		return c.Next()
	}
}
