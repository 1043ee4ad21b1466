package studentValidator

import (
	"strings"

	"schoolportal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func CreateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			Email      string `json:"email"`
			Mobile     string `json:"mobile"`
			Password   string `json:"password"`
			StandardID uint   `json:"standard_id"`
			SchoolName string `json:"school_name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if err := validate.Var(reqData.Email, "required,email"); err != nil {
			errors["email"] = "A valid email is required!"
		}
		if reqData.Mobile != "" {
			if err := validate.Var(reqData.Mobile, "e164"); err != nil {
				errors["mobile"] = "Mobile number format is invalid!"
			}
		}
		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		if reqData.StandardID == 0 {
			errors["standard_id"] = "Standard is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

func UpdateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			Mobile     string `json:"mobile"`
			StandardID uint   `json:"standard_id"`
			SchoolName string `json:"school_name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Mobile != "" {
			if err := validate.Var(reqData.Mobile, "e164"); err != nil {
				errors["mobile"] = "Mobile number format is invalid!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudentUpdate", reqData)
		return c.Next()
	}
}
