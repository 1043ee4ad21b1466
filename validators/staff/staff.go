package staffValidator

import (
	"strings"

	"schoolportal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func CreateStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
			Role     string `json:"role"`
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
		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		if reqData.Role == "" {
			reqData.Role = "STAFF"
		} else if reqData.Role != "STAFF" && reqData.Role != "ADMIN" {
			errors["role"] = "Role must be STAFF or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStaff", reqData)
		return c.Next()
	}
}

func UpdateStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name   string `json:"name"`
			Mobile string `json:"mobile"`
			Role   string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Role != "" && reqData.Role != "STAFF" && reqData.Role != "ADMIN" {
			errors["role"] = "Role must be STAFF or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStaffUpdate", reqData)
		return c.Next()
	}
}
