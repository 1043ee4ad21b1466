package examValidator

import (
	"schoolportal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ResponsePayload is one submitted answer.
type ResponsePayload struct {
	MCQID         uint `json:"mcq_id"`
	SelectedIndex int  `json:"selected_index"`
}

// SubmitPayload is the body of an attempt submission.
type SubmitPayload struct {
	Responses []ResponsePayload `json:"responses"`
}

// StartAttempt validates the attempt-start body.
func StartAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PaperID uint `json:"paper_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PaperID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"paper_id": "Paper is required!"})
		}

		c.Locals("validatedStart", reqData)
		return c.Next()
	}
}

// SubmitAttempt validates the submission body. Unknown MCQ references are
// allowed through; grading scores them as incorrect.
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		for _, r := range reqData.Responses {
			if r.MCQID == 0 {
				errors["responses"] = "Every response needs an mcq_id!"
				break
			}
			if r.SelectedIndex < 0 {
				errors["responses"] = "Selected index cannot be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}
