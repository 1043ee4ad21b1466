package paperValidator

import (
	"fmt"
	"strings"

	"schoolportal/middleware"
	examModels "schoolportal/models/exam"

	"github.com/gofiber/fiber/v2"
)

// The single authoritative bounds on paper size. The legacy system carried a
// looser cap in its schema than in its UI; here the validator is the only
// place either limit lives.
const (
	MaxPaperItems = 100
	MaxPaperMarks = 180
)

// ItemPayload is one MCQ reference in submission order.
type ItemPayload struct {
	MCQID uint `json:"mcq_id"`
	Marks int  `json:"marks"`
}

// PaperPayload is the parsed create/generate body.
type PaperPayload struct {
	Title               string        `json:"title"`
	Type                string        `json:"type"`
	StandardID          uint          `json:"standard_id"`
	SubjectIDs          []uint        `json:"subject_ids"`
	IncludeAnswers      bool          `json:"include_answers"`
	IncludeExplanations bool          `json:"include_explanations"`
	Items               []ItemPayload `json:"items"`
	ParentPaperID       *uint         `json:"parent_paper_id,omitempty"`
}

func validPaperType(t string) bool {
	switch t {
	case examModels.PaperStaffDraft, examModels.PaperStudentDraft, examModels.PaperTemplate, examModels.PaperGenerated:
		return true
	}
	return false
}

// CreatePaper validates a paper assembly request.
func CreatePaper() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PaperPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Type == "" {
			reqData.Type = examModels.PaperStaffDraft
		} else if !validPaperType(reqData.Type) {
			errors["type"] = "Invalid paper type!"
		}
		if reqData.StandardID == 0 {
			errors["standard_id"] = "Standard is required!"
		}
		if len(reqData.Items) == 0 {
			errors["items"] = "At least one question is required!"
		} else if len(reqData.Items) > MaxPaperItems {
			errors["items"] = fmt.Sprintf("A paper cannot have more than %d questions!", MaxPaperItems)
		}

		totalMarks := 0
		for i := range reqData.Items {
			if reqData.Items[i].MCQID == 0 {
				errors["items"] = "Every item needs an mcq_id!"
				break
			}
			// Per-item marks default to 1 when not supplied.
			if reqData.Items[i].Marks <= 0 {
				reqData.Items[i].Marks = 1
			}
			totalMarks += reqData.Items[i].Marks
		}
		if totalMarks > MaxPaperMarks {
			errors["total_marks"] = fmt.Sprintf("Total marks cannot exceed %d!", MaxPaperMarks)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaper", reqData)
		return c.Next()
	}
}
