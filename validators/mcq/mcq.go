package mcqValidator

import (
	"encoding/json"
	"strconv"
	"strings"

	"schoolportal/middleware"
	examModels "schoolportal/models/exam"

	"github.com/gofiber/fiber/v2"
)

// OptionPayload is one option as submitted in the multipart "options" field.
// Images ride alongside as file parts named option_image_<index>.
type OptionPayload struct {
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// MCQPayload is the parsed multipart body for create/update.
type MCQPayload struct {
	StandardID   uint
	SubjectID    uint
	CategoryID   uint
	QuestionText string
	Language     string
	Font         string
	Explanation  string
	Options      []OptionPayload
}

func parseUintField(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.FormValue(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// CreateMCQ validates the multipart MCQ payload: required references, a
// non-empty question, at least two options with exactly one flagged correct.
// The storage layer re-checks the option invariant on save.
func CreateMCQ() fiber.Handler {
	return validateMCQ(true)
}

// UpdateMCQ validates the same payload for updates.
func UpdateMCQ() fiber.Handler {
	return validateMCQ(false)
}

func validateMCQ(requireRefs bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := &MCQPayload{
			StandardID:   parseUintField(c, "standard_id"),
			SubjectID:    parseUintField(c, "subject_id"),
			CategoryID:   parseUintField(c, "category_id"),
			QuestionText: c.FormValue("question_text"),
			Language:     c.FormValue("language", "en"),
			Font:         c.FormValue("font"),
			Explanation:  c.FormValue("explanation"),
		}

		errors := make(map[string]string)

		if optionsJSON := c.FormValue("options"); optionsJSON != "" {
			if err := json.Unmarshal([]byte(optionsJSON), &payload.Options); err != nil {
				errors["options"] = "Options must be a valid JSON array!"
			}
		}

		if requireRefs {
			if payload.StandardID == 0 {
				errors["standard_id"] = "Standard is required!"
			}
			if payload.SubjectID == 0 {
				errors["subject_id"] = "Subject is required!"
			}
		}
		if strings.TrimSpace(payload.QuestionText) == "" {
			errors["question_text"] = "Question text is required!"
		}

		// Options are mandatory on create; on update they are only checked
		// when the payload carries them.
		if _, parseFailed := errors["options"]; !parseFailed && (requireRefs || len(payload.Options) > 0) {
			opts := make([]examModels.MCQOption, len(payload.Options))
			for i, o := range payload.Options {
				opts[i] = examModels.MCQOption{OptionText: o.OptionText, IsCorrect: o.IsCorrect}
			}
			if err := examModels.ValidateOptions(opts); err != nil {
				errors["options"] = err.Error()
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMCQ", payload)
		return c.Next()
	}
}
