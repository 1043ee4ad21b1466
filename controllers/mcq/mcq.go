package mcqController

import (
	"fmt"
	"log"

	"schoolportal/database"
	"schoolportal/middleware"
	examModels "schoolportal/models/exam"
	"schoolportal/utils"
	mcqValidator "schoolportal/validators/mcq"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateMCQ stores a new multiple-choice question. Question and option
// images arrive as multipart file parts (question_image, option_image_<i>).
func CreateMCQ(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("validatedMCQ").(*mcqValidator.MCQPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	mcq := examModels.MCQ{
		StandardID:    payload.StandardID,
		SubjectID:     payload.SubjectID,
		CategoryID:    payload.CategoryID,
		QuestionText:  payload.QuestionText,
		Language:      payload.Language,
		Font:          payload.Font,
		Explanation:   payload.Explanation,
		CreatedByType: examModels.CreatorStaff,
		CreatedByID:   userID,
	}

	if file, err := c.FormFile("question_image"); err == nil {
		key, err := utils.SaveUploadedFile(file, "mcq")
		if err != nil {
			log.Printf("Error saving question image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save question image!", nil)
		}
		mcq.QuestionImage = key
	}

	for i, opt := range payload.Options {
		option := examModels.MCQOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
		if file, err := c.FormFile(fmt.Sprintf("option_image_%d", i)); err == nil {
			key, err := utils.SaveUploadedFile(file, "mcq")
			if err != nil {
				log.Printf("Error saving option image: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save option image!", nil)
			}
			option.Image = key
		}
		mcq.Options = append(mcq.Options, option)
	}

	if err := database.Database.Db.Create(&mcq).Error; err != nil {
		log.Printf("Error creating MCQ: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create MCQ!", nil)
	}

	utils.RecordAudit(examModels.CreatorStaff, userID, "CREATE", "MCQ", mcq.ID, "")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "MCQ created successfully!", mcq)
}

// UpdateMCQ merges changes into an existing MCQ. Options keep their stored
// image unless a replacement file part is uploaded for that index; replaced
// images are removed from the file store.
func UpdateMCQ(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid MCQ id!", nil)
	}

	payload, ok := c.Locals("validatedMCQ").(*mcqValidator.MCQPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var mcq examModels.MCQ
	if err := db.Preload("Options", orderedOptions).Where("id = ? AND is_deleted = ?", id, false).First(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "MCQ not found!", nil)
	}

	mcq.QuestionText = payload.QuestionText
	if payload.StandardID > 0 {
		mcq.StandardID = payload.StandardID
	}
	if payload.SubjectID > 0 {
		mcq.SubjectID = payload.SubjectID
	}
	if payload.CategoryID > 0 {
		mcq.CategoryID = payload.CategoryID
	}
	if payload.Language != "" {
		mcq.Language = payload.Language
	}
	mcq.Font = payload.Font
	mcq.Explanation = payload.Explanation

	if file, err := c.FormFile("question_image"); err == nil {
		key, err := utils.SaveUploadedFile(file, "mcq")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save question image!", nil)
		}
		if mcq.QuestionImage != "" {
			if err := utils.DeleteFile(mcq.QuestionImage); err != nil {
				log.Printf("Error deleting replaced question image %s: %v", mcq.QuestionImage, err)
			}
		}
		mcq.QuestionImage = key
	}

	if len(payload.Options) > 0 {
		oldOptions := mcq.Options
		newOptions := make([]examModels.MCQOption, len(payload.Options))
		for i, opt := range payload.Options {
			newOptions[i] = examModels.MCQOption{
				MCQID:      mcq.ID,
				OptionText: opt.OptionText,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: i,
			}
			// Merge: an index without an uploaded replacement keeps its
			// previous image.
			if i < len(oldOptions) {
				newOptions[i].Image = oldOptions[i].Image
			}
			if file, err := c.FormFile(fmt.Sprintf("option_image_%d", i)); err == nil {
				key, err := utils.SaveUploadedFile(file, "mcq")
				if err != nil {
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save option image!", nil)
				}
				if i < len(oldOptions) && oldOptions[i].Image != "" {
					if err := utils.DeleteFile(oldOptions[i].Image); err != nil {
						log.Printf("Error deleting replaced option image %s: %v", oldOptions[i].Image, err)
					}
				}
				newOptions[i].Image = key
			}
		}

		if err := examModels.ValidateOptions(newOptions); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		if err := db.Unscoped().Where("mcq_id = ?", mcq.ID).Delete(&examModels.MCQOption{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update MCQ options!", nil)
		}
		mcq.Options = newOptions
	}

	if err := db.Save(&mcq).Error; err != nil {
		log.Printf("Error updating MCQ: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update MCQ!", nil)
	}

	utils.RecordAudit(examModels.CreatorStaff, userID, "UPDATE", "MCQ", mcq.ID, "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ updated successfully!", mcq)
}

// ListMCQs lists questions filtered by standard/subject/category, paginated.
// includeDisabled=true additionally returns soft-deleted rows (admin only).
func ListMCQs(c *fiber.Ctx) error {
	db := database.Database.Db
	role, _ := c.Locals("role").(string)

	query := db.Model(&examModels.MCQ{})
	if !(c.Query("includeDisabled") == "true" && role == "ADMIN") {
		query = query.Where("is_deleted = ?", false)
	}
	if standardID := c.QueryInt("standardId"); standardID > 0 {
		query = query.Where("standard_id = ?", standardID)
	}
	if subjectID := c.QueryInt("subjectId"); subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	if categoryID := c.QueryInt("categoryId"); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	query.Count(&total)

	offset, limit := utils.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 20))

	var mcqs []examModels.MCQ
	if err := query.Preload("Options", orderedOptions).
		Order("id desc").Offset(offset).Limit(limit).Find(&mcqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch MCQs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQs fetched successfully!", fiber.Map{
		"mcqs":  mcqs,
		"total": total,
	})
}

// GetMCQ fetches one question with its options
func GetMCQ(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid MCQ id!", nil)
	}

	var mcq examModels.MCQ
	if err := database.Database.Db.Preload("Options", orderedOptions).
		Where("id = ? AND is_deleted = ?", id, false).First(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "MCQ not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ fetched successfully!", mcq)
}

// DeleteMCQ soft-deletes a question (default path)
func DeleteMCQ(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid MCQ id!", nil)
	}

	db := database.Database.Db
	var mcq examModels.MCQ
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "MCQ not found!", nil)
	}

	if err := db.Model(&mcq).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete MCQ!", nil)
	}

	utils.RecordAudit(examModels.CreatorStaff, userID, "DELETE", "MCQ", mcq.ID, "soft delete")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ deleted successfully!", nil)
}

// HardDeleteMCQ physically removes a question, its options and stored images
func HardDeleteMCQ(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid MCQ id!", nil)
	}

	db := database.Database.Db
	var mcq examModels.MCQ
	if err := db.Preload("Options").Where("id = ?", id).First(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "MCQ not found!", nil)
	}

	if mcq.QuestionImage != "" {
		if err := utils.DeleteFile(mcq.QuestionImage); err != nil {
			log.Printf("Error deleting question image %s: %v", mcq.QuestionImage, err)
		}
	}
	for _, opt := range mcq.Options {
		if opt.Image != "" {
			if err := utils.DeleteFile(opt.Image); err != nil {
				log.Printf("Error deleting option image %s: %v", opt.Image, err)
			}
		}
	}

	if err := db.Unscoped().Where("mcq_id = ?", mcq.ID).Delete(&examModels.MCQOption{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete MCQ options!", nil)
	}
	if err := db.Unscoped().Delete(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete MCQ!", nil)
	}

	utils.RecordAudit(examModels.CreatorStaff, userID, "DELETE", "MCQ", mcq.ID, "hard delete")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ permanently deleted!", nil)
}

// orderedOptions keeps option preloads in presentation order.
func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc")
}
