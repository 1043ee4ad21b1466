package subjectController

import (
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateSubject creates a new subject under a standard
func CreateSubject(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedSubject").(*struct {
		Name       string `json:"name"`
		StandardID uint   `json:"standard_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var standard models.Standard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.StandardID, false).First(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Standard not found!", nil)
	}

	subject := models.Subject{Name: reqData.Name, StandardID: reqData.StandardID, IsActive: true}
	if err := database.Database.Db.Create(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	utils.RecordAudit("STAFF", userID, "CREATE", "Subject", subject.ID, subject.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully!", subject)
}

// ListSubjects lists subjects, optionally filtered by standardId.
// includeDisabled=true is honored for admins.
func ListSubjects(c *fiber.Ctx) error {
	db := database.Database.Db
	role, _ := c.Locals("role").(string)

	query := db.Where("is_deleted = ?", false)
	if !(c.Query("includeDisabled") == "true" && role == "ADMIN") {
		query = query.Where("is_active = ?", true)
	}
	if standardID := c.QueryInt("standardId"); standardID > 0 {
		query = query.Where("standard_id = ?", standardID)
	}

	var subjects []models.Subject
	if err := query.Order("name asc").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", subjects)
}

// UpdateSubject renames a subject or moves it to another standard
func UpdateSubject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	reqData, ok := c.Locals("validatedSubject").(*struct {
		Name       string `json:"name"`
		StandardID uint   `json:"standard_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var subject models.Subject
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	subject.Name = reqData.Name
	if reqData.StandardID > 0 {
		subject.StandardID = reqData.StandardID
	}
	if err := database.Database.Db.Save(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject updated successfully!", subject)
}

// ToggleSubject flips the active flag
func ToggleSubject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	var subject models.Subject
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	subject.IsActive = !subject.IsActive
	if err := database.Database.Db.Save(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject toggled successfully!", subject)
}

// DeleteSubject soft-deletes a subject
func DeleteSubject(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	var subject models.Subject
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	subject.IsDeleted = true
	if err := database.Database.Db.Save(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete subject!", nil)
	}

	utils.RecordAudit("STAFF", userID, "DELETE", "Subject", subject.ID, subject.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject deleted successfully!", nil)
}
