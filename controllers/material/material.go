package materialController

import (
	"log"
	"strconv"
	"strings"

	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateMaterial stores an uploaded study file with its tags. Multipart:
// file part "file" plus title/description/standard_id/subject_id/category_id.
func CreateMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
	}
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "A file is required!"})
	}

	key, err := utils.SaveUploadedFile(file, "materials")
	if err != nil {
		log.Printf("Error saving material file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	material := models.Material{
		Title:       title,
		Description: c.FormValue("description"),
		StandardID:  formUint(c, "standard_id"),
		SubjectID:   formUint(c, "subject_id"),
		CategoryID:  formUint(c, "category_id"),
		FileKey:     key,
		FileName:    file.Filename,
		UploadedBy:  userID,
		IsActive:    true,
	}

	if material.StandardID == 0 || material.SubjectID == 0 {
		_ = utils.DeleteFile(key)
		return middleware.ValidationErrorResponse(c, map[string]string{
			"standard_id": "Standard and subject are required!",
		})
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		log.Printf("Error creating material: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	utils.RecordAudit("STAFF", userID, "CREATE", "Material", material.ID, material.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material uploaded successfully!", material)
}

// ListMaterials lists materials filtered by standard/subject/category
func ListMaterials(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ? AND is_active = ?", false, true)
	if standardID := c.QueryInt("standardId"); standardID > 0 {
		query = query.Where("standard_id = ?", standardID)
	}
	if subjectID := c.QueryInt("subjectId"); subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	if categoryID := c.QueryInt("categoryId"); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var materials []models.Material
	if err := query.Order("id desc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

// DownloadMaterial streams a material's file
func DownloadMaterial(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material id!", nil)
	}

	var material models.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	data, err := utils.FetchFile(material.FileKey)
	if err != nil {
		log.Printf("Error reading material file %s: %v", material.FileKey, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}

	c.Set("Content-Disposition", `attachment; filename="`+material.FileName+`"`)
	return c.Send(data)
}

// DeleteMaterial soft-deletes a material; the stored file stays on disk
func DeleteMaterial(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material id!", nil)
	}

	db := database.Database.Db
	var material models.Material
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	if err := db.Model(&material).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	utils.RecordAudit("STAFF", userID, "DELETE", "Material", material.ID, material.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}

func formUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.FormValue(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
