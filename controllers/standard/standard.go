package standardController

import (
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateStandard creates a new standard (ADMIN only, enforced at the router)
func CreateStandard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedName").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	standard := models.Standard{Name: reqData.Name, IsActive: true}
	if err := database.Database.Db.Create(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create standard!", nil)
	}

	utils.RecordAudit("STAFF", userID, "CREATE", "Standard", standard.ID, standard.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Standard created successfully!", standard)
}

// ListStandards lists standards. includeDisabled=true additionally returns
// inactive entries and is honored for admins only.
func ListStandards(c *fiber.Ctx) error {
	db := database.Database.Db
	role, _ := c.Locals("role").(string)

	query := db.Where("is_deleted = ?", false)
	if !(c.Query("includeDisabled") == "true" && role == "ADMIN") {
		query = query.Where("is_active = ?", true)
	}

	var standards []models.Standard
	if err := query.Order("name asc").Find(&standards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch standards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Standards fetched successfully!", standards)
}

// UpdateStandard renames a standard
func UpdateStandard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid standard id!", nil)
	}

	reqData, ok := c.Locals("validatedName").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var standard models.Standard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Standard not found!", nil)
	}

	standard.Name = reqData.Name
	if err := database.Database.Db.Save(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update standard!", nil)
	}

	utils.RecordAudit("STAFF", userID, "UPDATE", "Standard", standard.ID, standard.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Standard updated successfully!", standard)
}

// ToggleStandard flips the active flag
func ToggleStandard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid standard id!", nil)
	}

	var standard models.Standard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Standard not found!", nil)
	}

	standard.IsActive = !standard.IsActive
	if err := database.Database.Db.Save(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update standard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Standard toggled successfully!", standard)
}

// DeleteStandard soft-deletes a standard
func DeleteStandard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid standard id!", nil)
	}

	var standard models.Standard
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Standard not found!", nil)
	}

	standard.IsDeleted = true
	if err := database.Database.Db.Save(&standard).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete standard!", nil)
	}

	utils.RecordAudit("STAFF", userID, "DELETE", "Standard", standard.ID, standard.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Standard deleted successfully!", nil)
}
