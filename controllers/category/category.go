package categoryController

import (
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory creates a new category
func CreateCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedName").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.Category{Name: reqData.Name, IsActive: true}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	utils.RecordAudit("STAFF", userID, "CREATE", "Category", category.ID, category.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// ListCategories lists categories; includeDisabled=true is honored for admins.
func ListCategories(c *fiber.Ctx) error {
	db := database.Database.Db
	role, _ := c.Locals("role").(string)

	query := db.Where("is_deleted = ?", false)
	if !(c.Query("includeDisabled") == "true" && role == "ADMIN") {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// UpdateCategory renames a category
func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	reqData, ok := c.Locals("validatedName").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.Name = reqData.Name
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// ToggleCategory flips the active flag
func ToggleCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.IsActive = !category.IsActive
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category toggled successfully!", category)
}

// DeleteCategory soft-deletes a category
func DeleteCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.IsDeleted = true
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	utils.RecordAudit("STAFF", userID, "DELETE", "Category", category.ID, category.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
