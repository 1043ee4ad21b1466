package staffController

import (
	"log"

	"schoolportal/config"
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// CreateStaff registers a staff or admin account (ADMIN only)
func CreateStaff(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedStaff").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.StaffAdmin{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	staff := models.StaffAdmin{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Password: string(hashedPassword),
		Role:     reqData.Role,
		IsActive: true,
	}

	if err := db.Create(&staff).Error; err != nil {
		log.Printf("Error saving staff to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register staff!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "CREATE", "StaffAdmin", staff.ID, staff.Name)
	utils.SendWelcomeEmail(staff.Email, staff.Name)

	staff.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Staff registered successfully.", staff)
}

// ListStaff lists staff accounts (ADMIN only)
func ListStaff(c *fiber.Ctx) error {
	db := database.Database.Db

	var staff []models.StaffAdmin
	if err := db.Where("is_deleted = ?", false).Order("name asc").Find(&staff).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch staff!", nil)
	}

	for i := range staff {
		staff[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Staff fetched successfully!", staff)
}

// UpdateStaff updates a staff member's details (ADMIN only)
func UpdateStaff(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid staff id!", nil)
	}

	reqData, ok := c.Locals("validatedStaffUpdate").(*struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
		Role   string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var staff models.StaffAdmin
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&staff).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Staff not found!", nil)
	}

	if reqData.Name != "" {
		staff.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		staff.Mobile = reqData.Mobile
	}
	if reqData.Role != "" {
		staff.Role = reqData.Role
	}

	if err := db.Save(&staff).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update staff!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "UPDATE", "StaffAdmin", staff.ID, staff.Name)

	staff.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Staff updated successfully!", staff)
}

// DeleteStaff soft-deletes a staff account (ADMIN only)
func DeleteStaff(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid staff id!", nil)
	}

	db := database.Database.Db
	var staff models.StaffAdmin
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&staff).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Staff not found!", nil)
	}

	if err := db.Model(&staff).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete staff!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "DELETE", "StaffAdmin", staff.ID, staff.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Staff deleted successfully!", nil)
}
