package studentController

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

// CreateStudent registers a new student account (staff/admin only)
func CreateStudent(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedStudent").(*struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Mobile     string `json:"mobile"`
		Password   string `json:"password"`
		StandardID uint   `json:"standard_id"`
		SchoolName string `json:"school_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.Student{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	student := models.Student{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Mobile:     reqData.Mobile,
		Password:   string(hashedPassword),
		StandardID: reqData.StandardID,
		SchoolName: reqData.SchoolName,
		IsActive:   true,
	}

	if err := db.Create(&student).Error; err != nil {
		log.Printf("Error saving student to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register student!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "CREATE", "Student", student.ID, student.Name)
	utils.SendWelcomeEmail(student.Email, student.Name)

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student registered successfully.", student)
}

// ListStudents lists students, filterable by standard
func ListStudents(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if standardID := c.QueryInt("standardId"); standardID > 0 {
		query = query.Where("standard_id = ?", standardID)
	}

	var total int64
	query.Model(&models.Student{}).Count(&total)

	offset, limit := utils.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 20))

	var students []models.Student
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": students,
		"total":    total,
	})
}

// GetStudent fetches one student
func GetStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student fetched successfully!", student)
}

// UpdateStudent updates a student's details (staff/admin)
func UpdateStudent(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	reqData, ok := c.Locals("validatedStudentUpdate").(*struct {
		Name       string `json:"name"`
		Mobile     string `json:"mobile"`
		StandardID uint   `json:"standard_id"`
		SchoolName string `json:"school_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var student models.Student
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if reqData.Name != "" {
		student.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		student.Mobile = reqData.Mobile
	}
	if reqData.StandardID > 0 {
		student.StandardID = reqData.StandardID
	}
	if reqData.SchoolName != "" {
		student.SchoolName = reqData.SchoolName
	}

	if err := db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "UPDATE", "Student", student.ID, student.Name)

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student updated successfully!", student)
}

// DeleteStudent soft-deletes a student account
func DeleteStudent(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	db := database.Database.Db
	var student models.Student
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if err := db.Model(&student).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete student!", nil)
	}

	utils.RecordAudit("STAFF", actorID, "DELETE", "Student", student.ID, student.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student deleted successfully!", nil)
}
