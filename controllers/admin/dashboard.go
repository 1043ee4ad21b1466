package adminController

import (
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	examModels "schoolportal/models/exam"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns entity counts for the admin landing page
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var students, staff, mcqs, papers, attempts, materials int64
	db.Model(&models.Student{}).Where("is_deleted = ?", false).Count(&students)
	db.Model(&models.StaffAdmin{}).Where("is_deleted = ?", false).Count(&staff)
	db.Model(&examModels.MCQ{}).Where("is_deleted = ?", false).Count(&mcqs)
	db.Model(&examModels.Paper{}).Where("is_deleted = ?", false).Count(&papers)
	db.Model(&examModels.ExamAttempt{}).Count(&attempts)
	db.Model(&models.Material{}).Where("is_deleted = ?", false).Count(&materials)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"students":  students,
		"staff":     staff,
		"mcqs":      mcqs,
		"papers":    papers,
		"attempts":  attempts,
		"materials": materials,
	})
}

// ListAuditLogs returns audit rows, newest first, paginated
func ListAuditLogs(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.AuditLog{})
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var total int64
	query.Count(&total)

	offset, limit := utils.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 50))

	var logs []models.AuditLog
	if err := query.Order("id desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit logs fetched successfully!", fiber.Map{
		"logs":  logs,
		"total": total,
	})
}
