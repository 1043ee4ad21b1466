package paperController

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	examModels "schoolportal/models/exam"
	"schoolportal/utils"
	paperValidator "schoolportal/validators/paper"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// resolveCreator maps the polymorphic (type, id) creator pair to a display
// name and email. Every creator tag must be handled; an unknown tag is a
// data error, never a silent fallthrough.
func resolveCreator(createdByType string, createdByID uint) (name, email string, err error) {
	db := database.Database.Db
	switch createdByType {
	case examModels.CreatorStudent:
		var s models.Student
		if err := db.Where("id = ?", createdByID).First(&s).Error; err != nil {
			return "", "", err
		}
		return s.Name, s.Email, nil
	case examModels.CreatorStaff:
		var st models.StaffAdmin
		if err := db.Where("id = ?", createdByID).First(&st).Error; err != nil {
			return "", "", err
		}
		return st.Name, st.Email, nil
	default:
		return "", "", errors.New("unknown creator type: " + createdByType)
	}
}

func creatorFromContext(c *fiber.Ctx) (string, uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return "", 0, false
	}
	userType, ok := c.Locals("userType").(string)
	if !ok {
		return "", 0, false
	}
	return userType, userID, true
}

func buildPaper(c *fiber.Ctx, payload *paperValidator.PaperPayload) (*examModels.Paper, error) {
	userType, userID, ok := creatorFromContext(c)
	if !ok {
		return nil, errors.New("unauthorized")
	}

	// Students may only hold drafts of their own.
	if userType == examModels.CreatorStudent &&
		payload.Type != examModels.PaperStudentDraft && payload.Type != examModels.PaperGenerated {
		return nil, errors.New("students can only create student drafts")
	}

	subjectIDs, err := json.Marshal(payload.SubjectIDs)
	if err != nil {
		return nil, err
	}

	paper := &examModels.Paper{
		Title:               payload.Title,
		Type:                payload.Type,
		StandardID:          payload.StandardID,
		SubjectIDs:          datatypes.JSON(subjectIDs),
		IncludeAnswers:      payload.IncludeAnswers,
		IncludeExplanations: payload.IncludeExplanations,
		CreatedByType:       userType,
		CreatedByID:         userID,
		ParentPaperID:       payload.ParentPaperID,
	}

	// Items keep submission order verbatim; total marks is the sum of
	// per-item marks (item count when the caller left marks defaulted).
	totalMarks := 0
	for i, item := range payload.Items {
		paper.Items = append(paper.Items, examModels.PaperItem{
			MCQID:      item.MCQID,
			Marks:      item.Marks,
			OrderIndex: i,
		})
		totalMarks += item.Marks
	}
	paper.TotalMarks = totalMarks

	return paper, nil
}

// CreatePaper assembles a paper from an ordered MCQ selection.
func CreatePaper(c *fiber.Ctx) error {
	payload, ok := c.Locals("validatedPaper").(*paperValidator.PaperPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	paper, err := buildPaper(c, payload)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if err := database.Database.Db.Create(paper).Error; err != nil {
		log.Printf("Error creating paper: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create paper!", nil)
	}

	utils.RecordAudit(paper.CreatedByType, paper.CreatedByID, "CREATE", "Paper", paper.ID, paper.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Paper created successfully!", paper)
}

// GeneratePaper assembles a paper, renders its PDF immediately and stores the
// rendition key on the paper. The paper is persisted first; a render failure
// leaves the paper without a PDF and reports 502.
func GeneratePaper(c *fiber.Ctx) error {
	payload, ok := c.Locals("validatedPaper").(*paperValidator.PaperPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payload.Type = examModels.PaperGenerated
	paper, err := buildPaper(c, payload)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	db := database.Database.Db
	if err := db.Create(paper).Error; err != nil {
		log.Printf("Error creating paper: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create paper!", nil)
	}

	renderData, err := renderDataForPaper(paper, paper.IncludeAnswers, paper.IncludeExplanations)
	if err != nil {
		log.Printf("Error preparing paper %d for render: %v", paper.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to prepare paper for rendering!", nil)
	}

	pdfBytes, err := utils.RenderPaperPDF(c.Context(), *renderData)
	if err != nil {
		log.Printf("Error rendering paper %d: %v", paper.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to render paper PDF!", nil)
	}

	key, err := utils.StoreFile(pdfBytes, "papers", ".pdf")
	if err != nil {
		log.Printf("Error storing paper %d PDF: %v", paper.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store paper PDF!", nil)
	}

	now := time.Now()
	paper.GeneratedPdfKey = key
	paper.GeneratedPdfAt = &now
	if err := db.Model(paper).Updates(map[string]interface{}{
		"generated_pdf_key": key,
		"generated_pdf_at":  now,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save paper PDF reference!", nil)
	}

	utils.RecordAudit(paper.CreatedByType, paper.CreatedByID, "CREATE", "Paper", paper.ID, "generated with PDF")

	if name, email, err := resolveCreator(paper.CreatedByType, paper.CreatedByID); err == nil && email != "" {
		utils.SendPaperReadyEmail(email, name, paper.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Paper generated successfully!", paper)
}

// GetPaperPDF renders (or re-renders) a paper and streams the PDF. The
// answers flag on the query string overrides the stored visibility flags;
// students may only override it on papers they created themselves.
func GetPaperPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid paper id!", nil)
	}

	db := database.Database.Db
	var paper examModels.Paper
	if err := db.Preload("Items", orderedItems).Where("id = ? AND is_deleted = ?", id, false).First(&paper).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Paper not found!", nil)
	}

	includeAnswers := paper.IncludeAnswers
	if v := c.Query("answers"); v != "" {
		userType, userID, ok := creatorFromContext(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		if userType == examModels.CreatorStudent &&
			(paper.CreatedByType != examModels.CreatorStudent || paper.CreatedByID != userID) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only change answer visibility on your own papers!", nil)
		}
		includeAnswers = v == "true"
	}

	renderData, err := renderDataForPaper(&paper, includeAnswers, paper.IncludeExplanations)
	if err != nil {
		log.Printf("Error preparing paper %d for render: %v", paper.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to prepare paper for rendering!", nil)
	}

	pdfBytes, err := utils.RenderPaperPDF(c.Context(), *renderData)
	if err != nil {
		log.Printf("Error rendering paper %d: %v", paper.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to render paper PDF!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="paper.pdf"`)
	return c.Send(pdfBytes)
}

// renderDataForPaper loads the paper's MCQs in item order and resolves the
// display names the PDF header needs.
func renderDataForPaper(paper *examModels.Paper, includeAnswers, includeExplanations bool) (*utils.PaperRenderData, error) {
	db := database.Database.Db

	items := paper.Items
	if len(items) == 0 {
		if err := db.Where("paper_id = ?", paper.ID).Order("order_index asc").Find(&items).Error; err != nil {
			return nil, err
		}
	}

	mcqIDs := make([]uint, 0, len(items))
	for _, item := range items {
		mcqIDs = append(mcqIDs, item.MCQID)
	}

	var mcqs []examModels.MCQ
	if err := db.Preload("Options", orderedOptions).Where("id IN ?", mcqIDs).Find(&mcqs).Error; err != nil {
		return nil, err
	}
	mcqByID := make(map[uint]examModels.MCQ, len(mcqs))
	for _, m := range mcqs {
		mcqByID[m.ID] = m
	}

	data := utils.PaperRenderData{
		Heading:             paper.Title,
		TotalMarks:          paper.TotalMarks,
		IncludeAnswers:      includeAnswers,
		IncludeExplanations: includeExplanations,
	}

	for _, item := range items {
		mcq, ok := mcqByID[item.MCQID]
		if !ok {
			// Stale reference (hard-deleted MCQ); skip rather than fail the render.
			continue
		}
		data.Items = append(data.Items, utils.PaperRenderItem{MCQ: mcq, Marks: item.Marks})
	}

	var standard models.Standard
	if err := db.Where("id = ?", paper.StandardID).First(&standard).Error; err == nil {
		data.StandardName = standard.Name
	}

	var subjectIDs []uint
	if len(paper.SubjectIDs) > 0 {
		if err := json.Unmarshal(paper.SubjectIDs, &subjectIDs); err == nil && len(subjectIDs) > 0 {
			var subjects []models.Subject
			if err := db.Where("id IN ?", subjectIDs).Find(&subjects).Error; err == nil {
				for _, s := range subjects {
					data.SubjectNames = append(data.SubjectNames, s.Name)
				}
			}
		}
	}

	return &data, nil
}

// ListPapers lists papers; students see their own, staff see all.
func ListPapers(c *fiber.Ctx) error {
	userType, userID, ok := creatorFromContext(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	query := db.Model(&examModels.Paper{}).Where("is_deleted = ?", false)

	if userType == examModels.CreatorStudent {
		query = query.Where("created_by_type = ? AND created_by_id = ?", examModels.CreatorStudent, userID)
	}
	if paperType := c.Query("type"); paperType != "" {
		query = query.Where("type = ?", paperType)
	}
	if standardID := c.QueryInt("standardId"); standardID > 0 {
		query = query.Where("standard_id = ?", standardID)
	}

	var total int64
	query.Count(&total)

	offset, limit := utils.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 20))

	var papers []examModels.Paper
	if err := query.Preload("Items", orderedItems).
		Order("id desc").Offset(offset).Limit(limit).Find(&papers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch papers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Papers fetched successfully!", fiber.Map{
		"papers": papers,
		"total":  total,
	})
}

// GetPaper fetches one paper with items in order
func GetPaper(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid paper id!", nil)
	}

	var paper examModels.Paper
	if err := database.Database.Db.Preload("Items", orderedItems).
		Where("id = ? AND is_deleted = ?", id, false).First(&paper).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Paper not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Paper fetched successfully!", paper)
}

// DeletePaper soft-deletes a paper. Students may only delete their own.
func DeletePaper(c *fiber.Ctx) error {
	userType, userID, ok := creatorFromContext(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid paper id!", nil)
	}

	db := database.Database.Db
	var paper examModels.Paper
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&paper).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Paper not found!", nil)
	}

	if userType == examModels.CreatorStudent &&
		(paper.CreatedByType != examModels.CreatorStudent || paper.CreatedByID != userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own papers!", nil)
	}

	if err := db.Model(&paper).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete paper!", nil)
	}

	utils.RecordAudit(userType, userID, "DELETE", "Paper", paper.ID, paper.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Paper deleted successfully!", nil)
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc")
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc")
}
