package examController

import (
	"log"
	"time"

	"schoolportal/database"
	"schoolportal/middleware"
	examModels "schoolportal/models/exam"
	"schoolportal/utils"
	examValidator "schoolportal/validators/exam"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// marksPerCorrectAnswer is the flat award per correct response. The legacy
// grader ignored the paper's per-item marks; that behavior is kept.
const marksPerCorrectAnswer = 1

// StartAttempt opens an exam attempt for the authenticated student. Starting
// is idempotent: if an open attempt exists for this (student, paper) pair it
// is returned as-is. The open_slot unique index makes concurrent starts
// collide at the database instead of creating duplicates.
func StartAttempt(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedStart").(*struct {
		PaperID uint `json:"paper_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var paper examModels.Paper
	if err := db.Where("id = ? AND is_deleted = ?", reqData.PaperID, false).First(&paper).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Paper not found!", nil)
	}

	// Fast path: reuse an open attempt.
	var existing examModels.ExamAttempt
	if err := db.Where("student_id = ? AND paper_id = ? AND open_slot = ?",
		studentID, paper.ID, examModels.OpenSlotValue).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt already in progress.", existing)
	}

	slot := examModels.OpenSlotValue
	attempt := examModels.ExamAttempt{
		StudentID:  studentID,
		PaperID:    paper.ID,
		OpenSlot:   &slot,
		StandardID: paper.StandardID,
		SubjectIDs: paper.SubjectIDs,
		StartedAt:  time.Now(),
	}

	if err := db.Create(&attempt).Error; err != nil {
		// A concurrent start won the unique index; return the winner's row.
		if err2 := db.Where("student_id = ? AND paper_id = ? AND open_slot = ?",
			studentID, paper.ID, examModels.OpenSlotValue).First(&existing).Error; err2 == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt already in progress.", existing)
		}
		log.Printf("Error creating attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started.", attempt)
}

// SubmitAttempt grades the submitted responses and seals the attempt.
// Submitting an already-submitted attempt is rejected. Responses referencing
// unknown MCQs are scored incorrect with 0 marks rather than failing, to
// tolerate stale client state.
func SubmitAttempt(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	reqData, ok := c.Locals("validatedSubmit").(*examValidator.SubmitPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var attempt examModels.ExamAttempt
	if err := db.Where("id = ?", attemptID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}
	if attempt.StudentID != studentID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This attempt belongs to another student!", nil)
	}
	if attempt.IsSubmitted() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt has already been submitted!", nil)
	}

	responses, total, max, err := gradeResponses(attempt.ID, attempt.PaperID, reqData.Responses)
	if err != nil {
		log.Printf("Error grading attempt %d: %v", attempt.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade attempt!", nil)
	}

	now := time.Now()
	attempt.SubmittedAt = &now
	attempt.OpenSlot = nil
	attempt.ScoreTotal = total
	attempt.ScoreMax = max

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&examModels.ExamAttempt{}).Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"submitted_at": now,
				"open_slot":    nil,
				"score_total":  total,
				"score_max":    max,
			}).Error; err != nil {
			return err
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error submitting attempt %d: %v", attempt.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	attempt.Responses = responses
	utils.RecordAudit(examModels.CreatorStudent, studentID, "SUBMIT", "ExamAttempt", attempt.ID, "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted.", attempt)
}

// gradeResponses scores each response against the MCQ's correct option.
// Max counts every answerable question on the paper, not just the answered
// ones, so an empty submission scores 0 of N. At most one response per
// question is graded; repeats of an mcq_id are dropped, so total can never
// exceed max.
func gradeResponses(attemptID, paperID uint, submitted []examValidator.ResponsePayload) ([]examModels.AttemptResponse, int, int, error) {
	db := database.Database.Db

	var items []examModels.PaperItem
	if err := db.Where("paper_id = ?", paperID).Order("order_index asc").Find(&items).Error; err != nil {
		return nil, 0, 0, err
	}

	mcqIDs := make([]uint, 0, len(items))
	for _, item := range items {
		mcqIDs = append(mcqIDs, item.MCQID)
	}

	var mcqs []examModels.MCQ
	if len(mcqIDs) > 0 {
		if err := db.Preload("Options").Where("id IN ?", mcqIDs).Find(&mcqs).Error; err != nil {
			return nil, 0, 0, err
		}
	}
	correctIndexByMCQ := make(map[uint]int, len(mcqs))
	for _, m := range mcqs {
		correctIndexByMCQ[m.ID] = m.CorrectIndex()
	}

	max := len(items) * marksPerCorrectAnswer

	responses := make([]examModels.AttemptResponse, 0, len(submitted))
	seen := make(map[uint]bool, len(submitted))
	total := 0
	for _, r := range submitted {
		// First answer per question wins; later repeats are discarded.
		if seen[r.MCQID] {
			continue
		}
		seen[r.MCQID] = true
		resp := examModels.AttemptResponse{
			AttemptID:     attemptID,
			MCQID:         r.MCQID,
			SelectedIndex: r.SelectedIndex,
		}
		// Unknown or off-paper MCQ ids score 0; CorrectIndex of -1 (no
		// correct option on record) can never match a submitted index.
		if correctIdx, known := correctIndexByMCQ[r.MCQID]; known && correctIdx >= 0 && r.SelectedIndex == correctIdx {
			resp.Correct = true
			resp.MarksAwarded = marksPerCorrectAnswer
			total += marksPerCorrectAnswer
		}
		responses = append(responses, resp)
	}

	return responses, total, max, nil
}

// ListAttempts lists attempts: students see their own, staff can filter by
// student or paper.
func ListAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	db := database.Database.Db
	query := db.Model(&examModels.ExamAttempt{})

	if userType == examModels.CreatorStudent {
		query = query.Where("student_id = ?", userID)
	} else {
		if studentID := c.QueryInt("studentId"); studentID > 0 {
			query = query.Where("student_id = ?", studentID)
		}
	}
	if paperID := c.QueryInt("paperId"); paperID > 0 {
		query = query.Where("paper_id = ?", paperID)
	}

	var total int64
	query.Count(&total)

	offset, limit := utils.Pagination(c.QueryInt("page", 1), c.QueryInt("limit", 20))

	var attempts []examModels.ExamAttempt
	if err := query.Order("id desc").Offset(offset).Limit(limit).Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    total,
	})
}

// GetAttempt fetches one attempt with its graded responses
func GetAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	var attempt examModels.ExamAttempt
	if err := database.Database.Db.Preload("Responses").Where("id = ?", id).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	if userType == examModels.CreatorStudent && attempt.StudentID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This attempt belongs to another student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}
