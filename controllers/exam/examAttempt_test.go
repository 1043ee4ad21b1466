package examController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"schoolportal/config"
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	examModels "schoolportal/models/exam"
	examRoutes "schoolportal/routers/examRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupExamTest(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	examRoutes.SetupExamRoutes(app)
	return app
}

// seedPaper creates a student, three MCQs whose correct options sit at
// indexes 0, 1 and 2, and a paper containing them in order.
func seedPaper(t *testing.T) (models.Student, examModels.Paper, []examModels.MCQ) {
	db := database.Database.Db

	student := models.Student{Name: "Asha", Email: "asha@example.com", Mobile: "+919900112233", Password: "x", StandardID: 1}
	require.NoError(t, db.Create(&student).Error)

	mcqs := make([]examModels.MCQ, 0, 3)
	for q := 0; q < 3; q++ {
		mcq := examModels.MCQ{
			StandardID:    1,
			SubjectID:     1,
			QuestionText:  "question",
			CreatedByType: examModels.CreatorStaff,
			CreatedByID:   1,
		}
		for i := 0; i < 3; i++ {
			mcq.Options = append(mcq.Options, examModels.MCQOption{
				OptionText: "option",
				IsCorrect:  i == q,
				OrderIndex: i,
			})
		}
		require.NoError(t, db.Create(&mcq).Error)
		mcqs = append(mcqs, mcq)
	}

	paper := examModels.Paper{
		Title:         "Weekly Test",
		Type:          examModels.PaperStaffDraft,
		StandardID:    1,
		CreatedByType: examModels.CreatorStaff,
		CreatedByID:   1,
	}
	for i, mcq := range mcqs {
		paper.Items = append(paper.Items, examModels.PaperItem{MCQID: mcq.ID, Marks: 1, OrderIndex: i})
	}
	paper.TotalMarks = len(paper.Items)
	require.NoError(t, db.Create(&paper).Error)

	return student, paper, mcqs
}

func studentToken(t *testing.T, s models.Student) string {
	token, err := middleware.GenerateJWT(s.ID, "STUDENT", "STUDENT", s.Name, s.Email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAttemptLifecycle(t *testing.T) {
	app := setupExamTest(t)
	student, paper, mcqs := seedPaper(t)
	token := studentToken(t, student)

	resp, out := doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	attemptID := uint(out["data"].(map[string]interface{})["ID"].(float64))

	// Starting again while open returns the same attempt, not a new one.
	resp, out = doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, attemptID, uint(out["data"].(map[string]interface{})["ID"].(float64)))

	submission := fiber.Map{"responses": []fiber.Map{
		{"mcq_id": mcqs[0].ID, "selected_index": 0}, // correct
		{"mcq_id": mcqs[1].ID, "selected_index": 1}, // correct
		{"mcq_id": mcqs[2].ID, "selected_index": 0}, // wrong
	}}
	resp, out = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", token, submission)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["score_total"])
	assert.Equal(t, float64(3), data["score_max"])
	assert.NotNil(t, data["submitted_at"])

	// Submitting a sealed attempt is a conflict.
	resp, _ = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", token, submission)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// After submission the paper can be attempted again, as a fresh row.
	resp, out = doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, attemptID, uint(out["data"].(map[string]interface{})["ID"].(float64)))
}

func TestSubmitWithUnknownMCQ(t *testing.T) {
	app := setupExamTest(t)
	student, paper, mcqs := seedPaper(t)
	token := studentToken(t, student)

	resp, out := doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	attemptID := uint(out["data"].(map[string]interface{})["ID"].(float64))

	// One answer references an MCQ not on the paper; it scores zero instead
	// of failing the submission.
	submission := fiber.Map{"responses": []fiber.Map{
		{"mcq_id": mcqs[0].ID, "selected_index": 0},
		{"mcq_id": 99999, "selected_index": 1},
	}}
	resp, out = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", token, submission)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["score_total"])
	assert.Equal(t, float64(3), data["score_max"])
}

func TestDuplicateResponsesScoreOnce(t *testing.T) {
	app := setupExamTest(t)
	student, paper, mcqs := seedPaper(t)
	token := studentToken(t, student)

	resp, out := doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	attemptID := uint(out["data"].(map[string]interface{})["ID"].(float64))

	// The same correct answer repeated must not inflate the score past max.
	submission := fiber.Map{"responses": []fiber.Map{
		{"mcq_id": mcqs[0].ID, "selected_index": 0},
		{"mcq_id": mcqs[0].ID, "selected_index": 0},
		{"mcq_id": mcqs[0].ID, "selected_index": 0},
		{"mcq_id": mcqs[0].ID, "selected_index": 0},
	}}
	resp, out = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", token, submission)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := out["data"].(map[string]interface{})
	total := data["score_total"].(float64)
	max := data["score_max"].(float64)
	assert.Equal(t, float64(1), total)
	assert.Equal(t, float64(3), max)
	assert.LessOrEqual(t, total, max)

	// Only one graded row is stored for the repeated question.
	var count int64
	require.NoError(t, database.Database.Db.Model(&examModels.AttemptResponse{}).
		Where("attempt_id = ? AND mcq_id = ?", attemptID, mcqs[0].ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitFailsClosedWhenGradingCannotLoadPaper(t *testing.T) {
	app := setupExamTest(t)
	student, paper, mcqs := seedPaper(t)
	token := studentToken(t, student)

	resp, out := doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	attemptID := uint(out["data"].(map[string]interface{})["ID"].(float64))

	// Break the grading query; the submit must error out, not seal the
	// attempt with a bogus 0/0 score.
	require.NoError(t, database.Database.Db.Migrator().DropTable(&examModels.PaperItem{}))

	submission := fiber.Map{"responses": []fiber.Map{{"mcq_id": mcqs[0].ID, "selected_index": 0}}}
	resp, _ = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", token, submission)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var attempt examModels.ExamAttempt
	require.NoError(t, database.Database.Db.First(&attempt, attemptID).Error)
	assert.False(t, attempt.IsSubmitted())
}

func TestSubmitForeignAttemptForbidden(t *testing.T) {
	app := setupExamTest(t)
	student, paper, mcqs := seedPaper(t)
	token := studentToken(t, student)

	resp, out := doJSON(t, app, "POST", "/exam-attempts/start", token, fiber.Map{"paper_id": paper.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	attemptID := uint(out["data"].(map[string]interface{})["ID"].(float64))

	other := models.Student{Name: "Ravi", Email: "ravi@example.com", Password: "x", StandardID: 1}
	require.NoError(t, database.Database.Db.Create(&other).Error)

	submission := fiber.Map{"responses": []fiber.Map{{"mcq_id": mcqs[0].ID, "selected_index": 0}}}
	resp, _ = doJSON(t, app, "POST", "/exam-attempts/"+itoa(attemptID)+"/submit", studentToken(t, other), submission)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStartUnknownPaper(t *testing.T) {
	app := setupExamTest(t)
	student, _, _ := seedPaper(t)

	resp, _ := doJSON(t, app, "POST", "/exam-attempts/start", studentToken(t, student), fiber.Map{"paper_id": 4242})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
