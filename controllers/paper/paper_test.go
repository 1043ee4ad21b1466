package paperController_test

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
	paperRoutes "schoolportal/routers/paperRoutes"
	paperValidator "schoolportal/validators/paper"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPaperTest(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4, UploadDir: t.TempDir()}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	paperRoutes.SetupPaperRoutes(app)
	return app
}

func seedMCQs(t *testing.T, n int) []examModels.MCQ {
	db := database.Database.Db
	mcqs := make([]examModels.MCQ, 0, n)
	for q := 0; q < n; q++ {
		mcq := examModels.MCQ{
			StandardID:    1,
			SubjectID:     1,
			QuestionText:  "question",
			CreatedByType: examModels.CreatorStaff,
			CreatedByID:   1,
			Options: []examModels.MCQOption{
				{OptionText: "a", IsCorrect: true, OrderIndex: 0},
				{OptionText: "b", OrderIndex: 1},
			},
		}
		require.NoError(t, db.Create(&mcq).Error)
		mcqs = append(mcqs, mcq)
	}
	return mcqs
}

func staffPaperToken(t *testing.T) string {
	staff := models.StaffAdmin{Name: "Meera", Email: "meera@example.com", Password: "x", Role: "STAFF"}
	require.NoError(t, database.Database.Db.Create(&staff).Error)
	token, err := middleware.GenerateJWT(staff.ID, "STAFF", "STAFF", staff.Name, staff.Email)
	require.NoError(t, err)
	return token
}

func studentPaperToken(t *testing.T) string {
	student := models.Student{Name: "Asha", Email: "asha@example.com", Password: "x", StandardID: 1}
	require.NoError(t, database.Database.Db.Create(&student).Error)
	token, err := middleware.GenerateJWT(student.ID, "STUDENT", "STUDENT", student.Name, student.Email)
	require.NoError(t, err)
	return token
}

func postPaper(t *testing.T, app *fiber.App, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest("POST", "/papers", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestCreatePaperPreservesOrderAndTotals(t *testing.T) {
	app := setupPaperTest(t)
	mcqs := seedMCQs(t, 3)
	token := staffPaperToken(t)

	// Submit in reverse creation order with mixed marks.
	resp, out := postPaper(t, app, token, fiber.Map{
		"title":       "Midterm",
		"type":        examModels.PaperStaffDraft,
		"standard_id": 1,
		"items": []fiber.Map{
			{"mcq_id": mcqs[2].ID, "marks": 3},
			{"mcq_id": mcqs[0].ID},
			{"mcq_id": mcqs[1].ID, "marks": 2},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(6), data["total_marks"]) // 3 + 1 (defaulted) + 2

	paperID := uint(data["ID"].(float64))
	var items []examModels.PaperItem
	require.NoError(t, database.Database.Db.Where("paper_id = ?", paperID).Order("order_index asc").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, mcqs[2].ID, items[0].MCQID)
	assert.Equal(t, mcqs[0].ID, items[1].MCQID)
	assert.Equal(t, mcqs[1].ID, items[2].MCQID)
	assert.Equal(t, 1, items[1].Marks)
}

func TestCreatePaperRejectsOversize(t *testing.T) {
	app := setupPaperTest(t)
	token := staffPaperToken(t)

	tooMany := make([]fiber.Map, paperValidator.MaxPaperItems+1)
	for i := range tooMany {
		tooMany[i] = fiber.Map{"mcq_id": i + 1}
	}
	resp, _ := postPaper(t, app, token, fiber.Map{
		"title": "Huge", "standard_id": 1, "items": tooMany,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = postPaper(t, app, token, fiber.Map{
		"title": "Overweight", "standard_id": 1,
		"items": []fiber.Map{{"mcq_id": 1, "marks": paperValidator.MaxPaperMarks + 1}},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func getPaperPDF(t *testing.T, app *fiber.App, paperID, token, query string) *http.Response {
	req := httptest.NewRequest("GET", "/papers/"+paperID+"/pdf"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAnswersOverrideRestrictedToOwnPapers(t *testing.T) {
	app := setupPaperTest(t)
	// No browser here: requests that clear the gate fail at render instead.
	config.AppConfig.ChromiumPath = "/nonexistent/chromium"
	mcqs := seedMCQs(t, 1)
	staffToken := staffPaperToken(t)
	studentToken := studentPaperToken(t)

	resp, out := postPaper(t, app, staffToken, fiber.Map{
		"title": "Class Test", "type": examModels.PaperStaffDraft, "standard_id": 1,
		"items": []fiber.Map{{"mcq_id": mcqs[0].ID}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	staffPaperID := strconv.Itoa(int(out["data"].(map[string]interface{})["ID"].(float64)))

	// A student cannot pull another creator's answer key.
	resp = getPaperPDF(t, app, staffPaperID, studentToken, "?answers=true")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Staff pass the gate; the render itself fails without a browser.
	resp = getPaperPDF(t, app, staffPaperID, staffToken, "?answers=true")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// Students pass the gate on their own papers.
	resp, out = postPaper(t, app, studentToken, fiber.Map{
		"title": "My Set", "type": examModels.PaperStudentDraft, "standard_id": 1,
		"items": []fiber.Map{{"mcq_id": mcqs[0].ID}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ownPaperID := strconv.Itoa(int(out["data"].(map[string]interface{})["ID"].(float64)))

	resp = getPaperPDF(t, app, ownPaperID, studentToken, "?answers=true")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestStudentCannotCreateStaffDraft(t *testing.T) {
	app := setupPaperTest(t)
	mcqs := seedMCQs(t, 1)
	token := studentPaperToken(t)

	resp, _ := postPaper(t, app, token, fiber.Map{
		"title": "Sneaky", "type": examModels.PaperStaffDraft, "standard_id": 1,
		"items": []fiber.Map{{"mcq_id": mcqs[0].ID}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = postPaper(t, app, token, fiber.Map{
		"title": "My Practice Set", "type": examModels.PaperStudentDraft, "standard_id": 1,
		"items": []fiber.Map{{"mcq_id": mcqs[0].ID}},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
