package standardController_test

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
	standardRoutes "schoolportal/routers/standardRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStandardTest(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	standardRoutes.SetupStandardRoutes(app)
	return app
}

func tokenWithRole(t *testing.T, role string) string {
	token, err := middleware.GenerateJWT(1, "STAFF", role, "Tester", "tester@example.com")
	require.NoError(t, err)
	return token
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestStandardCrudAndVisibility(t *testing.T) {
	app := setupStandardTest(t)
	admin := tokenWithRole(t, "ADMIN")
	staff := tokenWithRole(t, "STAFF")

	// Only admins may create.
	resp, _ := request(t, app, "POST", "/standards/", staff, fiber.Map{"name": "Standard 9"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, out := request(t, app, "POST", "/standards/", admin, fiber.Map{"name": "Standard 9"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := strconv.Itoa(int(out["data"].(map[string]interface{})["ID"].(float64)))

	// Disable it: gone from the default listing, visible to admins on request.
	resp, _ = request(t, app, "PATCH", "/standards/"+id+"/toggle", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, out = request(t, app, "GET", "/standards/", staff, nil)
	assert.Empty(t, out["data"])

	_, out = request(t, app, "GET", "/standards/?includeDisabled=true", admin, nil)
	assert.Len(t, out["data"], 1)

	// includeDisabled is ignored for non-admins.
	_, out = request(t, app, "GET", "/standards/?includeDisabled=true", staff, nil)
	assert.Empty(t, out["data"])

	// Soft delete hides it from everyone.
	resp, _ = request(t, app, "DELETE", "/standards/"+id, admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, out = request(t, app, "GET", "/standards/?includeDisabled=true", admin, nil)
	assert.Empty(t, out["data"])
}

func TestStandardValidation(t *testing.T) {
	app := setupStandardTest(t)
	admin := tokenWithRole(t, "ADMIN")

	resp, _ := request(t, app, "POST", "/standards/", admin, fiber.Map{"name": "  "})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
