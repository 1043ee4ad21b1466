package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolportal/config"
	"schoolportal/database"
	"schoolportal/models"
	authRoutes "schoolportal/routers/authRoutes"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testMobile = "+919900112233"

func setupAuthTest(t *testing.T) (*fiber.App, *string) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	// Capture OTP delivery instead of calling the WhatsApp gateway.
	lastCode := new(string)
	utils.SendOTPWhatsapp = func(mobile, otp string) error {
		*lastCode = otp
		return nil
	}
	utils.SendEmail = func(toEmail, toName, subject, htmlBody string) error { return nil }

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	student := models.Student{Name: "Asha", Email: "asha@example.com", Mobile: testMobile, Password: string(hashed), StandardID: 1}
	require.NoError(t, db.Create(&student).Error)

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app, lastCode
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// wrongCode returns a valid-looking 6-digit code that differs from the issued one.
func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestForgotPasswordRoundTrip(t *testing.T) {
	app, lastCode := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": testMobile})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, *lastCode, 6)

	resp = postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
		"user_type": "STUDENT", "mobile": testMobile, "otp": *lastCode, "new_password": "freshpass1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Old password no longer works, new one does.
	resp = postJSON(t, app, "/auth/login", fiber.Map{"user_type": "STUDENT", "email": "asha@example.com", "password": "oldpassword"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{"user_type": "STUDENT", "email": "asha@example.com", "password": "freshpass1"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The code is single use.
	resp = postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
		"user_type": "STUDENT", "mobile": testMobile, "otp": *lastCode, "new_password": "anotherpass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOtpReissueInvalidatesPrevious(t *testing.T) {
	app, lastCode := setupAuthTest(t)

	postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": testMobile})
	first := *lastCode

	postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": testMobile})
	second := *lastCode

	if first != second {
		resp := postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
			"user_type": "STUDENT", "mobile": testMobile, "otp": first, "new_password": "freshpass1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	resp := postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
		"user_type": "STUDENT", "mobile": testMobile, "otp": second, "new_password": "freshpass1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOtpLockoutAfterTooManyWrongCodes(t *testing.T) {
	app, lastCode := setupAuthTest(t)

	postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": testMobile})
	code := *lastCode

	for i := 0; i < models.OtpMaxAttempts; i++ {
		resp := postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
			"user_type": "STUDENT", "mobile": testMobile, "otp": wrongCode(code), "new_password": "freshpass1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	// The real code is dead too once the attempt budget is spent.
	resp := postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
		"user_type": "STUDENT", "mobile": testMobile, "otp": code, "new_password": "freshpass1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredOtpRejected(t *testing.T) {
	app, lastCode := setupAuthTest(t)

	postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": testMobile})
	code := *lastCode

	require.NoError(t, database.Database.Db.Model(&models.OTP{}).
		Where("mobile = ?", testMobile).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	resp := postJSON(t, app, "/auth/forgot-password/verify", fiber.Map{
		"user_type": "STUDENT", "mobile": testMobile, "otp": code, "new_password": "freshpass1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginByMobile(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/login", fiber.Map{"user_type": "STUDENT", "mobile": testMobile, "password": "oldpassword"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", fiber.Map{"user_type": "STUDENT", "password": "oldpassword"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSendOtpUnknownMobile(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/forgot-password/send-otp", fiber.Map{"user_type": "STUDENT", "mobile": "+919999999999"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
