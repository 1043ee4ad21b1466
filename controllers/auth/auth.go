package authController

import (
	"log"
	"time"

	"schoolportal/config"
	"schoolportal/database"
	"schoolportal/middleware"
	"schoolportal/models"
	examModels "schoolportal/models/exam"
	"schoolportal/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// account is the common view over Student and StaffAdmin rows used by the
// auth flows. userType tags which table the row came from.
type account struct {
	ID       uint
	Name     string
	Email    string
	Mobile   string
	Password string
	Role     string
}

// findAccountByEmail resolves a login identity. The userType tag is handled
// exhaustively; unknown tags are an error, not a fallthrough.
func findAccountByEmail(userType, email string) (*account, error) {
	db := database.Database.Db
	switch userType {
	case examModels.CreatorStudent:
		var s models.Student
		if err := db.Where("email = ? AND is_deleted = ? AND is_active = ?", email, false, true).First(&s).Error; err != nil {
			return nil, err
		}
		return &account{ID: s.ID, Name: s.Name, Email: s.Email, Mobile: s.Mobile, Password: s.Password, Role: "STUDENT"}, nil
	case examModels.CreatorStaff:
		var st models.StaffAdmin
		if err := db.Where("email = ? AND is_deleted = ? AND is_active = ?", email, false, true).First(&st).Error; err != nil {
			return nil, err
		}
		return &account{ID: st.ID, Name: st.Name, Email: st.Email, Mobile: st.Mobile, Password: st.Password, Role: st.Role}, nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}

func findAccountByMobile(userType, mobile string) (*account, error) {
	db := database.Database.Db
	switch userType {
	case examModels.CreatorStudent:
		var s models.Student
		if err := db.Where("mobile = ? AND is_deleted = ? AND is_active = ?", mobile, false, true).First(&s).Error; err != nil {
			return nil, err
		}
		return &account{ID: s.ID, Name: s.Name, Email: s.Email, Mobile: s.Mobile, Password: s.Password, Role: "STUDENT"}, nil
	case examModels.CreatorStaff:
		var st models.StaffAdmin
		if err := db.Where("mobile = ? AND is_deleted = ? AND is_active = ?", mobile, false, true).First(&st).Error; err != nil {
			return nil, err
		}
		return &account{ID: st.ID, Name: st.Name, Email: st.Email, Mobile: st.Mobile, Password: st.Password, Role: st.Role}, nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}

// Login authenticates a student or staff user and returns a JWT.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		UserType string `json:"user_type"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var acc *account
	var err error
	if reqData.Email != "" {
		acc, err = findAccountByEmail(reqData.UserType, reqData.Email)
	} else {
		acc, err = findAccountByMobile(reqData.UserType, reqData.Mobile)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	db := database.Database.Db
	switch reqData.UserType {
	case examModels.CreatorStudent:
		db.Model(&models.Student{}).Where("id = ?", acc.ID).Update("last_login", time.Now())
	case examModels.CreatorStaff:
		db.Model(&models.StaffAdmin{}).Where("id = ?", acc.ID).Update("last_login", time.Now())
	}

	token, err := middleware.GenerateJWT(acc.ID, reqData.UserType, acc.Role, acc.Name, acc.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token":     token,
		"user_id":   acc.ID,
		"user_type": reqData.UserType,
		"role":      acc.Role,
		"name":      acc.Name,
	})
}

// issueOtp deletes any prior code for (owner, purpose) and saves a fresh one.
// At most one code per (owner, purpose) is ever live.
func issueOtp(userType string, userID uint, mobile, purpose string) (string, error) {
	db := database.Database.Db

	if err := db.Unscoped().
		Where("user_type = ? AND user_id = ? AND purpose = ?", userType, userID, purpose).
		Delete(&models.OTP{}).Error; err != nil {
		return "", err
	}

	code := utils.GenerateOTP()
	record := models.OTP{
		UserType:  userType,
		UserID:    userID,
		Mobile:    mobile,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(models.OtpValidity),
	}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}
	return code, nil
}

// consumeOtp verifies a code for (owner, purpose, mobile). On success the row
// is deleted (single use). Wrong codes bump the attempt counter; once it
// passes models.OtpMaxAttempts the code is invalidated outright.
func consumeOtp(userType string, userID uint, mobile, code, purpose string) bool {
	db := database.Database.Db

	var record models.OTP
	err := db.Where("user_type = ? AND user_id = ? AND mobile = ? AND purpose = ?",
		userType, userID, mobile, purpose).First(&record).Error
	if err != nil {
		return false
	}

	if time.Now().After(record.ExpiresAt) {
		return false
	}

	if record.Code != code {
		record.Attempts++
		if record.Attempts >= models.OtpMaxAttempts {
			db.Unscoped().Delete(&record)
		} else {
			db.Model(&record).Update("attempts", record.Attempts)
		}
		return false
	}

	if err := db.Unscoped().Delete(&record).Error; err != nil {
		log.Printf("Error consuming OTP %d: %v", record.ID, err)
		return false
	}
	return true
}

// ForgotPasswordSendOTP issues a PASSWORD_RESET code and delivers it over
// WhatsApp to the registered mobile number.
func ForgotPasswordSendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOtpRequest").(*struct {
		UserType string `json:"user_type"`
		Mobile   string `json:"mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	acc, err := findAccountByMobile(reqData.UserType, reqData.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this mobile number!", nil)
	}

	code, err := issueOtp(reqData.UserType, acc.ID, acc.Mobile, models.OtpPurposePasswordReset)
	if err != nil {
		log.Printf("Error issuing OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Create OTP!", nil)
	}

	if err := utils.SendOTPWhatsapp(acc.Mobile, code); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to mobile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// ForgotPasswordVerify consumes the PASSWORD_RESET code and sets the new
// password.
func ForgotPasswordVerify(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPasswordReset").(*struct {
		UserType    string `json:"user_type"`
		Mobile      string `json:"mobile"`
		Otp         string `json:"otp"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	acc, err := findAccountByMobile(reqData.UserType, reqData.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this mobile number!", nil)
	}

	if !consumeOtp(reqData.UserType, acc.ID, acc.Mobile, reqData.Otp, models.OtpPurposePasswordReset) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP or OTP expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db := database.Database.Db
	switch reqData.UserType {
	case examModels.CreatorStudent:
		err = db.Model(&models.Student{}).Where("id = ?", acc.ID).Update("password", string(hashedPassword)).Error
	case examModels.CreatorStaff:
		err = db.Model(&models.StaffAdmin{}).Where("id = ?", acc.ID).Update("password", string(hashedPassword)).Error
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown user type!", nil)
	}
	if err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	utils.RecordAudit(reqData.UserType, acc.ID, "PASSWORD_RESET", reqData.UserType, acc.ID, "")
	if acc.Email != "" {
		utils.SendPasswordChangedEmail(acc.Email, acc.Name)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully.", nil)
}

// ProfileSendOTP issues a PROFILE_UPDATE code for the authenticated user.
func ProfileSendOTP(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	acc, err := accountByID(userType, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if acc.Mobile == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No mobile number on record!", nil)
	}

	code, err := issueOtp(userType, acc.ID, acc.Mobile, models.OtpPurposeProfileUpdate)
	if err != nil {
		log.Printf("Error issuing OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Create OTP!", nil)
	}

	if err := utils.SendOTPWhatsapp(acc.Mobile, code); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to mobile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// ProfileUpdate consumes the PROFILE_UPDATE code and applies the submitted
// contact changes.
func ProfileUpdate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	reqData, ok := c.Locals("validatedProfileUpdate").(*struct {
		Otp    string `json:"otp"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Mobile string `json:"mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	acc, err := accountByID(userType, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !consumeOtp(userType, acc.ID, acc.Mobile, reqData.Otp, models.OtpPurposeProfileUpdate) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP or OTP expired!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != "" {
		updates["name"] = reqData.Name
	}
	if reqData.Email != "" {
		updates["email"] = reqData.Email
	}
	if reqData.Mobile != "" {
		updates["mobile"] = reqData.Mobile
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	db := database.Database.Db
	switch userType {
	case examModels.CreatorStudent:
		err = db.Model(&models.Student{}).Where("id = ?", userID).Updates(updates).Error
	case examModels.CreatorStaff:
		err = db.Model(&models.StaffAdmin{}).Where("id = ?", userID).Updates(updates).Error
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown user type!", nil)
	}
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	utils.RecordAudit(userType, userID, "UPDATE", userType, userID, "profile update")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", nil)
}

func accountByID(userType string, id uint) (*account, error) {
	db := database.Database.Db
	switch userType {
	case examModels.CreatorStudent:
		var s models.Student
		if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&s).Error; err != nil {
			return nil, err
		}
		return &account{ID: s.ID, Name: s.Name, Email: s.Email, Mobile: s.Mobile, Password: s.Password, Role: "STUDENT"}, nil
	case examModels.CreatorStaff:
		var st models.StaffAdmin
		if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&st).Error; err != nil {
			return nil, err
		}
		return &account{ID: st.ID, Name: st.Name, Email: st.Email, Mobile: st.Mobile, Password: st.Password, Role: st.Role}, nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}
