package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes
const (
	OtpPurposePasswordReset = "PASSWORD_RESET"
	OtpPurposeProfileUpdate = "PROFILE_UPDATE"
)

// OTP is a short-lived single-use code gating a sensitive account action.
// Only one live code exists per (owner, purpose); issuing a new one deletes
// the old. Expired rows are purged by the cron job in utils/otpScheduler.go.
type OTP struct {
	gorm.Model
	UserType  string    `gorm:"size:10;not null;index:idx_otp_owner" json:"user_type"` // STUDENT or STAFF
	UserID    uint      `gorm:"not null;index:idx_otp_owner" json:"user_id"`
	Mobile    string    `gorm:"size:15;index" json:"mobile"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Purpose   string    `gorm:"size:20;not null;index:idx_otp_owner" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Attempts  int       `gorm:"default:0" json:"-"` // failed verifications; locked after OtpMaxAttempts
}

// OtpMaxAttempts is the number of wrong codes tolerated before the OTP is
// invalidated. The legacy system had no lockout; this is a hardening addition.
const OtpMaxAttempts = 5

// OtpValidity is how long an issued code stays verifiable.
const OtpValidity = 5 * time.Minute
