package utils

import (
	"log"
	"time"

	"schoolportal/database"
	"schoolportal/models"
	examModels "schoolportal/models/exam"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredOtps deletes OTP rows whose expiry has passed. Expiry is also
// checked at verify time; the purge keeps the table from growing.
func purgeExpiredOtps() {
	db := database.Database.Db
	res := db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.OTP{})
	if res.Error != nil {
		logScheduler("Error purging expired OTPs: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Purged expired OTPs")
	}
}

// purgeStaleStudentDrafts soft-deletes student draft papers untouched for 30
// days. Staff drafts and templates are kept indefinitely.
func purgeStaleStudentDrafts() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -30)
	res := db.Model(&examModels.Paper{}).
		Where("type = ? AND updated_at < ? AND is_deleted = ?", examModels.PaperStudentDraft, cutoff, false).
		Update("is_deleted", true)
	if res.Error != nil {
		logScheduler("Error purging stale student drafts: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Soft-deleted stale student draft papers")
	}
}

// StartSchedulers wires the background jobs and starts the cron runner.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/10 * * * *", purgeExpiredOtps); err != nil {
		log.Fatalf("Failed to schedule OTP purge: %v", err)
	}
	if _, err := c.AddFunc("30 2 * * *", purgeStaleStudentDrafts); err != nil {
		log.Fatalf("Failed to schedule draft purge: %v", err)
	}

	c.Start()
	logScheduler("Background schedulers started")
	return c
}
