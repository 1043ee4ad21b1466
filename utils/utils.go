package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"schoolportal/database"
	"schoolportal/models"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// RecordAudit writes one audit row. Failures are logged, never propagated;
// auditing must not fail the request that triggered it.
func RecordAudit(actorType string, actorID uint, action, entity string, entityID uint, notes string) {
	entry := models.AuditLog{
		ActorType: actorType,
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Notes:     notes,
	}
	if err := database.Database.Db.Create(&entry).Error; err != nil {
		log.Printf("Error writing audit log (%s %s/%d): %v", action, entity, entityID, err)
	}
}

// Pagination normalizes page/limit query values into offset/limit.
func Pagination(page, limit int) (offset int, cappedLimit int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}
