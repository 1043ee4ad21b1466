package models

import "gorm.io/gorm"

// AuditLog records one row per sensitive mutation.
type AuditLog struct {
	gorm.Model
	ActorType string `gorm:"size:10" json:"actor_type"` // STUDENT, STAFF, SYSTEM
	ActorID   uint   `gorm:"index" json:"actor_id"`
	Action    string `gorm:"size:30;not null" json:"action"` // CREATE, UPDATE, DELETE, PASSWORD_RESET, ...
	Entity    string `gorm:"size:30;not null;index" json:"entity"`
	EntityID  uint   `gorm:"index" json:"entity_id"`
	Notes     string `gorm:"size:500" json:"notes,omitempty"`
}
