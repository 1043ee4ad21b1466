package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex" json:"email"`
	Mobile       string    `gorm:"size:15;index" json:"mobile"`
	Password     string    `gorm:"not null" json:"-"`
	StandardID   uint      `gorm:"index" json:"standard_id"`
	SchoolName   string    `gorm:"size:255" json:"school_name,omitempty"`
	ProfileImage string    `gorm:"default:''" json:"profile_image,omitempty"`
	LastLogin    time.Time `gorm:"default:NULL" json:"last_login,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
}
