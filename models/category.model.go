package models

import "gorm.io/gorm"

// Category tags MCQs and materials (e.g. "Board Exam", "Practice")
type Category struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
