package models

import "gorm.io/gorm"

// Standard represents a class/grade level (e.g. "Std 10")
type Standard struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
