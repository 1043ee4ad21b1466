package models

import "gorm.io/gorm"

// Subject belongs to a Standard (e.g. "Maths" under "Std 10")
type Subject struct {
	gorm.Model
	Name       string `gorm:"size:100;not null" json:"name"`
	StandardID uint   `gorm:"index;not null" json:"standard_id"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}
