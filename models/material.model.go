package models

import "gorm.io/gorm"

// Material represents an uploaded study file (notes, book chapter, etc.)
type Material struct {
	gorm.Model
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description,omitempty"`
	StandardID  uint   `gorm:"index;not null" json:"standard_id"`
	SubjectID   uint   `gorm:"index;not null" json:"subject_id"`
	CategoryID  uint   `gorm:"index" json:"category_id,omitempty"`
	FileKey     string `gorm:"size:255;not null" json:"file_key"` // opaque key into the file store
	FileName    string `gorm:"size:255" json:"file_name"`
	UploadedBy  uint   `gorm:"index" json:"uploaded_by"` // StaffAdmin ID
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
