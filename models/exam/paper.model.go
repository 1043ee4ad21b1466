package exam

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Paper types
const (
	PaperStaffDraft   = "STAFF_DRAFT"
	PaperStudentDraft = "STUDENT_DRAFT"
	PaperTemplate     = "TEMPLATE"
	PaperGenerated    = "GENERATED"
)

// Paper is an ordered MCQ selection assembled for printing or exam use.
type Paper struct {
	gorm.Model
	Title               string         `gorm:"size:255;not null" json:"title"`
	Type                string         `gorm:"size:20;not null;index" json:"type"`
	StandardID          uint           `gorm:"index;not null" json:"standard_id"`
	SubjectIDs          datatypes.JSON `gorm:"type:json" json:"subject_ids"` // []uint
	IncludeAnswers      bool           `gorm:"default:false" json:"include_answers"`
	IncludeExplanations bool           `gorm:"default:false" json:"include_explanations"`
	TotalMarks          int            `gorm:"default:0" json:"total_marks"`
	CreatedByType       string         `gorm:"size:10;not null" json:"created_by_type"` // STUDENT or STAFF
	CreatedByID         uint           `gorm:"index;not null" json:"created_by_id"`
	ParentPaperID       *uint          `gorm:"index" json:"parent_paper_id,omitempty"` // template this was generated from
	GeneratedPdfKey     string         `gorm:"size:255" json:"generated_pdf_key,omitempty"`
	GeneratedPdfAt      *time.Time     `json:"generated_pdf_at,omitempty"`
	Items               []PaperItem    `gorm:"foreignKey:PaperID" json:"items"`
	IsDeleted           bool           `gorm:"default:false" json:"-"`
}

// PaperItem references one MCQ within a paper. OrderIndex defines the
// presentation sequence exactly as submitted.
type PaperItem struct {
	gorm.Model
	PaperID    uint `gorm:"index;not null" json:"paper_id"`
	MCQID      uint `gorm:"index;not null" json:"mcq_id"`
	Marks      int  `gorm:"default:1" json:"marks"`
	OrderIndex int  `gorm:"not null" json:"order_index"`
}
