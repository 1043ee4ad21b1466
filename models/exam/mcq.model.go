package exam

import (
	"errors"

	"gorm.io/gorm"
)

// Creator type discriminators for polymorphic created_by columns.
const (
	CreatorStudent = "STUDENT"
	CreatorStaff   = "STAFF"
)

// ErrCorrectOptionCount is returned when an MCQ does not have exactly one
// option flagged correct.
var ErrCorrectOptionCount = errors.New("mcq must have exactly one correct option")

// ErrTooFewOptions is returned when an MCQ has fewer than two options.
var ErrTooFewOptions = errors.New("mcq must have at least two options")

// MCQ is a multiple-choice question with one correct option among 2-6.
type MCQ struct {
	gorm.Model
	StandardID    uint        `gorm:"index;not null" json:"standard_id"`
	SubjectID     uint        `gorm:"index;not null" json:"subject_id"`
	CategoryID    uint        `gorm:"index" json:"category_id,omitempty"`
	QuestionText  string      `gorm:"type:text;not null" json:"question_text"`
	QuestionImage string      `gorm:"size:255" json:"question_image,omitempty"` // file-store key
	Language      string      `gorm:"size:10;default:'en'" json:"language"`     // en, gu
	Font          string      `gorm:"size:50" json:"font,omitempty"`
	Explanation   string      `gorm:"type:text" json:"explanation,omitempty"`
	CreatedByType string      `gorm:"size:10;default:'STAFF'" json:"created_by_type"`
	CreatedByID   uint        `gorm:"index" json:"created_by_id"`
	Options       []MCQOption `gorm:"foreignKey:MCQID" json:"options"`
	IsDeleted     bool        `gorm:"default:false" json:"-"`
}

// MCQOption is one answer choice of an MCQ
type MCQOption struct {
	gorm.Model
	MCQID      uint   `gorm:"index;not null" json:"mcq_id"`
	OptionText string `gorm:"type:text" json:"option_text"`
	Image      string `gorm:"size:255" json:"image,omitempty"` // file-store key
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`
}

// ValidateOptions checks the option-set invariant: at least two options and
// exactly one flagged correct.
func ValidateOptions(options []MCQOption) error {
	if len(options) < 2 {
		return ErrTooFewOptions
	}
	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return ErrCorrectOptionCount
	}
	return nil
}

// BeforeSave re-checks the option invariant at the storage layer.
func (m *MCQ) BeforeSave(tx *gorm.DB) error {
	if len(m.Options) == 0 {
		// Options persisted separately (e.g. partial update); nothing to check here.
		return nil
	}
	return ValidateOptions(m.Options)
}

// CorrectIndex returns the order index of the correct option, or -1.
func (m *MCQ) CorrectIndex() int {
	for _, opt := range m.Options {
		if opt.IsCorrect {
			return opt.OrderIndex
		}
	}
	return -1
}
