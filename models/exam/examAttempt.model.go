package exam

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OpenSlotValue marks an in-progress attempt. The column is NULL once the
// attempt is submitted, so the composite unique index below only ever sees
// one live row per (student, paper). Concurrent starts collide on the index
// instead of racing a find-then-create.
const OpenSlotValue = "open"

// ExamAttempt is one student's pass at a paper.
// Lifecycle: created at start (StartedAt set, no responses) -> mutated once
// at submit (responses graded, score set, SubmittedAt set) -> immutable.
type ExamAttempt struct {
	gorm.Model
	StudentID   uint              `gorm:"not null;uniqueIndex:idx_open_attempt" json:"student_id"`
	PaperID     uint              `gorm:"not null;uniqueIndex:idx_open_attempt" json:"paper_id"`
	OpenSlot    *string           `gorm:"size:10;uniqueIndex:idx_open_attempt" json:"-"`
	StandardID  uint              `gorm:"index" json:"standard_id"`
	SubjectIDs  datatypes.JSON    `gorm:"type:json" json:"subject_ids"`
	StartedAt   time.Time         `gorm:"not null" json:"started_at"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	ScoreTotal  int               `gorm:"default:0" json:"score_total"`
	ScoreMax    int               `gorm:"default:0" json:"score_max"`
	Responses   []AttemptResponse `gorm:"foreignKey:AttemptID" json:"responses"`
}

// AttemptResponse is the graded record of one submitted answer.
type AttemptResponse struct {
	gorm.Model
	AttemptID     uint `gorm:"index;not null" json:"attempt_id"`
	MCQID         uint `gorm:"index;not null" json:"mcq_id"`
	SelectedIndex int  `gorm:"not null" json:"selected_index"`
	Correct       bool `gorm:"default:false" json:"correct"`
	MarksAwarded  int  `gorm:"default:0" json:"marks_awarded"`
}

// IsSubmitted reports whether the attempt has reached its terminal state.
func (a *ExamAttempt) IsSubmitted() bool {
	return a.SubmittedAt != nil
}
