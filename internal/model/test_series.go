package model

import (
	"time"

	"gorm.io/gorm"
)

// TestSeries groups question papers sold/offered together for one exam, e.g.
// "SSC CGL Tier-1 Mock Series 2026".
type TestSeries struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	CourseID       uint            `json:"course_id" gorm:"not null;index"`
	ExamID         uint            `json:"exam_id" gorm:"not null;index"`
	Exam           Exam            `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Title          string          `json:"title" gorm:"not null"`
	Description    string          `json:"description,omitempty"`
	Languages      StringList      `json:"languages,omitempty" gorm:"type:jsonb"`
	IsFree         bool            `json:"is_free" gorm:"not null;default:false"`
	IsActive       bool            `json:"is_active" gorm:"not null;default:true"`
	StudentCount   int64           `json:"student_count" gorm:"not null;default:0"`
	QuestionPapers []QuestionPaper `json:"question_papers,omitempty" gorm:"foreignKey:TestSeriesID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
