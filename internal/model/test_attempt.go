package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in-progress"
	// AttemptPaused is reserved: no operation in this service sets it, but
	// getCurrent(includeAll) matches it and external writers may store it.
	AttemptPaused    AttemptStatus = "paused"
	AttemptCompleted AttemptStatus = "completed"
	AttemptAbandoned AttemptStatus = "abandoned"
	AttemptTimedOut  AttemptStatus = "timed-out"
)

func (s AttemptStatus) Valid() bool {
	switch s {
	case AttemptInProgress, AttemptPaused, AttemptCompleted, AttemptAbandoned, AttemptTimedOut:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
func (s AttemptStatus) Terminal() bool {
	switch s {
	case AttemptCompleted, AttemptAbandoned, AttemptTimedOut:
		return true
	}
	return false
}

// Response records a user's answer to one question and its scoring outcome.
// The question's answer type is snapshotted so patch values can be coerced
// without re-reading the paper. IsCorrect and MarksAwarded are written only
// by the scoring engine, never taken from client input.
type Response struct {
	QuestionIndex     int          `json:"question_index"`
	Type              QuestionType `json:"type"`
	SelectedOption    *AnswerValue `json:"selected_option"`
	IsMarkedForReview bool         `json:"is_marked_for_review"`
	TimeSpent         int          `json:"time_spent"` // seconds
	IsCorrect         bool         `json:"is_correct"`
	MarksAwarded      float64      `json:"marks_awarded"`
}

// SectionAttempt snapshots one paper section's structure at attempt-creation
// time. Responses has exactly one entry per question the section had then;
// indices stay stable even if the paper is edited afterward.
type SectionAttempt struct {
	SectionTitle string     `json:"section_title"`
	Responses    []Response `json:"responses"`
	TimeSpent    int        `json:"time_spent"` // seconds
	Score        float64    `json:"score"`
	MaxScore     float64    `json:"max_score"`
}

// SectionAttempts is stored as one jsonb document so a progress update is a
// single document-level write: concurrent patches against different question
// indices go through a row lock, never independent array-element updates.
type SectionAttempts []SectionAttempt

func (s SectionAttempts) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SectionAttempts) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for SectionAttempts")
	}
	return json.Unmarshal(data, s)
}

// AttemptProgress tracks where the user is in the paper. VisitedQuestions is
// keyed "sectionIndex-questionIndex" and only ever grows.
type AttemptProgress struct {
	CurrentSection   int               `json:"current_section"`
	CurrentQuestion  int               `json:"current_question"`
	VisitedQuestions datatypes.JSONMap `json:"visited_questions" gorm:"type:jsonb"`
}

type AttemptTiming struct {
	StartedAt      time.Time  `json:"started_at"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	LastActiveAt   time.Time  `json:"last_active_at" gorm:"index"`
	TotalTimeSpent int        `json:"total_time_spent"` // seconds, cumulative
	RemainingTime  int        `json:"remaining_time"`   // seconds at last sync, advisory only
}

// AttemptSummary is derived-only: recomputed by the scoring engine when the
// attempt leaves in-progress, never trusted from client input.
type AttemptSummary struct {
	TotalScore         float64 `json:"total_score"`
	MaxScore           float64 `json:"max_score"`
	Accuracy           float64 `json:"accuracy"`
	QuestionsAttempted int     `json:"questions_attempted"`
	QuestionsCorrect   int     `json:"questions_correct"`
	QuestionsIncorrect int     `json:"questions_incorrect"`
	QuestionsSkipped   int     `json:"questions_skipped"`
}

type TestAttempt struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `json:"user_id" gorm:"not null;index:idx_attempt_scope"`
	TestSeriesID    uint            `json:"test_series_id" gorm:"not null;index:idx_attempt_scope"`
	QuestionPaperID uint            `json:"question_paper_id" gorm:"not null;index:idx_attempt_scope"`
	Status          AttemptStatus   `json:"status" gorm:"not null;default:'in-progress';index"`
	Progress        AttemptProgress `json:"progress" gorm:"embedded;embeddedPrefix:progress_"`
	Timing          AttemptTiming   `json:"timing" gorm:"embedded;embeddedPrefix:timing_"`
	Sections        SectionAttempts `json:"sections" gorm:"type:jsonb"`
	Summary         AttemptSummary  `json:"summary" gorm:"embedded;embeddedPrefix:summary_"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// ResponseAt bounds-checks the "sectionIndex-questionIndex" addressing used
// by progress patches. Returns nil when either index is out of range.
func (a *TestAttempt) ResponseAt(sectionIdx, questionIdx int) *Response {
	if sectionIdx < 0 || sectionIdx >= len(a.Sections) {
		return nil
	}
	section := &a.Sections[sectionIdx]
	if questionIdx < 0 || questionIdx >= len(section.Responses) {
		return nil
	}
	return &section.Responses[questionIdx]
}
