package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PaperStatus string

const (
	PaperStatusDraft     PaperStatus = "draft"
	PaperStatusPublished PaperStatus = "published"
	PaperStatusArchived  PaperStatus = "archived"
)

// Option is one selectable choice of an mcq question.
type Option struct {
	Prompt string `json:"prompt"`
	Value  string `json:"value"`
}

// Question is the authoring-side question definition, embedded in a paper
// section. CorrectAnswer is never exposed on student-facing reads.
type Question struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []Option     `json:"options,omitempty"`
	PosMarks      float64      `json:"pos_marks"`
	NegMarks      float64      `json:"neg_marks"`
	SkipMarks     float64      `json:"skip_marks"`
	CorrectAnswer AnswerValue  `json:"correct_answer"`
}

// Section is a named, timed subdivision of a question paper.
type Section struct {
	Title        string     `json:"title"`
	Duration     int        `json:"duration"` // minutes
	MaxMarks     float64    `json:"max_marks"`
	Instructions []string   `json:"instructions,omitempty"`
	Questions    []Question `json:"questions"`
}

// PaperSections is stored as a single jsonb column: sections and their
// questions are owned, index-addressed sequences, not rows with identity.
type PaperSections []Section

func (s PaperSections) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *PaperSections) Scan(value interface{}) error {
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
		return errors.New("unsupported type for PaperSections")
	}
	return json.Unmarshal(data, s)
}

// StringList is a jsonb-backed list of strings (paper languages).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}
	return json.Unmarshal(data, l)
}

type QuestionPaper struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TestSeriesID uint           `json:"test_series_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty"`
	Sections     PaperSections  `json:"sections" gorm:"type:jsonb"`
	Languages    StringList     `json:"languages,omitempty" gorm:"type:jsonb"`
	IsFree       bool           `json:"is_free" gorm:"not null;default:false"`
	Status       PaperStatus    `json:"status" gorm:"not null;default:'draft';index"`
	Attempts     int64          `json:"attempts" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TotalDuration is the sum of all section durations, in minutes.
func (p *QuestionPaper) TotalDuration() int {
	total := 0
	for _, s := range p.Sections {
		total += s.Duration
	}
	return total
}

// TotalQuestions counts questions across all sections.
func (p *QuestionPaper) TotalQuestions() int {
	total := 0
	for _, s := range p.Sections {
		total += len(s.Questions)
	}
	return total
}
