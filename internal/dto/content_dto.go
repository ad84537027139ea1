package dto

import (
	"time"

	"github.com/nexprep/nexprep/internal/model"
)

// --- Courses & exams ---

type CourseCreateDTO struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type CourseUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=3"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type CourseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExamCreateDTO struct {
	CourseID    uint   `json:"course_id" binding:"required"`
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description"`
}

type ExamUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=3"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type ExamDTO struct {
	ID          uint      `json:"id"`
	CourseID    uint      `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Test series ---

type TestSeriesCreateDTO struct {
	CourseID    uint     `json:"course_id" binding:"required"`
	ExamID      uint     `json:"exam_id" binding:"required"`
	Title       string   `json:"title" binding:"required,min=3"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	IsFree      bool     `json:"is_free"`
}

type TestSeriesUpdateDTO struct {
	Title       *string  `json:"title" binding:"omitempty,min=3"`
	Description *string  `json:"description"`
	Languages   []string `json:"languages"`
	IsFree      *bool    `json:"is_free"`
	IsActive    *bool    `json:"is_active"`
}

type TestSeriesDTO struct {
	ID           uint      `json:"id"`
	CourseID     uint      `json:"course_id"`
	ExamID       uint      `json:"exam_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Languages    []string  `json:"languages,omitempty"`
	IsFree       bool      `json:"is_free"`
	IsActive     bool      `json:"is_active"`
	StudentCount int64     `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type TestSeriesDetailDTO struct {
	TestSeriesDTO
	QuestionPapers []QuestionPaperSummaryDTO `json:"question_papers"`
}

// --- Question papers ---

// QuestionCreateDTO declares one question for the authoring side.
// CorrectAnswer arrives as the raw JSON value of the question's answer type
// (option index, number, or string) and is coerced server-side.
type QuestionCreateDTO struct {
	Type          model.QuestionType `json:"type" binding:"required,oneof=mcq numerical descriptive"`
	Prompt        string             `json:"prompt" binding:"required"`
	Options       []OptionDTO        `json:"options" binding:"omitempty,dive"`
	PosMarks      float64            `json:"pos_marks" binding:"omitempty,gte=0"`
	NegMarks      float64            `json:"neg_marks" binding:"omitempty,gte=0"`
	SkipMarks     float64            `json:"skip_marks"`
	CorrectAnswer interface{}        `json:"correct_answer" binding:"required"`
}

type OptionDTO struct {
	Prompt string `json:"prompt" binding:"required"`
	Value  string `json:"value" binding:"required"`
}

type SectionCreateDTO struct {
	Title        string              `json:"title" binding:"required"`
	Duration     int                 `json:"duration" binding:"required,min=1"` // minutes
	MaxMarks     float64             `json:"max_marks" binding:"omitempty,gte=0"`
	Instructions []string            `json:"instructions"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

type QuestionPaperCreateDTO struct {
	Title       string             `json:"title" binding:"required,min=3"`
	Description string             `json:"description" binding:"required"`
	Sections    []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
	Languages   []string           `json:"languages"`
	IsFree      bool               `json:"is_free"`
}

type QuestionPaperUpdateDTO struct {
	Title       *string  `json:"title" binding:"omitempty,min=3"`
	Description *string  `json:"description"`
	Languages   []string `json:"languages"`
	IsFree      *bool    `json:"is_free"`
}

// QuestionDTO is the student-safe question view: no correct answer, ever.
type QuestionDTO struct {
	Type      model.QuestionType `json:"type"`
	Prompt    string             `json:"prompt"`
	Options   []OptionDTO        `json:"options,omitempty"`
	PosMarks  float64            `json:"pos_marks"`
	NegMarks  float64            `json:"neg_marks"`
	SkipMarks float64            `json:"skip_marks"`
}

type SectionDTO struct {
	Title        string        `json:"title"`
	Duration     int           `json:"duration"`
	MaxMarks     float64       `json:"max_marks"`
	Instructions []string      `json:"instructions,omitempty"`
	Questions    []QuestionDTO `json:"questions"`
}

type QuestionPaperDTO struct {
	ID             uint              `json:"id"`
	TestSeriesID   uint              `json:"test_series_id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Sections       []SectionDTO      `json:"sections"`
	Languages      []string          `json:"languages,omitempty"`
	IsFree         bool              `json:"is_free"`
	Status         model.PaperStatus `json:"status"`
	Attempts       int64             `json:"attempts"`
	TotalDuration  int               `json:"total_duration"`
	TotalQuestions int               `json:"total_questions"`
	CreatedAt      time.Time         `json:"created_at"`
}

type QuestionPaperSummaryDTO struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	IsFree         bool              `json:"is_free"`
	Status         model.PaperStatus `json:"status"`
	Attempts       int64             `json:"attempts"`
	TotalDuration  int               `json:"total_duration"`
	TotalQuestions int               `json:"total_questions"`
	CreatedAt      time.Time         `json:"created_at"`
}

// QuestionImportDTO is the JSON bulk-import payload for one paper section.
type QuestionImportDTO struct {
	SectionIndex int                 `json:"section_index"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// ImportResultDTO reports the outcome of a bulk question import.
type ImportResultDTO struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}
