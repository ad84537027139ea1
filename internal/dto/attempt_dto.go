package dto

import (
	"time"

	"github.com/nexprep/nexprep/internal/model"
)

// AttemptProgressPatchDTO is the partial progress patch sent by the test
// player while an attempt is live. Fields are deliberately loosely typed:
// the contract is "apply what is well-typed, silently ignore the rest", so a
// stale client never loses a whole heartbeat over one bad field. Keys of the
// per-question maps are "sectionIndex-questionIndex".
type AttemptProgressPatchDTO struct {
	CurrentSection   interface{}            `json:"currentSection"`
	CurrentQuestion  interface{}            `json:"currentQuestion"`
	VisitedQuestions map[string]interface{} `json:"visitedQuestions"`
	TimeSpent        interface{}            `json:"timeSpent"`
	RemainingTime    interface{}            `json:"remainingTime"`
	SelectedOptions  map[string]interface{} `json:"selectedOptions"`
	MarkedForReview  map[string]interface{} `json:"markedForReview"`
}

// SubmitAttemptDTO carries the final flush sent with a submission.
type SubmitAttemptDTO struct {
	SelectedOptions map[string]interface{} `json:"selectedOptions"`
	TimeSpent       interface{}            `json:"timeSpent"`
	RemainingTime   interface{}            `json:"remainingTime"`
}

type ResponseDTO struct {
	QuestionIndex     int                `json:"questionIndex"`
	Type              model.QuestionType `json:"type"`
	SelectedOption    *model.AnswerValue `json:"selectedOption"`
	IsMarkedForReview bool               `json:"isMarkedForReview"`
	TimeSpent         int                `json:"timeSpent"`
	IsCorrect         bool               `json:"isCorrect"`
	MarksAwarded      float64            `json:"marksAwarded"`
}

type SectionAttemptDTO struct {
	SectionTitle string        `json:"sectionTitle"`
	Responses    []ResponseDTO `json:"responses"`
	TimeSpent    int           `json:"timeSpent"`
	Score        float64       `json:"score"`
	MaxScore     float64       `json:"maxScore"`
}

type AttemptProgressDTO struct {
	CurrentSection   int                    `json:"currentSection"`
	CurrentQuestion  int                    `json:"currentQuestion"`
	VisitedQuestions map[string]interface{} `json:"visitedQuestions"`
}

type AttemptTimingDTO struct {
	StartedAt      time.Time  `json:"startedAt"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	LastActiveAt   time.Time  `json:"lastActiveAt"`
	TotalTimeSpent int        `json:"totalTimeSpent"`
	RemainingTime  int        `json:"remainingTime"`
}

type AttemptSummaryDTO struct {
	TotalScore         float64 `json:"totalScore"`
	MaxScore           float64 `json:"maxScore"`
	Accuracy           float64 `json:"accuracy"`
	QuestionsAttempted int     `json:"questionsAttempted"`
	QuestionsCorrect   int     `json:"questionsCorrect"`
	QuestionsIncorrect int     `json:"questionsIncorrect"`
	QuestionsSkipped   int     `json:"questionsSkipped"`
}

// TestAttemptDTO is the full attempt view returned by every lifecycle
// operation.
type TestAttemptDTO struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"userId"`
	TestSeriesID    uint                `json:"testSeriesId"`
	QuestionPaperID uint                `json:"questionPaperId"`
	Status          model.AttemptStatus `json:"status"`
	Progress        AttemptProgressDTO  `json:"progress"`
	Timing          AttemptTimingDTO    `json:"timing"`
	Sections        []SectionAttemptDTO `json:"sections"`
	Summary         AttemptSummaryDTO   `json:"summary"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// CurrentAttemptDTO wraps getCurrent so "no active attempt" is an explicit
// null payload rather than a 404.
type CurrentAttemptDTO struct {
	TestAttempt *TestAttemptDTO `json:"testAttempt"`
}
