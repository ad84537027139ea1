package scoring

import (
	"testing"

	"github.com/nexprep/nexprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcqQuestion(correct int, pos, neg float64) model.Question {
	return model.Question{
		Type:     model.QuestionTypeMCQ,
		Prompt:   "pick one",
		PosMarks: pos,
		NegMarks: neg,
		Options: []model.Option{
			{Prompt: "A", Value: "a"},
			{Prompt: "B", Value: "b"},
			{Prompt: "C", Value: "c"},
		},
		CorrectAnswer: model.MCQAnswer(correct),
	}
}

func answered(questionIdx int, answer model.AnswerValue) model.Response {
	return model.Response{
		QuestionIndex:  questionIdx,
		Type:           answer.Type,
		SelectedOption: &answer,
	}
}

func TestScoreAttempt_MixedCorrectAndIncorrect(t *testing.T) {
	paper := model.PaperSections{
		{
			Title: "General",
			Questions: []model.Question{
				mcqQuestion(1, 2, 0.5),
				mcqQuestion(2, 2, 0.5),
			},
		},
	}
	sections := model.SectionAttempts{
		{
			SectionTitle: "General",
			MaxScore:     4,
			Responses: []model.Response{
				answered(0, model.MCQAnswer(1)), // correct
				answered(1, model.MCQAnswer(0)), // wrong
			},
		},
	}

	ScoreAttempt(sections, paper)

	assert.True(t, sections[0].Responses[0].IsCorrect)
	assert.Equal(t, 2.0, sections[0].Responses[0].MarksAwarded)
	assert.False(t, sections[0].Responses[1].IsCorrect)
	assert.Equal(t, -0.5, sections[0].Responses[1].MarksAwarded)
	assert.Equal(t, 1.5, sections[0].Score)

	summary := Summarize(sections)
	assert.Equal(t, 1.5, summary.TotalScore)
	assert.Equal(t, 4.0, summary.MaxScore)
	assert.Equal(t, 2, summary.QuestionsAttempted)
	assert.Equal(t, 1, summary.QuestionsCorrect)
	assert.Equal(t, 1, summary.QuestionsIncorrect)
	assert.Equal(t, 0, summary.QuestionsSkipped)
	assert.Equal(t, 50.0, summary.Accuracy)
}

func TestScoreAttempt_AllSkipped(t *testing.T) {
	paper := model.PaperSections{
		{
			Questions: []model.Question{
				mcqQuestion(0, 2, 0.5),
				mcqQuestion(1, 2, 0.5),
			},
		},
	}
	sections := model.SectionAttempts{
		{
			MaxScore: 4,
			Responses: []model.Response{
				{QuestionIndex: 0, Type: model.QuestionTypeMCQ},
				{QuestionIndex: 1, Type: model.QuestionTypeMCQ},
			},
		},
	}

	ScoreAttempt(sections, paper)

	assert.Equal(t, 0.0, sections[0].Score)
	for _, resp := range sections[0].Responses {
		assert.False(t, resp.IsCorrect)
		assert.Equal(t, 0.0, resp.MarksAwarded)
	}

	summary := Summarize(sections)
	assert.Equal(t, 0.0, summary.TotalScore)
	assert.Equal(t, 0, summary.QuestionsAttempted)
	assert.Equal(t, 2, summary.QuestionsSkipped)
	assert.Equal(t, 0.0, summary.Accuracy, "accuracy must be 0, not NaN, when nothing was attempted")
}

func TestScoreAttempt_Deterministic(t *testing.T) {
	paper := model.PaperSections{
		{
			Questions: []model.Question{
				mcqQuestion(1, 3, 1),
				{
					Type:          model.QuestionTypeNumerical,
					Prompt:        "answer 42",
					PosMarks:      4,
					NegMarks:      0,
					CorrectAnswer: model.NumericalAnswer(42),
				},
			},
		},
	}
	sections := model.SectionAttempts{
		{
			MaxScore: 7,
			Responses: []model.Response{
				answered(0, model.MCQAnswer(1)),
				answered(1, model.NumericalAnswer(41.5)),
			},
		},
	}

	ScoreAttempt(sections, paper)
	first := Summarize(sections)

	// Re-scoring the same attempt must not change anything.
	ScoreAttempt(sections, paper)
	second := Summarize(sections)

	assert.Equal(t, first, second)
	assert.Equal(t, 3.0, first.TotalScore)
}

func TestScoreAttempt_SectionCountMismatch(t *testing.T) {
	paper := model.PaperSections{
		{Questions: []model.Question{mcqQuestion(0, 1, 0)}},
		{Questions: []model.Question{mcqQuestion(0, 1, 0)}},
	}
	sections := model.SectionAttempts{
		{
			MaxScore:  1,
			Responses: []model.Response{answered(0, model.MCQAnswer(0))},
		},
	}

	require.NotPanics(t, func() { ScoreAttempt(sections, paper) })
	assert.Equal(t, 1.0, sections[0].Score)
}

func TestScoreAttempt_ResponseCountMismatch(t *testing.T) {
	paper := model.PaperSections{
		{Questions: []model.Question{
			mcqQuestion(0, 1, 0),
			mcqQuestion(1, 1, 0),
			mcqQuestion(2, 1, 0),
		}},
	}
	sections := model.SectionAttempts{
		{
			MaxScore:  3,
			Responses: []model.Response{answered(0, model.MCQAnswer(0))},
		},
	}

	require.NotPanics(t, func() { ScoreAttempt(sections, paper) })
	assert.Equal(t, 1.0, sections[0].Score)
}

func TestScoreAttempt_TypeMismatchNeverCorrect(t *testing.T) {
	paper := model.PaperSections{
		{Questions: []model.Question{
			{
				Type:          model.QuestionTypeNumerical,
				PosMarks:      2,
				NegMarks:      1,
				CorrectAnswer: model.NumericalAnswer(1),
			},
		}},
	}
	// An mcq answer of choice 1 must not match a numerical answer of 1.
	mismatch := model.MCQAnswer(1)
	sections := model.SectionAttempts{
		{
			MaxScore: 2,
			Responses: []model.Response{
				{QuestionIndex: 0, Type: model.QuestionTypeNumerical, SelectedOption: &mismatch},
			},
		},
	}

	ScoreAttempt(sections, paper)

	assert.False(t, sections[0].Responses[0].IsCorrect)
	assert.Equal(t, -1.0, sections[0].Responses[0].MarksAwarded)
}

func TestSummarize_AccuracyRounding(t *testing.T) {
	a1, a2, a3 := model.MCQAnswer(0), model.MCQAnswer(1), model.MCQAnswer(2)
	sections := model.SectionAttempts{
		{
			Score:    1,
			MaxScore: 3,
			Responses: []model.Response{
				{SelectedOption: &a1, IsCorrect: true},
				{SelectedOption: &a2},
				{SelectedOption: &a3},
			},
		},
	}

	summary := Summarize(sections)
	assert.Equal(t, 33.33, summary.Accuracy)
	assert.GreaterOrEqual(t, summary.Accuracy, 0.0)
	assert.LessOrEqual(t, summary.Accuracy, 100.0)
	assert.Equal(t, summary.QuestionsAttempted, summary.QuestionsCorrect+summary.QuestionsIncorrect)
}
