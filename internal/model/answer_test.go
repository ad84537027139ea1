package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValueEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b AnswerValue
		want bool
	}{
		{"mcq same choice", MCQAnswer(2), MCQAnswer(2), true},
		{"mcq different choice", MCQAnswer(2), MCQAnswer(3), false},
		{"numerical same", NumericalAnswer(4.5), NumericalAnswer(4.5), true},
		{"numerical different", NumericalAnswer(4.5), NumericalAnswer(4.50001), false},
		{"descriptive same", DescriptiveAnswer("osmosis"), DescriptiveAnswer("osmosis"), true},
		{"descriptive case sensitive", DescriptiveAnswer("Osmosis"), DescriptiveAnswer("osmosis"), false},
		{"cross type never equal", MCQAnswer(1), NumericalAnswer(1), false},
		{"zero values of different types", AnswerValue{Type: QuestionTypeMCQ}, AnswerValue{Type: QuestionTypeNumerical}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
		})
	}
}

func TestCoerceAnswer(t *testing.T) {
	tests := []struct {
		name   string
		qType  QuestionType
		raw    interface{}
		want   AnswerValue
		wantOK bool
	}{
		{"mcq integral number", QuestionTypeMCQ, float64(2), MCQAnswer(2), true},
		{"mcq zero", QuestionTypeMCQ, float64(0), MCQAnswer(0), true},
		{"mcq fractional rejected", QuestionTypeMCQ, 1.5, AnswerValue{}, false},
		{"mcq negative rejected", QuestionTypeMCQ, float64(-1), AnswerValue{}, false},
		{"mcq string rejected", QuestionTypeMCQ, "2", AnswerValue{}, false},
		{"numerical number", QuestionTypeNumerical, 3.14, NumericalAnswer(3.14), true},
		{"numerical negative ok", QuestionTypeNumerical, -7.0, NumericalAnswer(-7), true},
		{"numerical bool rejected", QuestionTypeNumerical, true, AnswerValue{}, false},
		{"descriptive text", QuestionTypeDescriptive, "photosynthesis", DescriptiveAnswer("photosynthesis"), true},
		{"descriptive blank rejected", QuestionTypeDescriptive, "   ", AnswerValue{}, false},
		{"descriptive number rejected", QuestionTypeDescriptive, float64(1), AnswerValue{}, false},
		{"unknown type rejected", QuestionType("essay"), "text", AnswerValue{}, false},
		{"nil rejected", QuestionTypeMCQ, nil, AnswerValue{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceAnswer(tt.qType, tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
