package model

import "strings"

// QuestionType discriminates the shape a question's answer takes.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeNumerical   QuestionType = "numerical"
	QuestionTypeDescriptive QuestionType = "descriptive"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeNumerical, QuestionTypeDescriptive:
		return true
	}
	return false
}

// AnswerValue is a tagged union over the three answer shapes: an option index
// for mcq, a number for numerical, free text for descriptive. Keeping the tag
// explicit makes the scoring comparison exhaustive instead of relying on an
// untyped value.
type AnswerValue struct {
	Type   QuestionType `json:"type"`
	Choice int          `json:"choice,omitempty"`
	Number float64      `json:"number,omitempty"`
	Text   string       `json:"text,omitempty"`
}

func MCQAnswer(choice int) AnswerValue {
	return AnswerValue{Type: QuestionTypeMCQ, Choice: choice}
}

func NumericalAnswer(number float64) AnswerValue {
	return AnswerValue{Type: QuestionTypeNumerical, Number: number}
}

func DescriptiveAnswer(text string) AnswerValue {
	return AnswerValue{Type: QuestionTypeDescriptive, Text: text}
}

// Equals reports exact equality on the answer's own type: integer equality
// for mcq, numeric equality for numerical, string equality for descriptive.
// Values of different types are never equal.
func (v AnswerValue) Equals(other AnswerValue) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case QuestionTypeMCQ:
		return v.Choice == other.Choice
	case QuestionTypeNumerical:
		return v.Number == other.Number
	case QuestionTypeDescriptive:
		return v.Text == other.Text
	}
	return false
}

// CoerceAnswer converts a raw JSON value (as decoded into interface{}) into a
// typed AnswerValue for the given question type. MCQ answers must be
// non-negative integers, numerical answers any JSON number, descriptive
// answers non-blank strings. Returns false for anything else; callers treat
// that as "silently skip", matching the tolerance of the progress patch.
func CoerceAnswer(t QuestionType, raw interface{}) (AnswerValue, bool) {
	switch t {
	case QuestionTypeMCQ:
		n, ok := raw.(float64)
		if !ok || n != float64(int(n)) || n < 0 {
			return AnswerValue{}, false
		}
		return MCQAnswer(int(n)), true
	case QuestionTypeNumerical:
		n, ok := raw.(float64)
		if !ok {
			return AnswerValue{}, false
		}
		return NumericalAnswer(n), true
	case QuestionTypeDescriptive:
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return AnswerValue{}, false
		}
		return DescriptiveAnswer(s), true
	}
	return AnswerValue{}, false
}
