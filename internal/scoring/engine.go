// Package scoring evaluates a submitted test attempt against the
// authoritative question paper. It is pure: no I/O, no clocks, and identical
// inputs always produce identical output, so a completed attempt can be
// re-scored for audit and yield the same result.
package scoring

import (
	"math"

	"github.com/nexprep/nexprep/internal/model"
)

// ScoreAttempt grades every answered response in place. Paper section i is
// paired with attempt section i; an attempt section missing at some index is
// skipped without error, because attempts are immutable structural snapshots
// and a mismatch means the paper drifted after creation, not that the attempt
// is corrupt.
//
// Marking is plain positive/negative: a correct answer earns posMarks, an
// incorrect one loses negMarks, an unanswered question keeps its defaults
// (skipMarks is tracked on the question model but never applied here).
func ScoreAttempt(sections model.SectionAttempts, paper model.PaperSections) {
	for sectionIdx := range paper {
		if sectionIdx >= len(sections) {
			break
		}
		paperSection := &paper[sectionIdx]
		attemptSection := &sections[sectionIdx]

		sectionScore := 0.0
		for questionIdx := range paperSection.Questions {
			if questionIdx >= len(attemptSection.Responses) {
				break
			}
			question := &paperSection.Questions[questionIdx]
			response := &attemptSection.Responses[questionIdx]

			if response.SelectedOption == nil {
				response.IsCorrect = false
				response.MarksAwarded = 0
				continue
			}

			if response.SelectedOption.Equals(question.CorrectAnswer) {
				response.IsCorrect = true
				response.MarksAwarded = question.PosMarks
				sectionScore += question.PosMarks
			} else {
				response.IsCorrect = false
				response.MarksAwarded = -question.NegMarks
				sectionScore -= question.NegMarks
			}
		}
		attemptSection.Score = sectionScore
	}
}

// Summarize recomputes the derived attempt summary from its sections. Called
// whenever an attempt leaves in-progress; the result is never taken from
// client input.
func Summarize(sections model.SectionAttempts) model.AttemptSummary {
	var summary model.AttemptSummary

	for _, section := range sections {
		summary.TotalScore += section.Score
		summary.MaxScore += section.MaxScore

		for _, response := range section.Responses {
			if response.SelectedOption == nil {
				summary.QuestionsSkipped++
				continue
			}
			summary.QuestionsAttempted++
			if response.IsCorrect {
				summary.QuestionsCorrect++
			} else {
				summary.QuestionsIncorrect++
			}
		}
	}

	if summary.QuestionsAttempted > 0 {
		accuracy := float64(summary.QuestionsCorrect) / float64(summary.QuestionsAttempted) * 100
		summary.Accuracy = math.Round(accuracy*100) / 100
	}

	return summary
}
