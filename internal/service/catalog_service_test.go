package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/cache"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(paper *model.QuestionPaper) CatalogService {
	var paperRepo *fakePaperRepo
	if paper != nil {
		paperRepo = newFakePaperRepo(paper)
	} else {
		paperRepo = newFakePaperRepo()
	}
	return NewCatalogService(
		newFakeCourseRepo(),
		newFakeExamRepo(),
		newFakeSeriesRepo(),
		paperRepo,
		cache.New(nil, 0),
	)
}

func TestGetQuestionPaper_StudentViewHidesCorrectAnswers(t *testing.T) {
	paper := twoQuestionPaper()
	svc := newCatalogService(paper)

	view, err := svc.GetQuestionPaper(context.Background(), paper.ID)
	require.NoError(t, err)

	require.Len(t, view.Sections, 1)
	require.Len(t, view.Sections[0].Questions, 2)
	assert.Equal(t, "q1", view.Sections[0].Questions[0].Prompt)
	assert.Len(t, view.Sections[0].Questions[0].Options, 3)

	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "correct_answer")
}

func TestGetQuestionPaper_DraftIsInvisible(t *testing.T) {
	paper := twoQuestionPaper()
	paper.Status = model.PaperStatusDraft
	svc := newCatalogService(paper)

	_, err := svc.GetQuestionPaper(context.Background(), paper.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetQuestionPaper_Missing(t *testing.T) {
	svc := newCatalogService(nil)

	_, err := svc.GetQuestionPaper(context.Background(), 404)
	assert.True(t, apperror.IsNotFound(err))
}
