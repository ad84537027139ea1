package service

import (
	"context"
	"strings"
	"testing"

	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/cache"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSeriesRepo struct {
	nextID uint
	series map[uint]*model.TestSeries
}

func newFakeSeriesRepo(series ...*model.TestSeries) *fakeSeriesRepo {
	r := &fakeSeriesRepo{series: make(map[uint]*model.TestSeries)}
	for _, s := range series {
		r.series[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeSeriesRepo) Create(s *model.TestSeries) error {
	if s.ID == 0 {
		r.nextID++
		s.ID = r.nextID
	}
	r.series[s.ID] = s
	return nil
}

func (r *fakeSeriesRepo) Update(s *model.TestSeries) error { r.series[s.ID] = s; return nil }
func (r *fakeSeriesRepo) Delete(id uint) error             { delete(r.series, id); return nil }

func (r *fakeSeriesRepo) FindByID(id uint) (*model.TestSeries, error) {
	s, ok := r.series[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSeriesRepo) FindByIDWithPapers(id uint) (*model.TestSeries, error) {
	return r.FindByID(id)
}

func (r *fakeSeriesRepo) List(courseID, examID uint) ([]model.TestSeries, error) {
	var out []model.TestSeries
	for _, s := range r.series {
		if (courseID == 0 || s.CourseID == courseID) && (examID == 0 || s.ExamID == examID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSeriesRepo) IncrementStudentCount(id uint) error {
	if s, ok := r.series[id]; ok {
		s.StudentCount++
	}
	return nil
}

func newPaperService() (QuestionPaperService, *fakePaperRepo) {
	paperRepo := newFakePaperRepo()
	seriesRepo := newFakeSeriesRepo(&model.TestSeries{ID: 3, CourseID: 1, ExamID: 2, Title: "Mock Series"})
	return NewQuestionPaperService(paperRepo, seriesRepo, cache.New(nil, 0)), paperRepo
}

func validPaperCreate() dto.QuestionPaperCreateDTO {
	return dto.QuestionPaperCreateDTO{
		Title:       "Mock Test 1",
		Description: "full length mock",
		Sections: []dto.SectionCreateDTO{
			{
				Title:    "Reasoning",
				Duration: 20,
				Questions: []dto.QuestionCreateDTO{
					{
						Type:   model.QuestionTypeMCQ,
						Prompt: "q1",
						Options: []dto.OptionDTO{
							{Prompt: "A", Value: "a"},
							{Prompt: "B", Value: "b"},
						},
						PosMarks:      2,
						NegMarks:      0.5,
						CorrectAnswer: float64(1),
					},
					{
						Type:          model.QuestionTypeNumerical,
						Prompt:        "q2",
						PosMarks:      2,
						CorrectAnswer: 42.5,
					},
				},
			},
		},
	}
}

func TestCreatePaper_CoercesCorrectAnswers(t *testing.T) {
	svc, repo := newPaperService()

	paper, err := svc.Create(context.Background(), 3, validPaperCreate())
	require.NoError(t, err)

	assert.Equal(t, model.PaperStatusDraft, paper.Status)
	assert.Equal(t, 20, paper.TotalDuration)
	assert.Equal(t, 2, paper.TotalQuestions)
	assert.Equal(t, 4.0, paper.Sections[0].MaxMarks)

	stored := repo.papers[paper.ID]
	assert.Equal(t, model.MCQAnswer(1), stored.Sections[0].Questions[0].CorrectAnswer)
	assert.Equal(t, model.NumericalAnswer(42.5), stored.Sections[0].Questions[1].CorrectAnswer)
}

func TestCreatePaper_RejectsMismatchedAnswer(t *testing.T) {
	svc, _ := newPaperService()

	req := validPaperCreate()
	req.Sections[0].Questions[0].CorrectAnswer = "b"

	_, err := svc.Create(context.Background(), 3, req)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreatePaper_RejectsOutOfRangeCorrectOption(t *testing.T) {
	svc, _ := newPaperService()

	req := validPaperCreate()
	req.Sections[0].Questions[0].CorrectAnswer = float64(5)

	_, err := svc.Create(context.Background(), 3, req)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreatePaper_UnknownSeries(t *testing.T) {
	svc, _ := newPaperService()

	_, err := svc.Create(context.Background(), 99, validPaperCreate())
	assert.True(t, apperror.IsNotFound(err))
}

func TestPaperLifecycle_PublishAndArchive(t *testing.T) {
	svc, _ := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)

	published, err := svc.Publish(ctx, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusPublished, published.Status)

	// Publishing twice is a conflict, as is deleting while published.
	_, err = svc.Publish(ctx, paper.ID)
	assert.True(t, apperror.IsConflict(err))
	assert.True(t, apperror.IsConflict(svc.Delete(ctx, paper.ID)))

	archived, err := svc.Archive(ctx, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaperStatusArchived, archived.Status)

	require.NoError(t, svc.Delete(ctx, paper.ID))
}

func TestPublish_EmptyPaperRejected(t *testing.T) {
	svc, _ := newPaperService()
	ctx := context.Background()

	req := validPaperCreate()
	req.Sections[0].Questions = nil
	paper, err := svc.Create(ctx, 3, req)
	require.NoError(t, err)

	_, err = svc.Publish(ctx, paper.ID)
	assert.True(t, apperror.IsValidation(err))
}

func TestImportQuestionsJSON_SkipsInvalidRows(t *testing.T) {
	svc, repo := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)

	result, err := svc.ImportQuestionsJSON(ctx, paper.ID, dto.QuestionImportDTO{
		SectionIndex: 0,
		Questions: []dto.QuestionCreateDTO{
			{
				Type:          model.QuestionTypeDescriptive,
				Prompt:        "explain osmosis",
				CorrectAnswer: "osmosis",
			},
			{
				Type:          model.QuestionTypeMCQ,
				Prompt:        "broken: no options",
				CorrectAnswer: float64(0),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Warnings, 1)
	assert.Len(t, repo.papers[paper.ID].Sections[0].Questions, 3)
}

func TestImportQuestionsJSON_SectionIndexOutOfRange(t *testing.T) {
	svc, _ := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)

	_, err = svc.ImportQuestionsJSON(ctx, paper.ID, dto.QuestionImportDTO{
		SectionIndex: 5,
		Questions:    []dto.QuestionCreateDTO{{Type: model.QuestionTypeNumerical, Prompt: "q", CorrectAnswer: 1.0}},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestImportQuestionsJSON_PublishedPaperRejected(t *testing.T) {
	svc, _ := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)
	_, err = svc.Publish(ctx, paper.ID)
	require.NoError(t, err)

	_, err = svc.ImportQuestionsJSON(ctx, paper.ID, dto.QuestionImportDTO{
		SectionIndex: 0,
		Questions:    []dto.QuestionCreateDTO{{Type: model.QuestionTypeNumerical, Prompt: "q", CorrectAnswer: 1.0}},
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestImportQuestionsCSV(t *testing.T) {
	svc, repo := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)

	csvData := strings.Join([]string{
		"type,prompt,options,pos_marks,neg_marks,correct_answer",
		`mcq,capital of France?,Paris|London|Berlin,2,0.5,0`,
		`numerical,square root of 81?,,2,,9`,
		`descriptive,define inertia,,3,,inertia is resistance to change in motion`,
		`mcq,broken row,OnlyOneOption,1,0,0`,
		`numerical,bad answer,,1,,not-a-number`,
	}, "\n")

	result, err := svc.ImportQuestionsCSV(ctx, paper.ID, 0, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Warnings, 2)

	questions := repo.papers[paper.ID].Sections[0].Questions
	require.Len(t, questions, 5)
	imported := questions[2]
	assert.Equal(t, model.QuestionTypeMCQ, imported.Type)
	assert.Equal(t, model.MCQAnswer(0), imported.CorrectAnswer)
	require.Len(t, imported.Options, 3)
	assert.Equal(t, "Paris", imported.Options[0].Value)
	assert.Equal(t, model.NumericalAnswer(9), questions[3].CorrectAnswer)
	assert.Equal(t, 3.0, questions[4].PosMarks)
}

func TestImportQuestionsCSV_BadHeader(t *testing.T) {
	svc, _ := newPaperService()
	ctx := context.Background()

	paper, err := svc.Create(ctx, 3, validPaperCreate())
	require.NoError(t, err)

	_, err = svc.ImportQuestionsCSV(ctx, paper.ID, 0, strings.NewReader("prompt,answer\nq,1"))
	assert.True(t, apperror.IsValidation(err))
}
