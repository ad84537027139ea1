package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/cache"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/nexprep/nexprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Cache keys shared between the catalog reads and the admin-side writers
// that invalidate them.
const (
	cacheKeyCourses = "catalog:courses"
)

func cacheKeyExams(courseID uint) string {
	return fmt.Sprintf("catalog:exams:%d", courseID)
}

func cacheKeySeriesList(courseID, examID uint) string {
	return fmt.Sprintf("catalog:series:%d:%d", courseID, examID)
}

func cacheKeySeries(id uint) string {
	return fmt.Sprintf("catalog:series:%d", id)
}

func cacheKeyPaper(id uint) string {
	return fmt.Sprintf("catalog:paper:%d", id)
}

// CatalogService serves the student-facing read side of the content catalog.
// Reads go through the Redis side-cache; everything returned is student-safe
// (no correct answers).
type CatalogService interface {
	ListCourses(ctx context.Context) ([]dto.CourseDTO, error)
	ListExams(ctx context.Context, courseID uint) ([]dto.ExamDTO, error)
	ListTestSeries(ctx context.Context, courseID, examID uint) ([]dto.TestSeriesDTO, error)
	GetTestSeries(ctx context.Context, id uint) (*dto.TestSeriesDetailDTO, error)
	GetQuestionPaper(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error)
}

type catalogService struct {
	courseRepo repository.CourseRepository
	examRepo   repository.ExamRepository
	seriesRepo repository.TestSeriesRepository
	paperRepo  repository.QuestionPaperRepository
	cache      *cache.Cache
}

func NewCatalogService(
	courseRepo repository.CourseRepository,
	examRepo repository.ExamRepository,
	seriesRepo repository.TestSeriesRepository,
	paperRepo repository.QuestionPaperRepository,
	cache *cache.Cache,
) CatalogService {
	return &catalogService{
		courseRepo: courseRepo,
		examRepo:   examRepo,
		seriesRepo: seriesRepo,
		paperRepo:  paperRepo,
		cache:      cache,
	}
}

func (s *catalogService) ListCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	var courses []dto.CourseDTO
	err := s.cache.GetOrSet(ctx, cacheKeyCourses, &courses, func() (interface{}, error) {
		records, err := s.courseRepo.FindAll()
		if err != nil {
			return nil, err
		}
		out := make([]dto.CourseDTO, 0, len(records))
		if err := copier.Copy(&out, &records); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, apperror.Internal("failed to list courses", err)
	}
	return courses, nil
}

func (s *catalogService) ListExams(ctx context.Context, courseID uint) ([]dto.ExamDTO, error) {
	var exams []dto.ExamDTO
	err := s.cache.GetOrSet(ctx, cacheKeyExams(courseID), &exams, func() (interface{}, error) {
		records, err := s.examRepo.ListByCourse(courseID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ExamDTO, 0, len(records))
		if err := copier.Copy(&out, &records); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, apperror.Internal("failed to list exams", err)
	}
	return exams, nil
}

func (s *catalogService) ListTestSeries(ctx context.Context, courseID, examID uint) ([]dto.TestSeriesDTO, error) {
	var series []dto.TestSeriesDTO
	err := s.cache.GetOrSet(ctx, cacheKeySeriesList(courseID, examID), &series, func() (interface{}, error) {
		records, err := s.seriesRepo.List(courseID, examID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.TestSeriesDTO, 0, len(records))
		if err := copier.Copy(&out, &records); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, apperror.Internal("failed to list test series", err)
	}
	return series, nil
}

func (s *catalogService) GetTestSeries(ctx context.Context, id uint) (*dto.TestSeriesDetailDTO, error) {
	var detail dto.TestSeriesDetailDTO
	err := s.cache.GetOrSet(ctx, cacheKeySeries(id), &detail, func() (interface{}, error) {
		series, err := s.seriesRepo.FindByIDWithPapers(id)
		if err != nil {
			return nil, err
		}
		out := dto.TestSeriesDetailDTO{}
		if err := copier.Copy(&out.TestSeriesDTO, series); err != nil {
			return nil, err
		}
		out.QuestionPapers = make([]dto.QuestionPaperSummaryDTO, 0, len(series.QuestionPapers))
		for i := range series.QuestionPapers {
			out.QuestionPapers = append(out.QuestionPapers, toPaperSummaryDTO(&series.QuestionPapers[i]))
		}
		return out, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test series not found")
		}
		return nil, apperror.Internal("failed to load test series", err)
	}
	return &detail, nil
}

// GetQuestionPaper returns the student-safe paper view: published papers
// only, questions stripped of their correct answers.
func (s *catalogService) GetQuestionPaper(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error) {
	var paper dto.QuestionPaperDTO
	err := s.cache.GetOrSet(ctx, cacheKeyPaper(id), &paper, func() (interface{}, error) {
		record, err := s.paperRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if record.Status != model.PaperStatusPublished {
			return nil, gorm.ErrRecordNotFound
		}
		return toStudentPaperDTO(record), nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question paper not found")
		}
		return nil, apperror.Internal("failed to load question paper", err)
	}
	return &paper, nil
}

func toPaperSummaryDTO(paper *model.QuestionPaper) dto.QuestionPaperSummaryDTO {
	return dto.QuestionPaperSummaryDTO{
		ID:             paper.ID,
		Title:          paper.Title,
		Description:    paper.Description,
		IsFree:         paper.IsFree,
		Status:         paper.Status,
		Attempts:       paper.Attempts,
		TotalDuration:  paper.TotalDuration(),
		TotalQuestions: paper.TotalQuestions(),
		CreatedAt:      paper.CreatedAt,
	}
}

// toStudentPaperDTO copies the paper without the grading key. The section
// questions are mapped by hand so CorrectAnswer can never leak through a
// struct copy.
func toStudentPaperDTO(paper *model.QuestionPaper) dto.QuestionPaperDTO {
	sections := make([]dto.SectionDTO, 0, len(paper.Sections))
	for _, section := range paper.Sections {
		questions := make([]dto.QuestionDTO, 0, len(section.Questions))
		for _, q := range section.Questions {
			options := make([]dto.OptionDTO, 0, len(q.Options))
			for _, opt := range q.Options {
				options = append(options, dto.OptionDTO{Prompt: opt.Prompt, Value: opt.Value})
			}
			questions = append(questions, dto.QuestionDTO{
				Type:      q.Type,
				Prompt:    q.Prompt,
				Options:   options,
				PosMarks:  q.PosMarks,
				NegMarks:  q.NegMarks,
				SkipMarks: q.SkipMarks,
			})
		}
		sections = append(sections, dto.SectionDTO{
			Title:        section.Title,
			Duration:     section.Duration,
			MaxMarks:     section.MaxMarks,
			Instructions: section.Instructions,
			Questions:    questions,
		})
	}

	return dto.QuestionPaperDTO{
		ID:             paper.ID,
		TestSeriesID:   paper.TestSeriesID,
		Title:          paper.Title,
		Description:    paper.Description,
		Sections:       sections,
		Languages:      paper.Languages,
		IsFree:         paper.IsFree,
		Status:         paper.Status,
		Attempts:       paper.Attempts,
		TotalDuration:  paper.TotalDuration(),
		TotalQuestions: paper.TotalQuestions(),
		CreatedAt:      paper.CreatedAt,
	}
}

func invalidate(ctx context.Context, c *cache.Cache, keys ...string) {
	c.Del(ctx, keys...)
	log.Debug().Strs("keys", keys).Msg("Invalidated cache keys")
}
