package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/cache"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/nexprep/nexprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ContentService is the admin-side write surface for courses, exams and test
// series. Every successful write invalidates the catalog cache entries the
// change can affect.
type ContentService interface {
	CreateCourse(ctx context.Context, req dto.CourseCreateDTO) (*dto.CourseDTO, error)
	UpdateCourse(ctx context.Context, id uint, req dto.CourseUpdateDTO) (*dto.CourseDTO, error)
	DeleteCourse(ctx context.Context, id uint) error

	CreateExam(ctx context.Context, req dto.ExamCreateDTO) (*dto.ExamDTO, error)
	UpdateExam(ctx context.Context, id uint, req dto.ExamUpdateDTO) (*dto.ExamDTO, error)
	DeleteExam(ctx context.Context, id uint) error

	CreateTestSeries(ctx context.Context, req dto.TestSeriesCreateDTO) (*dto.TestSeriesDTO, error)
	UpdateTestSeries(ctx context.Context, id uint, req dto.TestSeriesUpdateDTO) (*dto.TestSeriesDTO, error)
	DeleteTestSeries(ctx context.Context, id uint) error
}

type contentService struct {
	courseRepo repository.CourseRepository
	examRepo   repository.ExamRepository
	seriesRepo repository.TestSeriesRepository
	cache      *cache.Cache
}

func NewContentService(
	courseRepo repository.CourseRepository,
	examRepo repository.ExamRepository,
	seriesRepo repository.TestSeriesRepository,
	cache *cache.Cache,
) ContentService {
	return &contentService{
		courseRepo: courseRepo,
		examRepo:   examRepo,
		seriesRepo: seriesRepo,
		cache:      cache,
	}
}

func (s *contentService) CreateCourse(ctx context.Context, req dto.CourseCreateDTO) (*dto.CourseDTO, error) {
	course := model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	}
	if err := s.courseRepo.Create(&course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a course with this title already exists")
		}
		return nil, apperror.Internal("failed to create course", err)
	}
	invalidate(ctx, s.cache, cacheKeyCourses)
	log.Info().Uint("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return toCourseDTO(&course)
}

func (s *contentService) UpdateCourse(ctx context.Context, id uint, req dto.CourseUpdateDTO) (*dto.CourseDTO, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "course not found")
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if err := s.courseRepo.Update(course); err != nil {
		return nil, apperror.Internal("failed to update course", err)
	}
	invalidate(ctx, s.cache, cacheKeyCourses)
	return toCourseDTO(course)
}

func (s *contentService) DeleteCourse(ctx context.Context, id uint) error {
	if _, err := s.courseRepo.FindByID(id); err != nil {
		return notFoundOrInternal(err, "course not found")
	}
	if err := s.courseRepo.Delete(id); err != nil {
		return apperror.Internal("failed to delete course", err)
	}
	invalidate(ctx, s.cache, cacheKeyCourses, cacheKeyExams(id))
	return nil
}

func (s *contentService) CreateExam(ctx context.Context, req dto.ExamCreateDTO) (*dto.ExamDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		return nil, notFoundOrInternal(err, "course not found")
	}
	exam := model.Exam{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		return nil, apperror.Internal("failed to create exam", err)
	}
	invalidate(ctx, s.cache, cacheKeyExams(exam.CourseID))
	log.Info().Uint("examID", exam.ID).Uint("courseID", exam.CourseID).Msg("Exam created")
	return toExamDTO(&exam)
}

func (s *contentService) UpdateExam(ctx context.Context, id uint, req dto.ExamUpdateDTO) (*dto.ExamDTO, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "exam not found")
	}
	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if err := s.examRepo.Update(exam); err != nil {
		return nil, apperror.Internal("failed to update exam", err)
	}
	invalidate(ctx, s.cache, cacheKeyExams(exam.CourseID))
	return toExamDTO(exam)
}

func (s *contentService) DeleteExam(ctx context.Context, id uint) error {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		return notFoundOrInternal(err, "exam not found")
	}
	if err := s.examRepo.Delete(id); err != nil {
		return apperror.Internal("failed to delete exam", err)
	}
	invalidate(ctx, s.cache, cacheKeyExams(exam.CourseID))
	return nil
}

func (s *contentService) CreateTestSeries(ctx context.Context, req dto.TestSeriesCreateDTO) (*dto.TestSeriesDTO, error) {
	exam, err := s.examRepo.FindByID(req.ExamID)
	if err != nil {
		return nil, notFoundOrInternal(err, "exam not found")
	}
	if exam.CourseID != req.CourseID {
		return nil, apperror.Validation("exam does not belong to the given course")
	}
	series := model.TestSeries{
		CourseID:    req.CourseID,
		ExamID:      req.ExamID,
		Title:       req.Title,
		Description: req.Description,
		Languages:   model.StringList(req.Languages),
		IsFree:      req.IsFree,
		IsActive:    true,
	}
	if err := s.seriesRepo.Create(&series); err != nil {
		return nil, apperror.Internal("failed to create test series", err)
	}
	s.invalidateSeries(ctx, &series)
	log.Info().Uint("seriesID", series.ID).Str("title", series.Title).Msg("Test series created")
	return toSeriesDTO(&series)
}

func (s *contentService) UpdateTestSeries(ctx context.Context, id uint, req dto.TestSeriesUpdateDTO) (*dto.TestSeriesDTO, error) {
	series, err := s.seriesRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "test series not found")
	}
	if req.Title != nil {
		series.Title = *req.Title
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.Languages != nil {
		series.Languages = model.StringList(req.Languages)
	}
	if req.IsFree != nil {
		series.IsFree = *req.IsFree
	}
	if req.IsActive != nil {
		series.IsActive = *req.IsActive
	}
	if err := s.seriesRepo.Update(series); err != nil {
		return nil, apperror.Internal("failed to update test series", err)
	}
	s.invalidateSeries(ctx, series)
	return toSeriesDTO(series)
}

func (s *contentService) DeleteTestSeries(ctx context.Context, id uint) error {
	series, err := s.seriesRepo.FindByID(id)
	if err != nil {
		return notFoundOrInternal(err, "test series not found")
	}
	if err := s.seriesRepo.Delete(id); err != nil {
		return apperror.Internal("failed to delete test series", err)
	}
	s.invalidateSeries(ctx, series)
	return nil
}

func (s *contentService) invalidateSeries(ctx context.Context, series *model.TestSeries) {
	invalidate(ctx, s.cache,
		cacheKeySeries(series.ID),
		cacheKeySeriesList(series.CourseID, series.ExamID),
		cacheKeySeriesList(0, 0),
	)
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal("content store failure", err)
}

func toCourseDTO(course *model.Course) (*dto.CourseDTO, error) {
	var resp dto.CourseDTO
	if err := copier.Copy(&resp, course); err != nil {
		return nil, apperror.Internal("error preparing course response", err)
	}
	return &resp, nil
}

func toExamDTO(exam *model.Exam) (*dto.ExamDTO, error) {
	var resp dto.ExamDTO
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, apperror.Internal("error preparing exam response", err)
	}
	return &resp, nil
}

func toSeriesDTO(series *model.TestSeries) (*dto.TestSeriesDTO, error) {
	var resp dto.TestSeriesDTO
	if err := copier.Copy(&resp, series); err != nil {
		return nil, apperror.Internal("error preparing test series response", err)
	}
	return &resp, nil
}
