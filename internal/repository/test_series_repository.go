package repository

import (
	"github.com/nexprep/nexprep/internal/model"
	"gorm.io/gorm"
)

type TestSeriesRepository interface {
	Create(series *model.TestSeries) error
	Update(series *model.TestSeries) error
	Delete(id uint) error
	FindByID(id uint) (*model.TestSeries, error)
	FindByIDWithPapers(id uint) (*model.TestSeries, error)
	List(courseID, examID uint) ([]model.TestSeries, error)
	IncrementStudentCount(id uint) error
}

type testSeriesRepository struct {
	db *gorm.DB
}

func NewTestSeriesRepository(db *gorm.DB) TestSeriesRepository {
	return &testSeriesRepository{db: db}
}

func (r *testSeriesRepository) Create(series *model.TestSeries) error {
	return r.db.Create(series).Error
}

func (r *testSeriesRepository) Update(series *model.TestSeries) error {
	return r.db.Save(series).Error
}

func (r *testSeriesRepository) Delete(id uint) error {
	return r.db.Delete(&model.TestSeries{}, id).Error
}

func (r *testSeriesRepository) FindByID(id uint) (*model.TestSeries, error) {
	var series model.TestSeries
	if err := r.db.Preload("Exam").First(&series, id).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *testSeriesRepository) FindByIDWithPapers(id uint) (*model.TestSeries, error) {
	var series model.TestSeries
	err := r.db.
		Preload("Exam").
		Preload("QuestionPapers", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", model.PaperStatusPublished).Order("question_papers.created_at ASC")
		}).
		First(&series, id).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

// List filters by course and/or exam when the ids are non-zero.
func (r *testSeriesRepository) List(courseID, examID uint) ([]model.TestSeries, error) {
	query := r.db.Model(&model.TestSeries{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if examID != 0 {
		query = query.Where("exam_id = ?", examID)
	}
	var series []model.TestSeries
	err := query.Order("created_at DESC").Find(&series).Error
	return series, err
}

func (r *testSeriesRepository) IncrementStudentCount(id uint) error {
	return r.db.Model(&model.TestSeries{}).
		Where("id = ?", id).
		UpdateColumn("student_count", gorm.Expr("student_count + 1")).Error
}
