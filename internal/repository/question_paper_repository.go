package repository

import (
	"github.com/nexprep/nexprep/internal/model"
	"gorm.io/gorm"
)

type QuestionPaperRepository interface {
	Create(paper *model.QuestionPaper) error
	Update(paper *model.QuestionPaper) error
	Delete(id uint) error
	FindByID(id uint) (*model.QuestionPaper, error)
	ListByTestSeries(testSeriesID uint, status model.PaperStatus) ([]model.QuestionPaper, error)
	IncrementAttemptCount(id uint) error
}

type questionPaperRepository struct {
	db *gorm.DB
}

func NewQuestionPaperRepository(db *gorm.DB) QuestionPaperRepository {
	return &questionPaperRepository{db: db}
}

func (r *questionPaperRepository) Create(paper *model.QuestionPaper) error {
	return r.db.Create(paper).Error
}

func (r *questionPaperRepository) Update(paper *model.QuestionPaper) error {
	return r.db.Save(paper).Error
}

func (r *questionPaperRepository) Delete(id uint) error {
	return r.db.Delete(&model.QuestionPaper{}, id).Error
}

func (r *questionPaperRepository) FindByID(id uint) (*model.QuestionPaper, error) {
	var paper model.QuestionPaper
	if err := r.db.First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *questionPaperRepository) ListByTestSeries(testSeriesID uint, status model.PaperStatus) ([]model.QuestionPaper, error) {
	query := r.db.Where("test_series_id = ?", testSeriesID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var papers []model.QuestionPaper
	err := query.Order("created_at DESC").Find(&papers).Error
	return papers, err
}

// IncrementAttemptCount bumps the paper's attempt counter atomically in the
// database. Callers treat failures as non-fatal.
func (r *questionPaperRepository) IncrementAttemptCount(id uint) error {
	return r.db.Model(&model.QuestionPaper{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}
