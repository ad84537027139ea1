package repository

import (
	"github.com/nexprep/nexprep/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	Update(exam *model.Exam) error
	Delete(id uint) error
	FindByID(id uint) (*model.Exam, error)
	ListByCourse(courseID uint) ([]model.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) Delete(id uint) error {
	return r.db.Delete(&model.Exam{}, id).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// ListByCourse returns all exams, or only the given course's when courseID is
// non-zero.
func (r *examRepository) ListByCourse(courseID uint) ([]model.Exam, error) {
	query := r.db.Model(&model.Exam{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	var exams []model.Exam
	err := query.Order("created_at DESC").Find(&exams).Error
	return exams, err
}
