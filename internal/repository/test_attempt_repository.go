package repository

import (
	"github.com/nexprep/nexprep/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestAttemptRepository is the attempt store. All reads scope by the owning
// user; Mutate is the single write path for live attempts so every
// read-modify-write of the sections/progress document happens under a row
// lock.
type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	FindInProgress(userID, testSeriesID, paperID uint) (*model.TestAttempt, error)
	FindCurrent(userID, testSeriesID, paperID uint, includePaused bool) (*model.TestAttempt, error)
	FindCompletedByID(attemptID, userID, testSeriesID, paperID uint) (*model.TestAttempt, error)
	FindLatestCompleted(userID, testSeriesID, paperID uint) (*model.TestAttempt, error)
	ListByUserAndSeries(userID, testSeriesID uint, status model.AttemptStatus) ([]model.TestAttempt, error)
	Mutate(attemptID, userID, testSeriesID, paperID uint, fn func(*model.TestAttempt) error) (*model.TestAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

// Create inserts a fresh attempt. The partial unique index on
// (user_id, test_series_id, question_paper_id) WHERE status = 'in-progress'
// makes a concurrent double-start surface as gorm.ErrDuplicatedKey; the
// service folds that into a resume.
func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) FindInProgress(userID, testSeriesID, paperID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Where("user_id = ? AND test_series_id = ? AND question_paper_id = ? AND status = ?",
			userID, testSeriesID, paperID, model.AttemptInProgress).
		Order("timing_last_active_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindCurrent(userID, testSeriesID, paperID uint, includePaused bool) (*model.TestAttempt, error) {
	statuses := []model.AttemptStatus{model.AttemptInProgress}
	if includePaused {
		statuses = append(statuses, model.AttemptPaused)
	}
	var attempt model.TestAttempt
	err := r.db.
		Where("user_id = ? AND test_series_id = ? AND question_paper_id = ? AND status IN ?",
			userID, testSeriesID, paperID, statuses).
		Order("timing_last_active_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindCompletedByID(attemptID, userID, testSeriesID, paperID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Where("id = ? AND user_id = ? AND test_series_id = ? AND question_paper_id = ? AND status = ?",
			attemptID, userID, testSeriesID, paperID, model.AttemptCompleted).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindLatestCompleted(userID, testSeriesID, paperID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Where("user_id = ? AND test_series_id = ? AND question_paper_id = ? AND status = ?",
			userID, testSeriesID, paperID, model.AttemptCompleted).
		Order("timing_submitted_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) ListByUserAndSeries(userID, testSeriesID uint, status model.AttemptStatus) ([]model.TestAttempt, error) {
	query := r.db.Where("user_id = ? AND test_series_id = ?", userID, testSeriesID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var attempts []model.TestAttempt
	err := query.Order("timing_started_at DESC, id DESC").Find(&attempts).Error
	return attempts, err
}

// Mutate loads the matching in-progress attempt FOR UPDATE, applies fn and
// persists the whole document in one transaction. Either every change in fn
// lands or none does, and two concurrent mutations of the same attempt are
// serialized by the row lock.
func (r *testAttemptRepository) Mutate(attemptID, userID, testSeriesID, paperID uint, fn func(*model.TestAttempt) error) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ? AND test_series_id = ? AND question_paper_id = ? AND status = ?",
				attemptID, userID, testSeriesID, paperID, model.AttemptInProgress).
			First(&attempt).Error; err != nil {
			return err
		}
		if err := fn(&attempt); err != nil {
			return err
		}
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
