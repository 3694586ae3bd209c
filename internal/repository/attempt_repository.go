package repository

import (
	"time"

	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithTest(id uint) (*model.Attempt, error)
	FindByIDWithAnswers(id uint) (*model.Attempt, error)
	FindAnswers(attemptID uint) ([]model.AttemptAnswer, error)
	CountAnswered(attemptID uint) (int64, error)
	MarkAbandoned(attemptID uint, endTime time.Time) error
	SaveCompletion(attempt *model.Attempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByIDWithTest preloads the mock test and its question allocations, the
// inputs the scoring engine needs in one read.
func (r *attemptRepository) FindByIDWithTest(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("MockTest").
		Preload("MockTest.TestQuestions").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("MockTest").
		Preload("Answers").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindAnswers is the single-pass snapshot read: all responses for the attempt
// in one query, so scoring never observes a half-written batch.
func (r *attemptRepository) FindAnswers(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.db.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *attemptRepository) CountAnswered(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AttemptAnswer{}).
		Where("attempt_id = ? AND is_skipped = ?", attemptID, false).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) MarkAbandoned(attemptID uint, endTime time.Time) error {
	return r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"status":   model.AttemptStatusAbandoned,
			"end_time": endTime,
		}).Error
}

// SaveCompletion persists the computed score fields and flips the status to
// COMPLETED in one write. The status guard in the WHERE clause makes a
// concurrent double-complete a no-op at the row level.
func (r *attemptRepository) SaveCompletion(attempt *model.Attempt) error {
	return r.db.Model(&model.Attempt{}).
		Where("id = ? AND status <> ?", attempt.ID, model.AttemptStatusCompleted).
		Updates(map[string]interface{}{
			"score_obtained":   attempt.ScoreObtained,
			"total_score":      attempt.TotalScore,
			"percentage":       attempt.Percentage,
			"total_time_taken": attempt.TotalTimeTaken,
			"end_time":         attempt.EndTime,
			"status":           model.AttemptStatusCompleted,
		}).Error
}
