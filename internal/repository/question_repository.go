package repository

import (
	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindExistingIDs(ids []uint) ([]uint, error)
	FindOptionsByIDs(ids []uint) ([]model.Option, error)
	FindRandomPublicByCategory(categoryID uint, limit int) ([]model.Question, error)
	RefreshAttemptStats(questionID uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	// Creates associated options in the same insert.
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.display_order ASC")
	}).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindExistingIDs returns the subset of ids that refer to real questions, so
// callers can validate a whole batch before writing anything.
func (r *questionRepository) FindExistingIDs(ids []uint) ([]uint, error) {
	var found []uint
	err := r.db.Model(&model.Question{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

func (r *questionRepository) FindOptionsByIDs(ids []uint) ([]model.Option, error) {
	var options []model.Option
	err := r.db.Where("id IN ?", ids).Find(&options).Error
	return options, err
}

func (r *questionRepository) FindRandomPublicByCategory(categoryID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("category_id = ? AND status = ?", categoryID, model.QuestionStatusPublic).
		Order("RANDOM()").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// RefreshAttemptStats recomputes times_attempted/times_correct from the
// recorded non-skipped responses, mirroring how answers are counted elsewhere.
func (r *questionRepository) RefreshAttemptStats(questionID uint) error {
	return r.db.Exec(`
		UPDATE questions SET
			times_attempted = (
				SELECT COUNT(*) FROM attempt_answers
				WHERE attempt_answers.question_id = questions.id
				AND attempt_answers.is_skipped = false
				AND attempt_answers.deleted_at IS NULL
			),
			times_correct = (
				SELECT COUNT(*) FROM attempt_answers
				WHERE attempt_answers.question_id = questions.id
				AND attempt_answers.is_correct = true
				AND attempt_answers.deleted_at IS NULL
			)
		WHERE questions.id = ?`, questionID).Error
}
