package repository

import (
	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Upsert(answer *model.AttemptAnswer) error
	UpsertBatch(answers []model.AttemptAnswer) ([]model.AttemptAnswer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert enforces the one-row-per-(attempt, question) invariant: an existing
// response is overwritten in place, never duplicated.
func (r *answerRepository) Upsert(answer *model.AttemptAnswer) error {
	return r.upsertTx(r.db, answer)
}

// UpsertBatch writes a validated batch inside one transaction so readers see
// either the old or the new set of rows, not a mix.
func (r *answerRepository) UpsertBatch(answers []model.AttemptAnswer) ([]model.AttemptAnswer, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			if err := r.upsertTx(tx, &answers[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) upsertTx(tx *gorm.DB, answer *model.AttemptAnswer) error {
	var existing model.AttemptAnswer
	err := tx.Where("attempt_id = ? AND question_id = ?", answer.AttemptID, answer.QuestionID).
		First(&existing).Error
	if err == nil {
		answer.ID = existing.ID
		answer.CreatedAt = existing.CreatedAt
		return tx.Save(answer).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return tx.Create(answer).Error
}
