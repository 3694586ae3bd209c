package repository

import (
	"github.com/sbasnet/pscprep/internal/model"
	"gorm.io/gorm"
)

type MockTestRepository interface {
	Create(test *model.MockTest) error
	FindByID(id uint) (*model.MockTest, error)
	FindByIDWithQuestions(id uint) (*model.MockTest, error)
	FindPublicSummaries(branchID *uint) ([]TestWithQuestionCount, error)
	AddQuestions(testID uint, questions []model.MockTestQuestion) error
	IncrementAttemptCount(testID uint) error
}

// TestWithQuestionCount carries a test row plus its question count for
// listing screens.
type TestWithQuestionCount struct {
	model.MockTest
	QuestionCount int
}

type mockTestRepository struct {
	db *gorm.DB
}

func NewMockTestRepository(db *gorm.DB) MockTestRepository {
	return &mockTestRepository{db: db}
}

func (r *mockTestRepository) Create(test *model.MockTest) error {
	// Associated MockTestQuestion rows are created in the same transaction.
	return r.db.Create(test).Error
}

func (r *mockTestRepository) FindByID(id uint) (*model.MockTest, error) {
	var test model.MockTest
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *mockTestRepository) FindByIDWithQuestions(id uint) (*model.MockTest, error) {
	var test model.MockTest
	err := r.db.
		Preload("TestQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("mock_test_questions.question_order ASC")
		}).
		Preload("TestQuestions.Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.display_order ASC")
		}).
		First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *mockTestRepository) FindPublicSummaries(branchID *uint) ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	query := r.db.Model(&model.MockTest{}).
		Select("mock_tests.*, (SELECT COUNT(*) FROM mock_test_questions WHERE mock_test_questions.mock_test_id = mock_tests.id) as question_count").
		Where("mock_tests.is_public = ? AND mock_tests.is_active = ?", true, true)
	if branchID != nil {
		query = query.Where("mock_tests.branch_id = ?", *branchID)
	}
	err := query.Order("mock_tests.created_at DESC").Scan(&results).Error
	return results, err
}

func (r *mockTestRepository) AddQuestions(testID uint, questions []model.MockTestQuestion) error {
	for i := range questions {
		questions[i].MockTestID = testID
	}
	return r.db.Create(&questions).Error
}

func (r *mockTestRepository) IncrementAttemptCount(testID uint) error {
	return r.db.Model(&model.MockTest{}).
		Where("id = ?", testID).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
