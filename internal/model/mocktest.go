package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultQuestionMarks is the weight used when a question has no explicit
// allocation (practice mode, or an allocation gap).
const DefaultQuestionMarks = 1.0

// MockTest is a pre-configured set of questions with per-question marks,
// always tied to a branch and optionally to a sub-branch.
type MockTest struct {
	ID              uint               `gorm:"primarykey" json:"id"`
	TitleEN         string             `json:"title_en" gorm:"not null"`
	TitleNP         string             `json:"title_np" gorm:"not null"`
	Slug            string             `json:"slug" gorm:"not null;uniqueIndex"`
	DescriptionEN   *string            `json:"description_en,omitempty"`
	BranchID        uint               `json:"branch_id" gorm:"not null;index"`
	Branch          Branch             `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	SubBranchID     *uint              `json:"sub_branch_id,omitempty" gorm:"index"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"` // nil = untimed
	PassPercentage  float64            `json:"pass_percentage" gorm:"default:40"`
	IsPublic        bool               `json:"is_public" gorm:"default:true"`
	IsActive        bool               `json:"is_active" gorm:"default:true"`
	AttemptCount    int                `json:"attempt_count" gorm:"default:0"`
	TestQuestions   []MockTestQuestion `json:"test_questions,omitempty" gorm:"foreignKey:MockTestID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MockTestQuestion links a question into a test with its order and mark
// allocation. Unique per (mock_test, question).
type MockTestQuestion struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	MockTestID     uint      `json:"mock_test_id" gorm:"not null;uniqueIndex:idx_test_question"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_test_question"`
	Question       Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	QuestionOrder  int       `json:"question_order" gorm:"not null"`
	MarksAllocated float64   `json:"marks_allocated" gorm:"default:1"`
	CreatedAt      time.Time `json:"created_at"`
}

// MarkAllocation returns the question→marks map plus the fixed upfront total
// used for test-mode scoring.
func (t *MockTest) MarkAllocation() (map[uint]float64, float64) {
	marks := make(map[uint]float64, len(t.TestQuestions))
	total := 0.0
	for _, tq := range t.TestQuestions {
		marks[tq.QuestionID] = tq.MarksAllocated
		total += tq.MarksAllocated
	}
	return marks, total
}
