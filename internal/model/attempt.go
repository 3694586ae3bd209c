package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress = "IN_PROGRESS"
	AttemptStatusCompleted  = "COMPLETED"
	AttemptStatusAbandoned  = "ABANDONED"

	AttemptModeMockTest = "MOCK_TEST"
	AttemptModePractice = "PRACTICE"
)

// Attempt is one scored session of a user against a mock test or a practice
// set. Status moves IN_PROGRESS → COMPLETED or IN_PROGRESS → ABANDONED, once,
// and never back.
type Attempt struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `json:"user_id" gorm:"not null;index:idx_user_status"`
	MockTestID     *uint           `json:"mock_test_id,omitempty" gorm:"index"` // nil = practice mode
	MockTest       *MockTest       `json:"mock_test,omitempty" gorm:"foreignKey:MockTestID"`
	StartTime      time.Time       `json:"start_time" gorm:"not null"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
	TotalTimeTaken *int            `json:"total_time_taken,omitempty"` // whole seconds, set on completion
	ScoreObtained  float64         `json:"score_obtained" gorm:"default:0"`
	TotalScore     float64         `json:"total_score" gorm:"default:0"`
	Percentage     *float64        `json:"percentage,omitempty"` // nil until completed
	Status         string          `json:"status" gorm:"default:'IN_PROGRESS';index:idx_user_status"`
	Mode           string          `json:"mode" gorm:"default:'MOCK_TEST'"`
	Answers        []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TimeRemaining reports the seconds left on a timed in-progress attempt,
// nil when the attempt is untimed. The limit is informational; the scoring
// engine never rejects a late completion.
func (a *Attempt) TimeRemaining(now time.Time) *int {
	if a.Status != AttemptStatusInProgress {
		zero := 0
		return &zero
	}
	if a.MockTest == nil || a.MockTest.DurationMinutes == nil {
		return nil
	}
	limit := *a.MockTest.DurationMinutes * 60
	remaining := limit - int(now.Sub(a.StartTime).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// AttemptAnswer is one question response within an attempt, unique per
// (attempt, question); resubmission overwrites. Correctness is copied from the
// selected option at submission time, never supplied by the client.
type AttemptAnswer struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	AttemptID        uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID       uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Question         Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptionID *uint          `json:"selected_option_id,omitempty"` // nil = skipped
	IsCorrect        bool           `json:"is_correct" gorm:"default:false"`
	IsSkipped        bool           `json:"is_skipped" gorm:"default:false"`
	MarkedForReview  bool           `json:"marked_for_review" gorm:"default:false"`
	TimeTakenSeconds *int           `json:"time_taken_seconds,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
