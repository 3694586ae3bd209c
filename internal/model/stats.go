package model

import (
	"time"
)

// PlatformStatsKey is the well-known primary key of the single stats row.
// The row is created explicitly at startup and refreshed in place; no other
// row with a different key is ever written.
const PlatformStatsKey uint = 1

// PlatformStats is the platform-wide counter aggregate shown on the public
// dashboard. Refreshed by an idempotent recompute, never incremented ad hoc.
type PlatformStats struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	TotalQuestionsPublic  int       `json:"total_questions_public" gorm:"default:0"`
	TotalQuestionsPending int       `json:"total_questions_pending" gorm:"default:0"`
	TotalAttemptsStarted  int       `json:"total_attempts_started" gorm:"default:0"`
	TotalAttemptsDone     int       `json:"total_attempts_completed" gorm:"default:0"`
	TotalAnswersSubmitted int       `json:"total_answers_submitted" gorm:"default:0"`
	QuestionsAddedToday   int       `json:"questions_added_today" gorm:"default:0"`
	UpdatedAt             time.Time `json:"updated_at"`
}
